package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagrec/internal/config"
)

func testUISettings() config.UISettings {
	return config.UISettings{Prompt: "Choose topics to record:", Align: 4, Margin: 2}
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(0, 1)
	require.NoError(t, err)
	return r
}

func TestRendererRejectsNegativeSpacing(t *testing.T) {
	_, err := NewRenderer(-1, 0)
	require.Error(t, err)
	_, err = NewRenderer(0, -1)
	require.Error(t, err)
}

func TestRowsShowCheckStateAndGroups(t *testing.T) {
	s, err := NewState([]string{"/a", "/b"}, nil)
	require.NoError(t, err)
	s.Toggle(1)

	rows := testRenderer(t).Rows(s)
	require.Len(t, rows, 4, "two items plus two indicator rows")

	assert.Contains(t, rows[1], "- /a", "unchecked row shows the group placeholder")
	assert.Contains(t, rows[2], "* 1 /b", "checked row shows glyph and group")
}

func TestRowsScrollIndicators(t *testing.T) {
	labels := []string{"/a", "/b", "/c", "/d", "/e"}
	s, err := NewState(labels, nil)
	require.NoError(t, err)
	s.Resize(2)

	rows := testRenderer(t).Rows(s)
	assert.NotContains(t, rows[0], upIndicator, "nothing above the viewport yet")
	assert.Contains(t, rows[len(rows)-1], downIndicator)

	s.MoveCursor(1)
	s.MoveCursor(1) // scrolls, top = 1
	rows = testRenderer(t).Rows(s)
	assert.Contains(t, rows[0], upIndicator)
	assert.Contains(t, rows[len(rows)-1], downIndicator)

	s.MoveCursor(1)
	s.MoveCursor(1) // bottom of the list, top = 3
	rows = testRenderer(t).Rows(s)
	assert.Contains(t, rows[0], upIndicator)
	assert.NotContains(t, rows[len(rows)-1], downIndicator)
}

func TestRowsAreWindowedToViewport(t *testing.T) {
	labels := []string{"/a", "/b", "/c", "/d"}
	s, err := NewState(labels, nil)
	require.NoError(t, err)
	s.Resize(2)
	s.MoveCursor(1)
	s.MoveCursor(1)

	rows := testRenderer(t).Rows(s)
	require.Len(t, rows, 4)
	assert.Contains(t, rows[1], "/b")
	assert.Contains(t, rows[2], "/c")
}
