package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	upIndicator   = "↑ ↑ ↑"
	downIndicator = "↓ ↓ ↓"
	checkGlyph    = "*"
	groupNone     = "-"
)

// Styles contains the style definitions for the selector.
type Styles struct {
	Prompt lipgloss.Style
	Cursor lipgloss.Style
	Group  lipgloss.Style
	Scroll lipgloss.Style
}

// NewStyles creates the default styles.
func NewStyles() Styles {
	return Styles{
		Prompt: lipgloss.NewStyle().Bold(true),
		Cursor: lipgloss.NewStyle().Reverse(true),
		Group:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Scroll: lipgloss.NewStyle().Faint(true),
	}
}

// Renderer turns selector state into display rows. It holds no mutable
// state of its own; rendering is a pure function of the State passed in.
type Renderer struct {
	styles Styles
	align  int
	margin int
}

// NewRenderer validates the spacing parameters and builds a renderer.
func NewRenderer(align, margin int) (*Renderer, error) {
	if align < 0 {
		return nil, errors.New("align must be >= 0")
	}
	if margin < 0 {
		return nil, errors.New("margin must be >= 0")
	}
	return &Renderer{styles: NewStyles(), align: align, margin: margin}, nil
}

// Rows renders the visible window: a top scroll indicator when rows are
// hidden above, one row per visible item, and a bottom indicator when rows
// are hidden below. Indicator rows are always present to keep the layout
// stable; they are blank when there is nothing beyond the viewport.
func (r *Renderer) Rows(s *State) []string {
	rows := make([]string, 0, s.Height+2)

	top := ""
	if s.Top > 0 {
		top = upIndicator
	}
	rows = append(rows, r.indicatorRow(top))

	bottom := s.Top + s.Height
	if bottom > len(s.Items) {
		bottom = len(s.Items)
	}
	for i := s.Top; i < bottom; i++ {
		rows = append(rows, r.itemRow(s, i))
	}

	down := ""
	if s.Top+s.Height < len(s.Items) {
		down = downIndicator
	}
	rows = append(rows, r.indicatorRow(down))

	return rows
}

func (r *Renderer) itemRow(s *State, idx int) string {
	it := s.Items[idx]

	check := strings.Repeat(" ", len(checkGlyph))
	group := groupNone
	if it.Checked {
		check = checkGlyph
		group = strconv.Itoa(it.Group)
	}

	row := fmt.Sprintf("%s%s%s%s %s",
		strings.Repeat(" ", r.align),
		check,
		strings.Repeat(" ", r.margin),
		group,
		it.Label,
	)
	if idx == s.Cursor {
		return r.styles.Cursor.Render(row)
	}
	if it.Checked {
		return r.styles.Group.Render(row)
	}
	return row
}

func (r *Renderer) indicatorRow(indicator string) string {
	pad := strings.Repeat(" ", r.align+len(checkGlyph)+r.margin)
	return pad + r.styles.Scroll.Render(indicator)
}
