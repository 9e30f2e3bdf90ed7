package selector

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"bagrec/internal/config"
)

// chromeLines is the number of non-item lines around the viewport:
// prompt, two indicator rows, and the help bar.
const chromeLines = 4

// Outcome is the terminal state of one selector invocation.
type Outcome int

const (
	OutcomeEditing Outcome = iota
	OutcomeConfirmed
	OutcomeCancelled
)

// Model is the bubbletea model for the topic selector. All state lives in
// the embedded State; Update only translates messages into transitions.
type Model struct {
	state      *State
	renderer   *Renderer
	keys       KeyMap
	help       help.Model
	prompt     string
	outcome    Outcome
	selections []Selection
}

// New validates the inputs and builds the selector model. seed pre-checks
// labels with their cached group index.
func New(labels []string, seed map[string]int, ui config.UISettings) (Model, error) {
	state, err := NewState(labels, seed)
	if err != nil {
		return Model{}, err
	}
	renderer, err := NewRenderer(ui.Align, ui.Margin)
	if err != nil {
		return Model{}, err
	}
	return Model{
		state:    state,
		renderer: renderer,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		prompt:   ui.Prompt,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Resizes arrive as explicit messages, so a
// resize mid-redraw simply queues another transition; only the most recent
// size is ever rendered.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.state.Resize(msg.Height - chromeLines)
		return m, nil

	case tea.KeyMsg:
		switch m.keys.ActionFor(msg) {
		case ActionMoveUp:
			m.state.MoveCursor(-1)
		case ActionMoveDown:
			m.state.MoveCursor(1)
		case ActionToggle:
			m.state.Toggle(m.state.Cursor)
		case ActionGroupInc:
			m.state.AdjustGroup(m.state.Cursor, 1)
		case ActionGroupDec:
			m.state.AdjustGroup(m.state.Cursor, -1)
		case ActionConfirm:
			m.selections = m.state.Finish()
			m.outcome = OutcomeConfirmed
			return m, tea.Quit
		case ActionInterrupt:
			m.outcome = OutcomeCancelled
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.outcome != OutcomeEditing {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.renderer.styles.Prompt.Render(m.prompt))
	b.WriteByte('\n')
	for _, row := range m.renderer.Rows(m.state) {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Outcome reports whether the invocation ended in confirmation or
// cancellation.
func (m Model) Outcome() Outcome {
	return m.outcome
}

// Selections returns the confirmed picks in original topic order. It is
// only meaningful after OutcomeConfirmed.
func (m Model) Selections() []Selection {
	return m.selections
}
