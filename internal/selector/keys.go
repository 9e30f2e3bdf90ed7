package selector

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the selector's keybindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	GroupInc key.Binding
	GroupDec key.Binding
	Confirm  key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		GroupInc: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("→/+", "next group"),
		),
		GroupDec: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←/-", "prev group"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "record"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ActionFor maps a key press to its action, ActionNone for unbound keys.
func (k KeyMap) ActionFor(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Up):
		return ActionMoveUp
	case key.Matches(msg, k.Down):
		return ActionMoveDown
	case key.Matches(msg, k.Toggle):
		return ActionToggle
	case key.Matches(msg, k.GroupInc):
		return ActionGroupInc
	case key.Matches(msg, k.GroupDec):
		return ActionGroupDec
	case key.Matches(msg, k.Confirm):
		return ActionConfirm
	case key.Matches(msg, k.Quit):
		return ActionInterrupt
	}
	return ActionNone
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.GroupInc, k.GroupDec, k.Confirm, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.GroupInc, k.GroupDec},
		{k.Confirm, k.Quit},
	}
}
