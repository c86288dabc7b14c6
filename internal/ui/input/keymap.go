package input

import "github.com/charmbracelet/bubbles/key"

// Map holds the global bindings. The panel shortcuts live in sidebar.KeyMap since they are configurable.
type Map struct {
	Quit     key.Binding
	Search   key.Binding
	Back     key.Binding
	Accept   key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func (m Map) ShortHelp() []key.Binding {
	return []key.Binding{m.Search, m.Help, m.Quit}
}

func (m Map) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Search, m.Back, m.Accept},
		{m.Up, m.Down, m.PageUp, m.PageDown},
		{m.Help, m.Quit},
	}
}

var Default = Map{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "Search"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Select"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Help"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "Up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "Down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "Page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "Page down"),
	),
}
