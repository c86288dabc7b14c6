package sidebar

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
)

// KeyMap holds the panel shortcuts.
type KeyMap struct {
	Cycle    key.Binding
	Collapse key.Binding
	Expand   key.Binding
}

func DefaultKeyMap() KeyMap {
	return NewKeyMap([]string{"ctrl+b"}, []string{"["}, []string{"]"})
}

// NewKeyMap builds the shortcut bindings. Empty key lists fall back to the defaults.
func NewKeyMap(cycle []string, collapse []string, expand []string) KeyMap {
	if len(cycle) == 0 {
		cycle = []string{"ctrl+b"}
	}
	if len(collapse) == 0 {
		collapse = []string{"["}
	}
	if len(expand) == 0 {
		expand = []string{"]"}
	}

	return KeyMap{
		Cycle: key.NewBinding(
			key.WithKeys(cycle...),
			key.WithHelp(cycle[0], "Cycle panel")),
		Collapse: key.NewBinding(
			key.WithKeys(collapse...),
			key.WithHelp(collapse[0], "Collapse panel")),
		Expand: key.NewBinding(
			key.WithKeys(expand...),
			key.WithHelp(expand[0], "Expand panel")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cycle, k.Collapse, k.Expand}
}

// Host is the document the dispatcher installs itself on.
type Host interface {
	AddKeyListener(fn document.KeyListener) document.ListenerID
	RemoveKeyListener(id document.ListenerID)
	ActiveElement() (document.Element, bool)
}

// Dispatcher turns the panel shortcuts into Machine transitions. It is only active while mounted.
type Dispatcher struct {
	machine  *Machine
	keys     KeyMap
	host     Host
	listener document.ListenerID
	mounted  bool
}

func NewDispatcher(machine *Machine, host Host, keys KeyMap) *Dispatcher {
	return &Dispatcher{machine: machine, host: host, keys: keys}
}

// Mount installs the document key listener. Repeated calls install it only once.
func (d *Dispatcher) Mount() {
	if d.mounted {
		return
	}

	d.listener = d.host.AddKeyListener(d.HandleKey)
	d.mounted = true
}

func (d *Dispatcher) Unmount() {
	if !d.mounted {
		return
	}

	d.host.RemoveKeyListener(d.listener)
	d.mounted = false
}

func (d *Dispatcher) Mounted() bool {
	return d.mounted
}

func (d *Dispatcher) SetKeys(keys KeyMap) {
	d.keys = keys
}

// HandleKey applies a matching shortcut and reports whether it was consumed. Keys typed
// into a text entry control are never treated as shortcuts.
func (d *Dispatcher) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if d.typing() {
		return false, nil
	}

	switch {
	case key.Matches(msg, d.keys.Cycle):
		d.machine.ToggleCycle()
	case key.Matches(msg, d.keys.Collapse):
		d.machine.Collapse()
	case key.Matches(msg, d.keys.Expand):
		d.machine.Expand()
	default:
		return false, nil
	}

	return true, nil
}

func (d *Dispatcher) typing() bool {
	active, found := d.host.ActiveElement()
	if !found || active == nil {
		return false
	}

	return active.AcceptsText()
}
