package sidebar

import (
	"log/slog"
	"maps"
	"sync"
)

// Machine owns the panel visibility state and the per group collapse memory. It is the only
// writer of either; renderers read through State and GroupCollapsed and observe changes via
// the Notifier.
type Machine struct {
	mu       sync.Mutex
	state    State
	groups   map[string]bool
	persist  *Persistence
	layout   *LayoutSync
	notifier *Notifier
}

// NewMachine restores the persisted state, defaulting to Expanded, and syncs the layout variable.
func NewMachine(persist *Persistence, layout *LayoutSync, notifier *Notifier) *Machine {
	machine := &Machine{
		state:    persist.LoadState(),
		groups:   map[string]bool{},
		persist:  persist,
		layout:   layout,
		notifier: notifier,
	}

	machine.layout.Sync(machine.state)

	return machine
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

func (m *Machine) Expand() { m.transition(func(State) State { return Expanded }) }

func (m *Machine) Collapse() { m.transition(func(State) State { return Collapsed }) }

func (m *Machine) Hide() { m.transition(func(State) State { return Hidden }) }

// Set applies an explicit state.
func (m *Machine) Set(state State) { m.transition(func(State) State { return state }) }

// ToggleCycle steps expanded -> collapsed -> hidden -> expanded.
func (m *Machine) ToggleCycle() { m.transition(State.next) }

// ToggleHamburger hides a visible panel and restores a hidden one straight to expanded.
func (m *Machine) ToggleHamburger() {
	m.transition(func(current State) State {
		if current == Hidden {
			return Expanded
		}

		return Hidden
	})
}

// transition applies the new state, persists it and updates the layout variable under the lock
// so no reader observes a half applied change. Observers are notified after the lock is released.
func (m *Machine) transition(next func(State) State) {
	m.mu.Lock()
	from := m.state
	m.state = next(from)
	to := m.state
	m.persist.SaveState(to)
	m.layout.Sync(to)
	m.mu.Unlock()

	slog.Debug("Sidebar transition", slog.String("from", from.String()), slog.String("to", to.String()))

	m.notifier.Broadcast(Event{Name: EventChanged, State: to})
}

// GroupCollapsed reports whether the named group is collapsed, reading the persisted flag on first use.
func (m *Machine) GroupCollapsed(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.groupLocked(name)
}

func (m *Machine) groupLocked(name string) bool {
	collapsed, found := m.groups[name]
	if !found {
		collapsed = m.persist.LoadGroup(name)
		m.groups[name] = collapsed
	}

	return collapsed
}

// ToggleGroup flips the collapsed flag of one group, persists only that entry and returns
// a copy of the known group map.
func (m *Machine) ToggleGroup(name string) map[string]bool {
	m.mu.Lock()
	collapsed := !m.groupLocked(name)
	m.groups[name] = collapsed
	m.persist.SaveGroup(name, collapsed)
	groups := maps.Clone(m.groups)
	state := m.state
	m.mu.Unlock()

	slog.Debug("Sidebar group toggled", slog.String("group", name), slog.Bool("collapsed", collapsed))

	m.notifier.Broadcast(Event{Name: EventGroupChanged, State: state, Group: name, Collapsed: collapsed})

	return groups
}

// SetWidths applies new panel widths and resyncs the layout variable.
func (m *Machine) SetWidths(widths Widths) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layout.SetWidths(widths)
	m.layout.Sync(m.state)
}
