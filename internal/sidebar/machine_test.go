package sidebar_test

import (
	"context"
	"testing"

	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/store"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoadCollapseReload(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, sidebar.Expanded, h.machine.State())

	width, found := h.doc.Var(sidebar.WidthVar)
	require.True(t, found)
	require.Equal(t, "264px", width)

	h.machine.Collapse()
	width, _ = h.doc.Var(sidebar.WidthVar)
	require.Equal(t, "72px", width)

	persisted, errGet := h.kv.Get(context.Background(), sidebar.StateKey)
	require.NoError(t, errGet)
	require.Equal(t, "collapsed", persisted)

	reloaded := h.reload(t)
	require.Equal(t, sidebar.Collapsed, reloaded.machine.State())
	width, _ = reloaded.doc.Var(sidebar.WidthVar)
	require.Equal(t, "72px", width)
}

func TestLastTransitionWins(t *testing.T) {
	type op struct {
		name  string
		apply func(m *sidebar.Machine)
		want  sidebar.State
	}

	ops := []op{
		{"expand", (*sidebar.Machine).Expand, sidebar.Expanded},
		{"collapse", (*sidebar.Machine).Collapse, sidebar.Collapsed},
		{"hide", (*sidebar.Machine).Hide, sidebar.Hidden},
	}

	// Every sequence of length three over the three transitions.
	for _, first := range ops {
		for _, second := range ops {
			for _, third := range ops {
				h := newHarness(t, nil)
				first.apply(h.machine)
				second.apply(h.machine)
				third.apply(h.machine)

				require.Equal(t, third.want, h.machine.State(), "%s %s %s", first.name, second.name, third.name)

				persisted, err := h.kv.Get(context.Background(), sidebar.StateKey)
				require.NoError(t, err)
				require.Equal(t, third.want.String(), persisted)
				require.Equal(t, third.want, h.reload(t).machine.State())
			}
		}
	}
}

func TestToggleCycleClosure(t *testing.T) {
	h := newHarness(t, nil)

	want := []sidebar.State{sidebar.Collapsed, sidebar.Hidden, sidebar.Expanded}
	for _, state := range want {
		h.machine.ToggleCycle()
		require.Equal(t, state, h.machine.State())
	}
}

func TestToggleHamburger(t *testing.T) {
	h := newHarness(t, nil)

	h.machine.Collapse()
	h.machine.ToggleHamburger()
	require.Equal(t, sidebar.Hidden, h.machine.State())

	h.machine.ToggleHamburger()
	require.Equal(t, sidebar.Expanded, h.machine.State())

	h.machine.ToggleHamburger()
	require.Equal(t, sidebar.Hidden, h.machine.State())
}

func TestHiddenKeepsLastWidth(t *testing.T) {
	h := newHarness(t, nil)
	h.machine.Collapse()
	h.machine.Hide()

	width, _ := h.doc.Var(sidebar.WidthVar)
	require.Equal(t, "72px", width)
}

func TestToggleGroup(t *testing.T) {
	h := newHarness(t, nil)
	require.False(t, h.machine.GroupCollapsed("Finance"))

	groups := h.machine.ToggleGroup("Masters")
	require.Equal(t, map[string]bool{"Masters": true, "Finance": false}, groups)

	reloaded := h.reload(t)
	require.True(t, reloaded.machine.GroupCollapsed("Masters"))
	require.False(t, reloaded.machine.GroupCollapsed("Finance"))

	groups = reloaded.machine.ToggleGroup("Masters")
	require.False(t, groups["Masters"])

	persisted, err := h.kv.Get(context.Background(), sidebar.GroupKey("Masters"))
	require.NoError(t, err)
	require.Equal(t, "false", persisted)

	_, errMissing := h.kv.Get(context.Background(), sidebar.GroupKey("Finance"))
	require.ErrorIs(t, errMissing, store.ErrNotFound)
}

func TestMalformedValuesFallBack(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Put(context.Background(), sidebar.StateKey, "sideways"))
	require.NoError(t, kv.Put(context.Background(), sidebar.GroupKey("Masters"), "yes"))

	h := newHarness(t, kv)
	require.Equal(t, sidebar.Expanded, h.machine.State())
	require.False(t, h.machine.GroupCollapsed("Masters"))
}

func TestStorageFailureDoesNotBlockTransition(t *testing.T) {
	doc := document.New()
	notifier := sidebar.NewNotifier()
	events := make(chan sidebar.Event, 4)
	notifier.ListenFor(sidebar.Any, events)

	machine := sidebar.NewMachine(sidebar.NewPersistence(brokenStore{}), sidebar.NewLayoutSync(doc, sidebar.DefaultWidths()), notifier)
	require.Equal(t, sidebar.Expanded, machine.State())

	machine.Collapse()
	require.Equal(t, sidebar.Collapsed, machine.State())

	width, _ := doc.Var(sidebar.WidthVar)
	require.Equal(t, "72px", width)
	require.Equal(t, sidebar.Event{Name: sidebar.EventChanged, State: sidebar.Collapsed}, <-events)

	groups := machine.ToggleGroup("Masters")
	require.True(t, groups["Masters"])
	require.Equal(t, sidebar.EventGroupChanged, (<-events).Name)
}

func TestSetWidthsResyncs(t *testing.T) {
	h := newHarness(t, nil)
	h.machine.SetWidths(sidebar.Widths{ExpandedPx: 320, CollapsedPx: 64})

	width, _ := h.doc.Var(sidebar.WidthVar)
	require.Equal(t, "320px", width)

	cells, _ := h.doc.VarCells(sidebar.WidthVar)
	require.Equal(t, 40, cells)
}

func TestSetAppliesExplicitState(t *testing.T) {
	h := newHarness(t, nil)
	changed := make(chan sidebar.Event, 4)
	h.notifier.ListenFor(sidebar.EventChanged, changed)

	h.machine.Set(sidebar.Hidden)
	require.Equal(t, sidebar.Hidden, h.machine.State())
	require.Equal(t, sidebar.Hidden, (<-changed).State)

	h.machine.Set(sidebar.Collapsed)
	width, _ := h.doc.Var(sidebar.WidthVar)
	require.Equal(t, "72px", width)

	persisted, err := h.kv.Get(context.Background(), sidebar.StateKey)
	require.NoError(t, err)
	require.Equal(t, "collapsed", persisted)
}
