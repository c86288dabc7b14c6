package sidebar_test

import (
	"testing"
	"time"

	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/stretchr/testify/require"
)

func TestNotifierFanOut(t *testing.T) {
	h := newHarness(t, nil)

	changed := make(chan sidebar.Event, 8)
	groups := make(chan sidebar.Event, 8)
	everything := make(chan sidebar.Event, 8)

	h.notifier.ListenFor(sidebar.EventChanged, changed)
	h.notifier.ListenFor(sidebar.EventGroupChanged, groups)
	removeAny := h.notifier.ListenFor(sidebar.Any, everything)

	h.machine.Hide()
	h.machine.ToggleGroup("Inventory")

	require.Len(t, changed, 1)
	require.Len(t, groups, 1)
	require.Len(t, everything, 2)

	require.Equal(t, sidebar.Hidden, (<-changed).State)
	groupEvent := <-groups
	require.Equal(t, "Inventory", groupEvent.Group)
	require.True(t, groupEvent.Collapsed)

	removeAny()
	h.machine.Expand()
	require.Len(t, everything, 2)
	require.Len(t, changed, 1)
}

func TestNotifierRedundantTransitions(t *testing.T) {
	h := newHarness(t, nil)
	changed := make(chan sidebar.Event, 8)
	h.notifier.ListenFor(sidebar.EventChanged, changed)

	h.machine.Expand()
	h.machine.Expand()

	require.Equal(t, sidebar.Expanded, h.machine.State())
	require.Len(t, changed, 2)
}

func TestNotifierSlowReaderDoesNotBlock(t *testing.T) {
	h := newHarness(t, nil)
	blocked := make(chan sidebar.Event)
	remove := h.notifier.ListenFor(sidebar.EventChanged, blocked)
	t.Cleanup(remove)

	h.machine.Collapse()
	h.machine.Hide()
	h.machine.Expand()

	require.Equal(t, sidebar.Expanded, h.machine.State())

	// Intermediate states may be skipped but the latest one is delivered last.
	var received []sidebar.State
	for len(received) == 0 || received[len(received)-1] != sidebar.Expanded {
		select {
		case event := <-blocked:
			received = append(received, event.State)
		case <-time.After(time.Second):
			t.Fatalf("latest event not delivered, got %v", received)
		}
	}

	require.LessOrEqual(t, len(received), 2)

	select {
	case event := <-blocked:
		t.Fatalf("unexpected event after the latest state: %v", event)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestNotifierCoalescesPerGroup(t *testing.T) {
	h := newHarness(t, nil)
	blocked := make(chan sidebar.Event)
	remove := h.notifier.ListenFor(sidebar.EventGroupChanged, blocked)
	t.Cleanup(remove)

	h.machine.ToggleGroup("Finance")
	h.machine.ToggleGroup("Masters")
	h.machine.ToggleGroup("Finance")

	latest := map[string]bool{}
	deadline := time.After(time.Second)
	for len(latest) < 2 || latest["Finance"] {
		select {
		case event := <-blocked:
			latest[event.Group] = event.Collapsed
		case <-deadline:
			t.Fatalf("group events not delivered, got %v", latest)
		}
	}

	require.True(t, latest["Masters"])
	require.False(t, latest["Finance"])
}
