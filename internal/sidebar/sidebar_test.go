package sidebar_test

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/erp-tui/internal/sidebar"
	"github.com/leighmacdonald/erp-tui/internal/store"
	"github.com/leighmacdonald/erp-tui/internal/ui/document"
)

var errUnavailable = errors.New("storage unavailable")

// brokenStore fails every operation like a disabled or full storage backend.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) { return "", errUnavailable }
func (brokenStore) Put(context.Context, string, string) error   { return errUnavailable }

type harness struct {
	kv       *store.MemoryKV
	doc      *document.Document
	notifier *sidebar.Notifier
	machine  *sidebar.Machine
}

func newHarness(t *testing.T, kv *store.MemoryKV) harness {
	t.Helper()

	if kv == nil {
		kv = store.NewMemoryKV()
	}

	doc := document.New()
	notifier := sidebar.NewNotifier()
	machine := sidebar.NewMachine(
		sidebar.NewPersistence(kv),
		sidebar.NewLayoutSync(doc, sidebar.DefaultWidths()),
		notifier)

	return harness{kv: kv, doc: doc, notifier: notifier, machine: machine}
}

// reload simulates a restart against the same storage.
func (h harness) reload(t *testing.T) harness {
	t.Helper()

	return newHarness(t, h.kv)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// drain runs a command tree and feeds every resulting message to the drawer.
func drain(drawer *sidebar.Drawer, cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, inner := range batch {
			drain(drawer, inner)
		}

		return
	}

	drawer.Update(msg)
}
