package sidebar

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/leighmacdonald/erp-tui/internal/store"
)

const (
	// KeyPrefix is shared by every persisted sidebar entry.
	KeyPrefix = "sidebar."
	// StateKey holds the persisted visibility state.
	StateKey       = KeyPrefix + "state"
	groupKeyPrefix = KeyPrefix + "group."

	defaultStoreTimeout = 2 * time.Second
)

// GroupKey returns the persistence key for a navigation group's collapsed flag.
func GroupKey(name string) string {
	return groupKeyPrefix + name
}

// Store is the subset of store.KV the panel needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
}

// Persistence reads and writes panel state. It never fails from the caller's point of view:
// unavailable storage and malformed values degrade to the defaults.
type Persistence struct {
	store   Store
	timeout time.Duration
}

func NewPersistence(kv Store) *Persistence {
	return &Persistence{store: kv, timeout: defaultStoreTimeout}
}

func (p *Persistence) LoadState() State {
	value, found := p.get(StateKey)
	if !found {
		return Expanded
	}

	state, valid := ParseState(value)
	if !valid {
		slog.Debug("Ignoring malformed sidebar state", slog.String("value", value))

		return Expanded
	}

	return state
}

func (p *Persistence) SaveState(state State) {
	p.put(StateKey, state.String())
}

// LoadGroup returns the persisted collapsed flag for the group, false when absent or malformed.
func (p *Persistence) LoadGroup(name string) bool {
	value, found := p.get(GroupKey(name))
	if !found {
		return false
	}

	// Only the exact strings written by SaveGroup are accepted.
	switch value {
	case "true":
		return true
	case "false":
		return false
	default:
		slog.Debug("Ignoring malformed group state", slog.String("group", name), slog.String("value", value))

		return false
	}
}

func (p *Persistence) SaveGroup(name string, collapsed bool) {
	p.put(GroupKey(name), strconv.FormatBool(collapsed))
}

func (p *Persistence) get(key string) (string, bool) {
	if p == nil || p.store == nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	value, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Warn("Failed to read sidebar state", slog.String("key", key), slog.String("error", err.Error()))
		}

		return "", false
	}

	return value, true
}

func (p *Persistence) put(key string, value string) {
	if p == nil || p.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.store.Put(ctx, key, value); err != nil {
		slog.Warn("Failed to persist sidebar state", slog.String("key", key), slog.String("error", err.Error()))
	}
}
