package store

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrQuery    = errors.New("failed to query ui state")
	ErrWrite    = errors.New("failed to write ui state")
)

// KV is a small durable key-value store used for remembering ui state between sessions.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	List(ctx context.Context, prefix string) (map[string]string, error)
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

// SQLiteKV stores values in the ui_state table.
type SQLiteKV struct {
	db *sql.DB
}

func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.db.QueryRowContext(ctx, `SELECT value FROM ui_state WHERE key = ?`, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}

		return "", errors.Join(err, ErrQuery)
	}

	return value, nil
}

func (s *SQLiteKV) Put(ctx context.Context, key string, value string) error {
	const query = `
		INSERT INTO ui_state (key, value, updated_on) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_on = excluded.updated_on`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
		return errors.Join(err, ErrWrite)
	}

	return nil
}

func (s *SQLiteKV) List(ctx context.Context, prefix string) (map[string]string, error) {
	rows, errRows := s.db.QueryContext(ctx,
		`SELECT key, value FROM ui_state WHERE instr(key, ?) = 1 ORDER BY key`, prefix)
	if errRows != nil {
		return nil, errors.Join(errRows, ErrQuery)
	}
	defer func() { _ = rows.Close() }()

	values := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, errors.Join(err, ErrQuery)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, ErrQuery)
	}

	return values, nil
}

func (s *SQLiteKV) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM ui_state WHERE instr(key, ?) = 1`, prefix)
	if err != nil {
		return 0, errors.Join(err, ErrWrite)
	}

	count, errCount := result.RowsAffected()
	if errCount != nil {
		return 0, errors.Join(errCount, ErrWrite)
	}

	return count, nil
}

// MemoryKV is a non-durable KV used when running ephemeral sessions and in tests.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, found := m.values[key]
	if !found {
		return "", ErrNotFound
	}

	return value, nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value

	return nil
}

func (m *MemoryKV) List(_ context.Context, prefix string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := maps.Clone(m.values)
	maps.DeleteFunc(values, func(key string, _ string) bool {
		return !strings.HasPrefix(key, prefix)
	})

	return values, nil
}

func (m *MemoryKV) DeletePrefix(_ context.Context, prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			delete(m.values, key)
			count++
		}
	}

	return count, nil
}
