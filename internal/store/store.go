package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
	_ "modernc.org/sqlite"
)

const (
	memoryPath  = ":memory:"
	pingTimeout = 10 * time.Second
)

var (
	//go:embed migrations
	migrations embed.FS

	ErrDBConnect = errors.New("failed to open ui state database")
	ErrMigrate   = errors.New("failed to migrate ui state schema")

	// statePragmas are applied to every handle returned by Open.
	statePragmas = []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA main.synchronous = NORMAL",
		"PRAGMA main.cache_size = -8192",
	}
)

// Open returns the ui state database at path, creating the file when it is missing. An
// empty path or ":memory:" gives a private database that lives as long as the handle.
// With migrateSchema set the ui_state table is brought up to date before returning.
func Open(ctx context.Context, path string, migrateSchema bool) (*sql.DB, error) {
	inMemory := path == "" || path == memoryPath
	if inMemory {
		path = memoryPath
	}

	database, errOpen := sql.Open("sqlite", path+"?cache=private")
	if errOpen != nil {
		return nil, errors.Join(errOpen, ErrDBConnect)
	}

	if err := prepare(ctx, database, inMemory, migrateSchema); err != nil {
		_ = database.Close()

		return nil, err
	}

	return database, nil
}

func prepare(ctx context.Context, database *sql.DB, inMemory bool, migrateSchema bool) error {
	// A :memory: database exists per connection, so the pool must never open a second one.
	conns := 1
	if !inMemory {
		conns = min(4, max(2, runtime.GOMAXPROCS(0)))
	}

	database.SetMaxOpenConns(conns)
	database.SetMaxIdleConns(conns)
	database.SetConnMaxLifetime(0)
	database.SetConnMaxIdleTime(0)

	for _, pragma := range statePragmas {
		if _, err := database.ExecContext(ctx, pragma); err != nil {
			return errors.Join(err, ErrDBConnect)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := database.PingContext(pingCtx); err != nil {
		return errors.Join(err, ErrDBConnect)
	}

	if !migrateSchema {
		return nil
	}

	return Migrate(database)
}

// Migrate applies every pending ui state migration. An up to date schema is not an error.
func Migrate(database *sql.DB) error {
	migrator, err := newMigrator(database)
	if err != nil {
		return err
	}

	if errUp := migrator.Up(); errUp != nil && !errors.Is(errUp, migrate.ErrNoChange) {
		return errors.Join(errUp, ErrMigrate)
	}

	return nil
}

// SchemaVersion reports the applied migration version, zero when none has run yet.
func SchemaVersion(database *sql.DB) (uint, bool, error) {
	migrator, err := newMigrator(database)
	if err != nil {
		return 0, false, err
	}

	version, dirty, errVersion := migrator.Version()
	if errors.Is(errVersion, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	if errVersion != nil {
		return 0, false, errors.Join(errVersion, ErrMigrate)
	}

	return version, dirty, nil
}

func newMigrator(database *sql.DB) (*migrate.Migrate, error) {
	driver, errDriver := sqlite.WithInstance(database, &sqlite.Config{})
	if errDriver != nil {
		return nil, errors.Join(errDriver, ErrMigrate)
	}

	source, errSource := httpfs.New(http.FS(migrations), "migrations")
	if errSource != nil {
		return nil, errors.Join(errSource, ErrMigrate)
	}

	migrator, errMigrator := migrate.NewWithInstance("httpfs", source, "sqlite", driver)
	if errMigrator != nil {
		return nil, errors.Join(errMigrator, ErrMigrate)
	}

	return migrator, nil
}
