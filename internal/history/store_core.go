package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"vidgrab/internal/config"
)

// Store is the local download history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// historyPragmas run on every new connection.
const historyPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// busyBackoff is the wait before each retry of a write that still hit
// SQLITE_BUSY after busy_timeout. Its length bounds the retries.
var busyBackoff = []time.Duration{
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
}

// Open opens history.db under the configured state directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens the history database at dbPath, creating the schema on
// first use.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+historyPragmas)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// Writes from this process go through a single connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// exec runs a write, retrying while another process holds the database.
func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	for attempt := 0; ; attempt++ {
		res, err := s.db.ExecContext(ctx, query, args...)
		if err == nil || !databaseBusy(err) || attempt == len(busyBackoff) {
			return res, err
		}
		wait := time.NewTimer(busyBackoff[attempt])
		select {
		case <-ctx.Done():
			wait.Stop()
			return nil, ctx.Err()
		case <-wait.C:
		}
	}
}

func databaseBusy(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_BUSY
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
