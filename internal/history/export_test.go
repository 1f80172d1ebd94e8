package history

import (
	"database/sql"
	"testing"
)

// RawDB exposes the connection to tests in the external test package.
func RawDB(t testing.TB, s *Store) *sql.DB {
	t.Helper()
	return s.db
}
