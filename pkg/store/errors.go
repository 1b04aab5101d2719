// pkg/store/errors.go
package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// IsTransient reports whether a store error is worth retrying. SQLite signals
// lock contention as SQLITE_BUSY or SQLITE_LOCKED; anything else (corrupt
// file, disk full, constraint violation) is treated as fatal.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}

	return false
}
