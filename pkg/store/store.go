// pkg/store/store.go
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Store owns the embedded SQLite database file. A single connection is held
// for the duration of a run; cross-process locking beyond what SQLite itself
// provides is out of scope.
type Store struct {
	db     *sqlx.DB
	path   string
	logger *zap.Logger
}

// Open creates or opens the database file and verifies the connection
func Open(path string, logger *zap.Logger) (*Store, error) {
	logger = logger.Named("store")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_loc=auto", path)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite connection: %w", err)
	}

	// The pipeline is single-threaded; one connection avoids writer contention
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	logger.Info("Connected to SQLite database", zap.String("path", path))

	return &Store{
		db:     db,
		path:   path,
		logger: logger,
	}, nil
}

// DB returns the underlying database handle
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	s.logger.Info("Closing SQLite connection", zap.String("path", s.path))
	return s.db.Close()
}
