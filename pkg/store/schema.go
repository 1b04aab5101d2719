// pkg/store/schema.go
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/model"
)

var createTableStatements = []string{
	`CREATE TABLE IF NOT EXISTS rides (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ride_id TEXT UNIQUE NOT NULL,
		pickup_datetime DATETIME NOT NULL,
		pickup_locationid INTEGER,
		dropoff_locationid INTEGER,
		passenger_count INTEGER,
		trip_distance REAL,
		fare_amount REAL,
		extra REAL,
		mta_tax REAL,
		tip_amount REAL,
		tolls_amount REAL,
		total_amount REAL,
		payment_type INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		location_id INTEGER PRIMARY KEY,
		borough TEXT,
		zone TEXT,
		service_zone TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS payment_types (
		payment_type_id INTEGER PRIMARY KEY,
		payment_method TEXT NOT NULL,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS etl_logs (
		log_id INTEGER PRIMARY KEY AUTOINCREMENT,
		process_name TEXT NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME,
		status TEXT CHECK(status IN ('STARTED', 'COMPLETED', 'FAILED')) NOT NULL,
		records_processed INTEGER DEFAULT 0,
		error_message TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

var createIndexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_rides_pickup_datetime ON rides(pickup_datetime)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_pickup_location ON rides(pickup_locationid)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_dropoff_location ON rides(dropoff_locationid)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_payment_type ON rides(payment_type)`,
}

// InitSchema idempotently creates the four tables and their indexes and seeds
// the payment type lookup rows. Running it against an already-initialized
// store changes nothing.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range createTableStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, stmt := range createIndexStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := s.seedPaymentTypes(ctx); err != nil {
		return err
	}

	s.logger.Info("Database schema initialized")
	return nil
}

// seedPaymentTypes inserts the static payment method lookup values
func (s *Store) seedPaymentTypes(ctx context.Context) error {
	const insertSQL = `
		INSERT OR IGNORE INTO payment_types (payment_type_id, payment_method, description)
		VALUES (:payment_type_id, :payment_method, :description)
	`

	for _, pt := range model.DefaultPaymentTypes {
		if _, err := s.db.NamedExecContext(ctx, insertSQL, pt); err != nil {
			return fmt.Errorf("failed to seed payment type %d: %w", pt.PaymentTypeID, err)
		}
	}

	return nil
}

// DropAllTables drops every user table in the database
func (s *Store) DropAllTables(ctx context.Context) error {
	tables, err := s.TableNames(ctx)
	if err != nil {
		return err
	}

	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	s.logger.Info("Dropped all tables", zap.Int("count", len(tables)))
	return nil
}

// Reset drops and recreates all tables, including reference data. Destructive;
// used only on explicit operator request.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.DropAllTables(ctx); err != nil {
		return err
	}
	return s.InitSchema(ctx)
}

// TableNames returns the names of all user tables in the database
func (s *Store) TableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name != 'sqlite_sequence' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	return tables, nil
}
