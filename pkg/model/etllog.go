// pkg/model/etllog.go
package model

import (
	"database/sql"
	"time"
)

// Run statuses recorded in the etl_logs table. A run is created as STARTED and
// moved exactly once to COMPLETED or FAILED.
const (
	RunStatusStarted   = "STARTED"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// ETLLog is one audit row per pipeline invocation.
type ETLLog struct {
	LogID            int64          `db:"log_id"`
	ProcessName      string         `db:"process_name"`
	StartTime        time.Time      `db:"start_time"`
	EndTime          sql.NullTime   `db:"end_time"`
	Status           string         `db:"status"`
	RecordsProcessed int64          `db:"records_processed"`
	ErrorMessage     sql.NullString `db:"error_message"`
	CreatedAt        time.Time      `db:"created_at"`
}
