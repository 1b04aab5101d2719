// pkg/store/runlog.go
package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/model"
)

// StartRun appends an audit row with status STARTED and returns its identifier.
// Every pipeline invocation creates exactly one such row.
func (s *Store) StartRun(ctx context.Context, processName string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO etl_logs (process_name, start_time, status, records_processed)
		VALUES (?, ?, ?, 0)
	`, processName, time.Now().UTC(), model.RunStatusStarted)
	if err != nil {
		return 0, fmt.Errorf("failed to create run log: %w", err)
	}

	logID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run log id: %w", err)
	}

	s.logger.Info("Run started",
		zap.String("process", processName),
		zap.Int64("log_id", logID))

	return logID, nil
}

// CompleteRun marks a run COMPLETED with its final record count
func (s *Store) CompleteRun(ctx context.Context, logID int64, recordsProcessed int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE etl_logs
		SET end_time = ?, status = ?, records_processed = ?
		WHERE log_id = ?
	`, time.Now().UTC(), model.RunStatusCompleted, recordsProcessed, logID)
	if err != nil {
		return fmt.Errorf("failed to complete run log: %w", err)
	}

	s.logger.Info("Run completed",
		zap.Int64("log_id", logID),
		zap.Int64("records_processed", recordsProcessed))

	return nil
}

// FailRun marks a run FAILED with the captured error message
func (s *Store) FailRun(ctx context.Context, logID int64, message string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE etl_logs
		SET end_time = ?, status = ?, error_message = ?
		WHERE log_id = ?
	`, time.Now().UTC(), model.RunStatusFailed, message, logID)
	if err != nil {
		return fmt.Errorf("failed to mark run as failed: %w", err)
	}

	s.logger.Warn("Run failed",
		zap.Int64("log_id", logID),
		zap.String("error_message", message))

	return nil
}

// RecentLogs returns the limit most recent audit rows, newest first
func (s *Store) RecentLogs(ctx context.Context, limit int) ([]model.ETLLog, error) {
	if limit <= 0 {
		limit = 10
	}

	var logs []model.ETLLog
	err := s.db.SelectContext(ctx, &logs, `
		SELECT log_id, process_name, start_time, end_time, status,
		       records_processed, error_message, created_at
		FROM etl_logs
		ORDER BY start_time DESC, log_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query run logs: %w", err)
	}

	return logs, nil
}
