// pkg/load/loader.go
package load

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jszwec/csvutil"
	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/model"
	"github.com/SeanOsorio/ETLProjecto/pkg/store"
)

// ProcessName is the process identifier recorded in the audit trail.
const ProcessName = "DATA_LOAD"

const insertRidesSQL = `
	INSERT OR IGNORE INTO rides (
		ride_id, pickup_datetime, pickup_locationid, dropoff_locationid,
		passenger_count, trip_distance, fare_amount, extra, mta_tax,
		tip_amount, tolls_amount, total_amount, payment_type
	) VALUES (
		:ride_id, :pickup_datetime, :pickup_locationid, :dropoff_locationid,
		:passenger_count, :trip_distance, :fare_amount, :extra, :mta_tax,
		:tip_amount, :tolls_amount, :total_amount, :payment_type
	)
`

// Report summarizes one load invocation.
type Report struct {
	RunID     string
	LogID     int64
	TotalRows int64
	Inserted  int64
	// Skipped counts rows whose ride_id already existed in the store.
	// Identifiers of skipped rows are not retained, only the count.
	Skipped  int64
	Duration time.Duration
}

// Loader writes the cleaned table to a flat file and into the relational
// store in fixed-size batches, wrapping the database load in an audit row.
type Loader struct {
	store      *store.Store
	logger     *zap.Logger
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	sleep      store.SleepFunc
}

// NewLoader creates a loader with the given batch and retry settings
func NewLoader(st *store.Store, batchSize, maxRetries int, retryDelay time.Duration, logger *zap.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = 1000
	}

	return &Loader{
		store:      st,
		logger:     logger.Named("loader"),
		batchSize:  batchSize,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// WithSleep overrides the delay function used between retry attempts
func (l *Loader) WithSleep(sleep store.SleepFunc) *Loader {
	l.sleep = sleep
	return l
}

// ToCSV writes the cleaned table to a flat file, replacing any previous file
// at that path.
func (l *Loader) ToCSV(rides []model.Ride, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	enc := csvutil.NewEncoder(writer)
	enc.Register(func(t time.Time) ([]byte, error) {
		return []byte(t.Format("2006-01-02 15:04:05")), nil
	})

	// the encoder only emits the header on the first Encode, so an empty
	// table needs it written explicitly
	if len(rides) == 0 {
		if err := enc.EncodeHeader(model.Ride{}); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i := range rides {
		if err := enc.Encode(&rides[i]); err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	l.logger.Info("Wrote cleaned data to CSV",
		zap.String("path", outputPath),
		zap.Int("rows", len(rides)))

	return nil
}

// ToDatabase inserts the cleaned table into the rides table in batches.
// Duplicate ride_ids across runs are silently skipped, so repeated runs over
// overlapping data are idempotent at the row level. Exactly one audit row is
// appended per invocation regardless of outcome.
func (l *Loader) ToDatabase(ctx context.Context, rides []model.Ride) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		TotalRows: int64(len(rides)),
	}
	logger := l.logger.With(zap.String("run_id", report.RunID))
	start := time.Now()

	logID, err := l.store.StartRun(ctx, ProcessName)
	if err != nil {
		return nil, fmt.Errorf("failed to start audit run: %w", err)
	}
	report.LogID = logID

	if err := l.insertBatches(ctx, rides, report, logger); err != nil {
		if failErr := l.store.FailRun(ctx, logID, err.Error()); failErr != nil {
			logger.Error("Failed to record run failure", zap.Error(failErr))
		}
		return report, err
	}

	report.Skipped = report.TotalRows - report.Inserted
	report.Duration = time.Since(start)

	if err := l.store.CompleteRun(ctx, logID, report.Inserted); err != nil {
		return report, err
	}

	logger.Info("Database load completed",
		zap.Int64("total_rows", report.TotalRows),
		zap.Int64("inserted", report.Inserted),
		zap.Int64("skipped_duplicates", report.Skipped),
		zap.Duration("duration", report.Duration))

	return report, nil
}

// insertBatches partitions rides into fixed-size batches and inserts each one,
// retrying transient store errors with synchronous backoff.
func (l *Loader) insertBatches(ctx context.Context, rides []model.Ride, report *Report, logger *zap.Logger) error {
	for start := 0; start < len(rides); start += l.batchSize {
		end := start + l.batchSize
		if end > len(rides) {
			end = len(rides)
		}
		batch := rides[start:end]

		var inserted int64
		err := store.WithRetry(logger, l.maxRetries, l.retryDelay, l.sleep, func() error {
			n, err := l.insertBatch(ctx, batch)
			inserted = n
			return err
		})
		if err != nil {
			return fmt.Errorf("batch insert failed at row %d: %w", start, err)
		}

		report.Inserted += inserted

		logger.Debug("Inserted batch",
			zap.Int("offset", start),
			zap.Int("batch_rows", len(batch)),
			zap.Int64("inserted", inserted))
	}

	return nil
}

// insertBatch inserts one batch and returns the number of rows actually
// inserted, which excludes ignored duplicates.
func (l *Loader) insertBatch(ctx context.Context, batch []model.Ride) (int64, error) {
	res, err := l.store.DB().NamedExecContext(ctx, insertRidesSQL, batch)
	if err != nil {
		return 0, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		l.logger.Warn("Couldn't get rows affected", zap.Error(err))
		return 0, nil
	}

	return inserted, nil
}
