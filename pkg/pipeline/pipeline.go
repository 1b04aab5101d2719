// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/config"
	"github.com/SeanOsorio/ETLProjecto/pkg/extract"
	"github.com/SeanOsorio/ETLProjecto/pkg/load"
	"github.com/SeanOsorio/ETLProjecto/pkg/store"
	"github.com/SeanOsorio/ETLProjecto/pkg/transform"
)

// Report aggregates the outcome of one full Extract-Transform-Load run.
type Report struct {
	Extracted    int
	Cleaned      int
	DroppedRows  int
	NulledFields int
	Inserted     int64
	Skipped      int64
	OutputPath   string
}

// Run executes the pipeline stages in sequence against the configured store:
// schema initialization, extraction, transformation, flat-file emission, and
// the batched database load. The returned error names the failing stage, and
// any failure after the store is reachable is reflected in the audit trail.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Report, error) {
	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, &StageError{Stage: StageInit, Err: err}
	}
	defer st.Close()

	if err := st.InitSchema(ctx); err != nil {
		return nil, &StageError{Stage: StageInit, Err: err}
	}

	extractor := extract.NewExtractor(cfg.InputPath, logger)
	table, err := extractor.Extract()
	if err != nil {
		return nil, failRun(ctx, st, logger, &StageError{Stage: StageExtract, Err: err})
	}

	transformer := transform.NewTransformer(logger)
	cleaned, err := transformer.Clean(table)
	if err != nil {
		return nil, failRun(ctx, st, logger, &StageError{Stage: StageTransform, Err: err})
	}

	report := &Report{
		Extracted:    cleaned.InputRows,
		Cleaned:      len(cleaned.Rides),
		DroppedRows:  cleaned.DroppedRows(),
		NulledFields: cleaned.NulledFields,
		OutputPath:   cfg.OutputCleanPath,
	}

	loader := load.NewLoader(st, cfg.BatchSize, cfg.MaxRetries, cfg.RetryDelay, logger)

	if err := loader.ToCSV(cleaned.Rides, cfg.OutputCleanPath); err != nil {
		return report, failRun(ctx, st, logger, &StageError{Stage: StageLoad, Err: err})
	}

	loadReport, err := loader.ToDatabase(ctx, cleaned.Rides)
	if loadReport != nil {
		report.Inserted = loadReport.Inserted
		report.Skipped = loadReport.Skipped
	}
	if err != nil {
		stageErr := &StageError{Stage: StageLoad, Err: err}
		if loadReport == nil || loadReport.LogID == 0 {
			// the loader failed before it could open its audit row
			return report, failRun(ctx, st, logger, stageErr)
		}
		// the loader marked its own audit row FAILED
		return report, stageErr
	}

	logger.Info("ETL run completed",
		zap.Int("extracted", report.Extracted),
		zap.Int("cleaned", report.Cleaned),
		zap.Int("dropped_rows", report.DroppedRows),
		zap.Int64("inserted", report.Inserted),
		zap.Int64("skipped_duplicates", report.Skipped))

	return report, nil
}

// failRun records an aborted run in the audit trail before the loader had a
// chance to create its own row. Best effort; the original error wins.
func failRun(ctx context.Context, st *store.Store, logger *zap.Logger, stageErr *StageError) error {
	logID, err := st.StartRun(ctx, load.ProcessName)
	if err != nil {
		logger.Error("Failed to record aborted run", zap.Error(err))
		return stageErr
	}

	if err := st.FailRun(ctx, logID, stageErr.Error()); err != nil {
		logger.Error("Failed to mark aborted run as failed", zap.Error(err))
	}

	return stageErr
}
