// cmd/etl/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/config"
	"github.com/SeanOsorio/ETLProjecto/pkg/logging"
	"github.com/SeanOsorio/ETLProjecto/pkg/pipeline"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting ETL process",
		zap.String("input", cfg.InputPath),
		zap.String("database", cfg.DBPath),
		zap.Int("batch_size", cfg.BatchSize))

	report, err := pipeline.Run(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("ETL process failed",
			zap.String("category", pipeline.Categorize(err).String()),
			zap.Error(err))
		os.Exit(1)
	}

	logger.Info("ETL process completed successfully",
		zap.Int("extracted", report.Extracted),
		zap.Int("cleaned", report.Cleaned),
		zap.Int("dropped_rows", report.DroppedRows),
		zap.Int64("inserted", report.Inserted),
		zap.Int64("skipped_duplicates", report.Skipped),
		zap.String("output", report.OutputPath))
}
