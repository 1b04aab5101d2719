// cmd/api/main.go
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/api"
	"github.com/SeanOsorio/ETLProjecto/pkg/config"
	"github.com/SeanOsorio/ETLProjecto/pkg/logging"
	"github.com/SeanOsorio/ETLProjecto/pkg/store"
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

	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer st.Close()

	server := api.NewServer(st, logger)
	if err := server.ListenAndServe(cfg.HTTPAddr); err != nil {
		logger.Fatal("API server stopped", zap.Error(err))
	}
}
