// cmd/dbtool/main.go
//
// Offline inspection and maintenance utility for the ride bookings store.
// Prints a database summary by default.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/SeanOsorio/ETLProjecto/pkg/config"
	"github.com/SeanOsorio/ETLProjecto/pkg/logging"
	"github.com/SeanOsorio/ETLProjecto/pkg/store"
)

func main() {
	var (
		exportTable = flag.String("export", "", "table name to export as CSV")
		exportOut   = flag.String("out", "", "output path for -export")
		schemaTable = flag.String("schema", "", "table name to print column definitions for")
		logCount    = flag.Int("logs", 0, "print the N most recent ETL runs")
		reset       = flag.Bool("reset", false, "drop and recreate all tables (destructive)")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Keep operator output readable; structured logs go to stderr on errors only
	logger, err := logging.NewLogger("warn", "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx := context.Background()

	switch {
	case *reset:
		if err := st.Reset(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "reset failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Database reset: all tables dropped and recreated")

	case *exportTable != "":
		out := *exportOut
		if out == "" {
			out = *exportTable + ".csv"
		}
		if err := st.ExportTable(ctx, *exportTable, out); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported table %s to %s\n", *exportTable, out)

	case *schemaTable != "":
		columns, err := st.TableSchema(ctx, *schemaTable)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("SCHEMA: %s\n", *schemaTable)
		for _, col := range columns {
			line := fmt.Sprintf("  %-20s %s", col.Name, col.Type)
			if col.NotNull {
				line += " NOT NULL"
			}
			if col.DefaultValue.Valid {
				line += " DEFAULT " + col.DefaultValue.String
			}
			if col.PrimaryKey > 0 {
				line += " PRIMARY KEY"
			}
			fmt.Println(line)
		}

	case *logCount > 0:
		logs, err := st.RecentLogs(ctx, *logCount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read logs: %v\n", err)
			os.Exit(1)
		}
		for _, log := range logs {
			fmt.Printf("#%d %s | %s | %d records | started %s\n",
				log.LogID, log.ProcessName, log.Status, log.RecordsProcessed,
				log.StartTime.Format(time.RFC3339))
			if log.ErrorMessage.Valid {
				fmt.Printf("    error: %s\n", log.ErrorMessage.String)
			}
		}

	default:
		summary, err := st.Summarize(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to summarize database: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(summary.String())
	}
}
