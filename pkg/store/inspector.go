// pkg/store/inspector.go
package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/model"
)

// Summary is a point-in-time snapshot of the database contents, suitable for
// printing to an operator.
type Summary struct {
	DatabasePath string
	TableCounts  map[string]int64
	TotalRecords int64
	RecentLogs   []model.ETLLog
}

// String renders the summary in a human-readable form
func (s *Summary) String() string {
	var sb strings.Builder

	sb.WriteString("==================================================\n")
	sb.WriteString("DATABASE SUMMARY\n")
	sb.WriteString("==================================================\n")
	fmt.Fprintf(&sb, "Database Path: %s\n", s.DatabasePath)
	fmt.Fprintf(&sb, "Total Records: %d\n", s.TotalRecords)
	fmt.Fprintf(&sb, "Total Tables: %d\n\n", len(s.TableCounts))

	sb.WriteString("TABLES:\n")
	tables := make([]string, 0, len(s.TableCounts))
	for name := range s.TableCounts {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	for _, name := range tables {
		fmt.Fprintf(&sb, "  %-16s %d records\n", name, s.TableCounts[name])
	}

	if len(s.RecentLogs) > 0 {
		sb.WriteString("\nRECENT ETL RUNS:\n")
		for _, log := range s.RecentLogs {
			fmt.Fprintf(&sb, "  %s | %s | %d records | started %s\n",
				log.ProcessName, log.Status, log.RecordsProcessed,
				log.StartTime.Format(time.RFC3339))
			if log.ErrorMessage.Valid {
				fmt.Fprintf(&sb, "    error: %s\n", log.ErrorMessage.String)
			}
		}
	}

	return sb.String()
}

// TableCounts returns the number of rows in every user table
func (s *Store) TableCounts(ctx context.Context) (map[string]int64, error) {
	tables, err := s.TableNames(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(tables))
	for _, table := range tables {
		var count int64
		if err := s.db.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
			return nil, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		counts[table] = count
	}

	return counts, nil
}

// Summarize collects table counts and the most recent audit rows
func (s *Store) Summarize(ctx context.Context) (*Summary, error) {
	counts, err := s.TableCounts(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		DatabasePath: s.path,
		TableCounts:  counts,
	}
	for _, count := range counts {
		summary.TotalRecords += count
	}

	logs, err := s.RecentLogs(ctx, 5)
	if err != nil {
		return nil, err
	}
	summary.RecentLogs = logs

	return summary, nil
}

// ColumnInfo describes one column of a table as reported by the database.
type ColumnInfo struct {
	CID          int64          `db:"cid"`
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	NotNull      bool           `db:"notnull"`
	DefaultValue sql.NullString `db:"dflt_value"`
	PrimaryKey   int64          `db:"pk"`
}

// TableSchema returns the column definitions of a named table. The table name
// is checked against the actual database tables before being interpolated.
func (s *Store) TableSchema(ctx context.Context, table string) ([]ColumnInfo, error) {
	if err := s.checkTable(ctx, table); err != nil {
		return nil, err
	}

	var columns []ColumnInfo
	if err := s.db.SelectContext(ctx, &columns, fmt.Sprintf("PRAGMA table_info(%s)", table)); err != nil {
		return nil, fmt.Errorf("failed to read schema for %s: %w", table, err)
	}

	return columns, nil
}

// checkTable fails unless table is one of the database's user tables
func (s *Store) checkTable(ctx context.Context, table string) error {
	tables, err := s.TableNames(ctx)
	if err != nil {
		return err
	}

	for _, name := range tables {
		if name == table {
			return nil
		}
	}

	return fmt.Errorf("unknown table: %s", table)
}

// ExportTable writes an arbitrary named table to a CSV file. The table name is
// checked against the actual database tables before being interpolated.
func (s *Store) ExportTable(ctx context.Context, table, outputPath string) error {
	if err := s.checkTable(ctx, table); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read columns for %s: %w", table, err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	values := make([]interface{}, len(columns))
	scanTargets := make([]interface{}, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	exported := 0
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = formatCell(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		exported++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}

	s.logger.Info("Exported table",
		zap.String("table", table),
		zap.String("path", outputPath),
		zap.Int("rows", exported))

	return nil
}

// formatCell renders a scanned database value as a CSV cell
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case sql.RawBytes:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
