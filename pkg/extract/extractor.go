// pkg/extract/extractor.go
package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/model"
)

// ErrMissingFile indicates the configured input path does not exist.
var ErrMissingFile = errors.New("input file not found")

// ParseError indicates the input file is malformed, e.g. a row with an
// inconsistent column count.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Extractor reads the raw ride bookings file into an in-memory table.
// No cleaning happens here; cells are carried through as strings.
type Extractor struct {
	path   string
	logger *zap.Logger
}

// NewExtractor creates an extractor for the given input path
func NewExtractor(path string, logger *zap.Logger) *Extractor {
	return &Extractor{
		path:   path,
		logger: logger.Named("extractor"),
	}
}

// Extract loads the input file and returns the raw table. The table's column
// list mirrors the file's header row.
func (e *Extractor) Extract() (*model.RawTable, error) {
	f, err := os.Open(e.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, e.path)
		}
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		// io.EOF here means the file had no header row at all
		return nil, &ParseError{Path: e.path, Err: fmt.Errorf("missing header row: %w", err)}
	}

	table := &model.RawTable{
		Columns: dec.Header(),
	}

	for {
		var row model.RawRide
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Path: e.path, Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, &ParseError{Path: e.path, Err: err}
		}
		table.Rows = append(table.Rows, row)
	}

	e.logger.Info("Extracted raw records",
		zap.String("path", e.path),
		zap.Int("columns", len(table.Columns)),
		zap.Int("rows", len(table.Rows)))

	return table, nil
}
