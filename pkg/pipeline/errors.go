// pkg/pipeline/errors.go
package pipeline

import (
	"errors"
	"fmt"

	"github.com/SeanOsorio/ETLProjecto/pkg/extract"
	"github.com/SeanOsorio/ETLProjecto/pkg/store"
	"github.com/SeanOsorio/ETLProjecto/pkg/transform"
)

// Stage identifies which pipeline stage an error came from.
type Stage string

const (
	StageInit      Stage = "init"
	StageExtract   Stage = "extract"
	StageTransform Stage = "transform"
	StageLoad      Stage = "load"
)

// StageError wraps a stage failure so callers and the audit trail can name
// the failing stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// ErrorCategory classifies pipeline failures for reporting.
type ErrorCategory int

const (
	ErrorCategoryNone ErrorCategory = iota
	ErrorCategoryMissingFile
	ErrorCategoryParse
	ErrorCategorySchemaMismatch
	ErrorCategoryTransientStore
	ErrorCategoryFatalStore
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryMissingFile:
		return "MissingFile"
	case ErrorCategoryParse:
		return "ParseError"
	case ErrorCategorySchemaMismatch:
		return "SchemaMismatch"
	case ErrorCategoryTransientStore:
		return "TransientStoreError"
	case ErrorCategoryFatalStore:
		return "FatalStoreError"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// Categorize determines the category of a pipeline error
func Categorize(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryNone
	}

	var parseErr *extract.ParseError
	var schemaErr *transform.SchemaMismatchError

	switch {
	case errors.Is(err, extract.ErrMissingFile):
		return ErrorCategoryMissingFile
	case errors.As(err, &parseErr):
		return ErrorCategoryParse
	case errors.As(err, &schemaErr):
		return ErrorCategorySchemaMismatch
	case store.IsTransient(err):
		return ErrorCategoryTransientStore
	default:
		return ErrorCategoryFatalStore
	}
}
