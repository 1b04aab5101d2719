// pkg/transform/transformer.go
package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/model"
)

// SchemaMismatchError indicates the input table is missing required columns.
// The transform fails fast rather than silently producing nulls for them.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Accepted pickup_datetime layouts, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Result carries the cleaned table plus counters for every row dropped or
// field nulled during cleaning. The same input always produces the same Result.
type Result struct {
	Rides []model.Ride

	InputRows           int
	DroppedMissingID    int
	DroppedBadTimestamp int
	DroppedBadDistance  int
	DroppedDuplicate    int
	NulledFields        int
}

// DroppedRows returns the total number of input rows excluded from the cleaned table.
func (r *Result) DroppedRows() int {
	return r.DroppedMissingID + r.DroppedBadTimestamp + r.DroppedBadDistance + r.DroppedDuplicate
}

// Transformer cleans and type-casts the raw table into ride records.
//
// Cleaning policy:
//   - rows with an empty ride_id, an unparseable pickup_datetime, or a
//     missing/negative trip_distance are dropped and counted
//   - negative or non-numeric fare components are nulled and counted;
//     empty cells become nulls without counting
//   - duplicate ride_ids keep the first occurrence
type Transformer struct {
	logger *zap.Logger
}

// NewTransformer creates a new Transformer
func NewTransformer(logger *zap.Logger) *Transformer {
	return &Transformer{
		logger: logger.Named("transformer"),
	}
}

// Clean validates and converts the raw table. It fails with a
// SchemaMismatchError when a required column is absent from the source header.
func (t *Transformer) Clean(table *model.RawTable) (*Result, error) {
	if err := t.checkSchema(table); err != nil {
		return nil, err
	}

	result := &Result{
		Rides:     make([]model.Ride, 0, len(table.Rows)),
		InputRows: len(table.Rows),
	}
	seen := make(map[string]struct{}, len(table.Rows))

	for _, raw := range table.Rows {
		ride, ok := t.cleanRow(raw, result)
		if !ok {
			continue
		}

		if _, dup := seen[ride.RideID]; dup {
			result.DroppedDuplicate++
			continue
		}
		seen[ride.RideID] = struct{}{}

		result.Rides = append(result.Rides, ride)
	}

	t.logger.Info("Cleaned raw records",
		zap.Int("input_rows", result.InputRows),
		zap.Int("output_rows", len(result.Rides)),
		zap.Int("dropped_missing_id", result.DroppedMissingID),
		zap.Int("dropped_bad_timestamp", result.DroppedBadTimestamp),
		zap.Int("dropped_bad_distance", result.DroppedBadDistance),
		zap.Int("dropped_duplicate", result.DroppedDuplicate),
		zap.Int("nulled_fields", result.NulledFields))

	return result, nil
}

// checkSchema verifies every required column is present in the source header
func (t *Transformer) checkSchema(table *model.RawTable) error {
	var missing []string
	for _, col := range model.RequiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaMismatchError{Missing: missing}
	}
	return nil
}

// cleanRow converts one raw row, updating drop/null counters on the result.
// Returns ok=false when the row must be excluded from the cleaned table.
func (t *Transformer) cleanRow(raw model.RawRide, result *Result) (model.Ride, bool) {
	rideID := strings.TrimSpace(raw.RideID)
	if rideID == "" {
		result.DroppedMissingID++
		return model.Ride{}, false
	}

	pickup, err := parseTimestamp(raw.PickupDatetime)
	if err != nil {
		result.DroppedBadTimestamp++
		return model.Ride{}, false
	}

	distance, ok := parseFloat(raw.TripDistance)
	if !ok || distance < 0 {
		result.DroppedBadDistance++
		return model.Ride{}, false
	}

	ride := model.Ride{
		RideID:            rideID,
		PickupDatetime:    pickup,
		TripDistance:      distance,
		PickupLocationID:  t.nullableInt(raw.PickupLocationID, result),
		DropoffLocationID: t.nullableInt(raw.DropoffLocationID, result),
		PassengerCount:    t.nullableInt(raw.PassengerCount, result),
		FareAmount:        t.nullableFare(raw.FareAmount, result),
		Extra:             t.nullableFare(raw.Extra, result),
		MTATax:            t.nullableFare(raw.MTATax, result),
		TipAmount:         t.nullableFare(raw.TipAmount, result),
		TollsAmount:       t.nullableFare(raw.TollsAmount, result),
		TotalAmount:       t.nullableFare(raw.TotalAmount, result),
		PaymentType:       t.nullableInt(raw.PaymentType, result),
	}

	return ride, true
}

// nullableFare coerces a fare component. Negative and non-numeric values are
// nulled and counted; an empty cell is a plain null.
func (t *Transformer) nullableFare(s string, result *Result) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	v, ok := parseFloat(s)
	if !ok || v < 0 {
		result.NulledFields++
		return nil
	}
	return &v
}

// nullableInt coerces an integer column with the same null policy as fares
func (t *Transformer) nullableInt(s string, result *Result) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		result.NulledFields++
		return nil
	}
	return &v
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// Tolerate currency formatting in the source data
	s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp: %q", s)
}
