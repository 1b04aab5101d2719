package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleCSV = `ride_id,pickup_datetime,pickup_locationid,dropoff_locationid,passenger_count,trip_distance,fare_amount,extra,mta_tax,tip_amount,tolls_amount,total_amount,payment_type
R1,2024-03-01 08:30:00,132,48,2,3.5,14.50,0.50,0.50,3.00,0,18.50,1
R2,2024-03-01 09:00:00,90,161,1,1.1,6.00,0,0.50,1.00,0,7.50,2
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractReadsRawRows(t *testing.T) {
	path := writeFile(t, "rides.csv", sampleCSV)

	table, err := NewExtractor(path, zap.NewNop()).Extract()
	require.NoError(t, err)

	assert.Len(t, table.Columns, 13)
	require.Len(t, table.Rows, 2)
	// cells pass through untouched
	assert.Equal(t, "R1", table.Rows[0].RideID)
	assert.Equal(t, "2024-03-01 08:30:00", table.Rows[0].PickupDatetime)
	assert.Equal(t, "14.50", table.Rows[0].FareAmount)
}

func TestExtractMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")

	_, err := NewExtractor(path, zap.NewNop()).Extract()
	require.ErrorIs(t, err, ErrMissingFile)
}

func TestExtractInconsistentColumnCount(t *testing.T) {
	path := writeFile(t, "bad.csv", "ride_id,pickup_datetime,trip_distance\nR1,2024-03-01 08:30:00\n")

	_, err := NewExtractor(path, zap.NewNop()).Extract()
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestExtractEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	_, err := NewExtractor(path, zap.NewNop()).Extract()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestExtractHeaderOnly(t *testing.T) {
	path := writeFile(t, "header.csv", "ride_id,pickup_datetime,trip_distance,fare_amount\n")

	table, err := NewExtractor(path, zap.NewNop()).Extract()
	require.NoError(t, err)
	assert.Len(t, table.Columns, 4)
	assert.Empty(t, table.Rows)
}
