package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/model"
)

func fullColumns() []string {
	return []string{
		"ride_id", "pickup_datetime", "pickup_locationid", "dropoff_locationid",
		"passenger_count", "trip_distance", "fare_amount", "extra", "mta_tax",
		"tip_amount", "tolls_amount", "total_amount", "payment_type",
	}
}

func validRow(id string) model.RawRide {
	return model.RawRide{
		RideID:            id,
		PickupDatetime:    "2024-03-01 08:30:00",
		PickupLocationID:  "132",
		DropoffLocationID: "48",
		PassengerCount:    "2",
		TripDistance:      "3.5",
		FareAmount:        "14.50",
		Extra:             "0.50",
		MTATax:            "0.50",
		TipAmount:         "3.00",
		TollsAmount:       "0",
		TotalAmount:       "18.50",
		PaymentType:       "1",
	}
}

func newTransformer() *Transformer {
	return NewTransformer(zap.NewNop())
}

func TestCleanValidRow(t *testing.T) {
	table := &model.RawTable{
		Columns: fullColumns(),
		Rows:    []model.RawRide{validRow("R1")},
	}

	result, err := newTransformer().Clean(table)
	require.NoError(t, err)
	require.Len(t, result.Rides, 1)

	ride := result.Rides[0]
	assert.Equal(t, "R1", ride.RideID)
	assert.Equal(t, 2024, ride.PickupDatetime.Year())
	assert.Equal(t, 3.5, ride.TripDistance)
	require.NotNil(t, ride.FareAmount)
	assert.Equal(t, 14.50, *ride.FareAmount)
	require.NotNil(t, ride.PaymentType)
	assert.Equal(t, int64(1), *ride.PaymentType)
	assert.Equal(t, 0, result.DroppedRows())
}

func TestCleanIsDeterministic(t *testing.T) {
	table := &model.RawTable{
		Columns: fullColumns(),
		Rows: []model.RawRide{
			validRow("R1"), validRow("R2"), validRow("R1"),
		},
	}
	table.Rows[1].FareAmount = "-5"
	table.Rows[1].TipAmount = "abc"

	first, err := newTransformer().Clean(table)
	require.NoError(t, err)
	second, err := newTransformer().Clean(table)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCleanFailsFastOnMissingColumn(t *testing.T) {
	table := &model.RawTable{
		Columns: []string{"ride_id", "pickup_datetime", "trip_distance"},
		Rows:    []model.RawRide{validRow("R1")},
	}

	_, err := newTransformer().Clean(table)
	require.Error(t, err)

	var schemaErr *SchemaMismatchError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"fare_amount"}, schemaErr.Missing)
}

func TestCleanDropsNegativeDistance(t *testing.T) {
	bad := validRow("R2")
	bad.TripDistance = "-1.2"

	table := &model.RawTable{
		Columns: fullColumns(),
		Rows:    []model.RawRide{validRow("R1"), bad},
	}

	result, err := newTransformer().Clean(table)
	require.NoError(t, err)
	assert.Len(t, result.Rides, 1)
	assert.Equal(t, 1, result.DroppedBadDistance)
}

func TestCleanDropsUnparseableTimestamps(t *testing.T) {
	badA := validRow("R2")
	badA.PickupDatetime = "not-a-date"
	badB := validRow("R3")
	badB.PickupDatetime = ""

	table := &model.RawTable{
		Columns: fullColumns(),
		Rows:    []model.RawRide{validRow("R1"), badA, badB},
	}

	result, err := newTransformer().Clean(table)
	require.NoError(t, err)
	assert.Len(t, result.Rides, 1)
	assert.Equal(t, 2, result.DroppedBadTimestamp)
}

func TestCleanKeepsFirstDuplicate(t *testing.T) {
	second := validRow("R1")
	second.FareAmount = "99.99"

	table := &model.RawTable{
		Columns: fullColumns(),
		Rows:    []model.RawRide{validRow("R1"), second},
	}

	result, err := newTransformer().Clean(table)
	require.NoError(t, err)
	require.Len(t, result.Rides, 1)
	assert.Equal(t, 1, result.DroppedDuplicate)
	// first occurrence wins
	require.NotNil(t, result.Rides[0].FareAmount)
	assert.Equal(t, 14.50, *result.Rides[0].FareAmount)
}

func TestCleanNullsBadFareValues(t *testing.T) {
	row := validRow("R1")
	row.FareAmount = "-3.00"
	row.TipAmount = "n/a"
	row.TollsAmount = ""

	table := &model.RawTable{
		Columns: fullColumns(),
		Rows:    []model.RawRide{row},
	}

	result, err := newTransformer().Clean(table)
	require.NoError(t, err)
	require.Len(t, result.Rides, 1)

	ride := result.Rides[0]
	assert.Nil(t, ride.FareAmount)
	assert.Nil(t, ride.TipAmount)
	assert.Nil(t, ride.TollsAmount)
	// empty cell is a plain null, not a counted correction
	assert.Equal(t, 2, result.NulledFields)
}

func TestCleanDropsMissingRideID(t *testing.T) {
	bad := validRow("  ")

	table := &model.RawTable{
		Columns: fullColumns(),
		Rows:    []model.RawRide{bad, validRow("R1")},
	}

	result, err := newTransformer().Clean(table)
	require.NoError(t, err)
	assert.Len(t, result.Rides, 1)
	assert.Equal(t, 1, result.DroppedMissingID)
}

func TestCleanTolerantOfCurrencyFormatting(t *testing.T) {
	row := validRow("R1")
	row.FareAmount = "$1,240.50"

	table := &model.RawTable{
		Columns: fullColumns(),
		Rows:    []model.RawRide{row},
	}

	result, err := newTransformer().Clean(table)
	require.NoError(t, err)
	require.NotNil(t, result.Rides[0].FareAmount)
	assert.Equal(t, 1240.50, *result.Rides[0].FareAmount)
}
