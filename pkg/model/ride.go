// pkg/model/ride.go
package model

import (
	"strings"
	"time"
)

// RawRide is one row of the source file exactly as read, all cells as strings.
// Empty string means the cell was empty or the column was absent.
type RawRide struct {
	RideID            string `csv:"ride_id"`
	PickupDatetime    string `csv:"pickup_datetime"`
	PickupLocationID  string `csv:"pickup_locationid"`
	DropoffLocationID string `csv:"dropoff_locationid"`
	PassengerCount    string `csv:"passenger_count"`
	TripDistance      string `csv:"trip_distance"`
	FareAmount        string `csv:"fare_amount"`
	Extra             string `csv:"extra"`
	MTATax            string `csv:"mta_tax"`
	TipAmount         string `csv:"tip_amount"`
	TollsAmount       string `csv:"tolls_amount"`
	TotalAmount       string `csv:"total_amount"`
	PaymentType       string `csv:"payment_type"`
}

// RawTable is the in-memory table produced by extraction: the header row as
// read from the file plus the raw records. The header is kept so later stages
// can tell an absent column apart from an empty one.
type RawTable struct {
	Columns []string
	Rows    []RawRide
}

// HasColumn reports whether the source file carried the named column
// (case-insensitive, matching the normalized header).
func (t *RawTable) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if strings.EqualFold(col, name) {
			return true
		}
	}
	return false
}

// Ride is one cleaned ride record. Pointer fields are nullable: a nil value
// means the source cell was empty or failed validation and was nulled.
type Ride struct {
	RideID            string    `csv:"ride_id" db:"ride_id" json:"ride_id"`
	PickupDatetime    time.Time `csv:"pickup_datetime" db:"pickup_datetime" json:"pickup_datetime"`
	PickupLocationID  *int64    `csv:"pickup_locationid" db:"pickup_locationid" json:"pickup_locationid"`
	DropoffLocationID *int64    `csv:"dropoff_locationid" db:"dropoff_locationid" json:"dropoff_locationid"`
	PassengerCount    *int64    `csv:"passenger_count" db:"passenger_count" json:"passenger_count"`
	TripDistance      float64   `csv:"trip_distance" db:"trip_distance" json:"trip_distance"`
	FareAmount        *float64  `csv:"fare_amount" db:"fare_amount" json:"fare_amount"`
	Extra             *float64  `csv:"extra" db:"extra" json:"extra"`
	MTATax            *float64  `csv:"mta_tax" db:"mta_tax" json:"mta_tax"`
	TipAmount         *float64  `csv:"tip_amount" db:"tip_amount" json:"tip_amount"`
	TollsAmount       *float64  `csv:"tolls_amount" db:"tolls_amount" json:"tolls_amount"`
	TotalAmount       *float64  `csv:"total_amount" db:"total_amount" json:"total_amount"`
	PaymentType       *int64    `csv:"payment_type" db:"payment_type" json:"payment_type"`
}

// RequiredColumns are the source columns the transform refuses to run without.
var RequiredColumns = []string{
	"ride_id",
	"pickup_datetime",
	"trip_distance",
	"fare_amount",
}
