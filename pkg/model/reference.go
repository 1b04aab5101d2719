// pkg/model/reference.go
package model

// Location is read-only reference data mapping a location ID to its zone.
type Location struct {
	LocationID  int64  `db:"location_id"`
	Borough     string `db:"borough"`
	Zone        string `db:"zone"`
	ServiceZone string `db:"service_zone"`
}

// PaymentType maps a payment method identifier to a human-readable label.
type PaymentType struct {
	PaymentTypeID int64  `db:"payment_type_id"`
	PaymentMethod string `db:"payment_method"`
	Description   string `db:"description"`
}

// DefaultPaymentTypes is the static lookup set seeded into the store.
var DefaultPaymentTypes = []PaymentType{
	{PaymentTypeID: 1, PaymentMethod: "Credit Card", Description: "Standard credit card payment"},
	{PaymentTypeID: 2, PaymentMethod: "Cash", Description: "Cash payment"},
	{PaymentTypeID: 3, PaymentMethod: "No Charge", Description: "No charge trip"},
	{PaymentTypeID: 4, PaymentMethod: "Dispute", Description: "Disputed payment"},
	{PaymentTypeID: 5, PaymentMethod: "Unknown", Description: "Unknown payment method"},
	{PaymentTypeID: 6, PaymentMethod: "Voided Trip", Description: "Voided trip"},
}
