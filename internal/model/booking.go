package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking ties a patient to one slot of a service on a calendar day.  At most
// one booking may exist per (treatment, date, patient); the bookings
// collection carries a unique index over the triple.  After creation the only
// permitted mutation is the paid=false -> paid=true transition performed by
// payment reconciliation.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Treatment     string             `bson:"treatment" json:"treatment"`
	Date          string             `bson:"date" json:"date"`
	Slot          string             `bson:"slot" json:"slot"`
	Patient       string             `bson:"patient" json:"patient"`
	PatientName   string             `bson:"patientName,omitempty" json:"patientName,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}
