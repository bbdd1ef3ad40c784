package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment records one successful charge confirmation.  Documents are append
// only: the portal never updates or deletes them.  TransactionID is unique so
// a replayed confirmation cannot create a second record.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BookingID     string             `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	Patient       string             `bson:"patient,omitempty" json:"patient,omitempty"`
	Amount        int64              `bson:"amount,omitempty" json:"amount,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
}
