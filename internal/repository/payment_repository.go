package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/doctors-portal/internal/model"
)

// PaymentRepo is the Mongo-backed PaymentStore.  Records are append only.
type PaymentRepo struct {
	coll *mongo.Collection
}

// NewPaymentRepo returns a PaymentRepo bound to the payments collection of db.
func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{coll: db.Collection("payments")}
}

// Append stores a confirmed payment keyed by its transaction id.  The upsert
// makes retries of the same confirmation a no-op instead of a second
// document, which keeps the reconciliation recovery path idempotent.
func (r *PaymentRepo) Append(ctx context.Context, p *model.Payment) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"transactionId": p.TransactionID},
		bson.M{"$setOnInsert": p},
		options.Update().SetUpsert(true),
	)
	return err
}
