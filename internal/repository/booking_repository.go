package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/doctors-portal/internal/model"
)

// BookingRepo is the Mongo-backed BookingStore.  The collection carries a
// unique index over (treatment, date, patient), so two concurrent inserts of
// the same triple cannot both commit; the loser gets ErrDuplicateBooking.
type BookingRepo struct {
	coll *mongo.Collection
}

// NewBookingRepo returns a BookingRepo bound to the bookings collection of db.
func NewBookingRepo(db *mongo.Database) *BookingRepo {
	return &BookingRepo{coll: db.Collection("bookings")}
}

// FindByTriple returns the booking matching the admission key exactly, or
// ErrBookingNotFound.
func (r *BookingRepo) FindByTriple(ctx context.Context, treatment, date, patient string) (*model.Booking, error) {
	filter := bson.M{"treatment": treatment, "date": date, "patient": patient}
	var b model.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Insert stores a new booking and fills in its generated id.  A duplicate key
// violation on the admission triple is reported as ErrDuplicateBooking.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
	res, err := r.coll.InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateBooking
	}
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = id
	}
	return nil
}

// FindByDate returns every booking on the given calendar day.  An empty date
// matches no documents, which callers rely on for the passthrough behaviour
// of the availability endpoint.
func (r *BookingRepo) FindByDate(ctx context.Context, date string) ([]model.Booking, error) {
	return r.find(ctx, bson.M{"date": date})
}

// FindByPatient returns every booking belonging to the given patient email.
func (r *BookingRepo) FindByPatient(ctx context.Context, patient string) ([]model.Booking, error) {
	return r.find(ctx, bson.M{"patient": patient})
}

func (r *BookingRepo) find(ctx context.Context, filter bson.M) ([]model.Booking, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindByID looks a booking up by its hex object id.  Malformed ids are
// indistinguishable from absent ones as far as callers care, so both map to
// ErrBookingNotFound.
func (r *BookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	var b model.Booking
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// MarkPaid applies the one permitted post-creation mutation: paid=true plus
// the settling transaction id.  It returns the updated document.
func (r *BookingRepo) MarkPaid(ctx context.Context, id, transactionID string) (*model.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	update := bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}}
	var b model.Booking
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
