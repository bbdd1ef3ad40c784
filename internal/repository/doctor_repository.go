package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/doctors-portal/internal/model"
)

// DoctorRepo is the Mongo-backed DoctorStore.
type DoctorRepo struct {
	coll *mongo.Collection
}

// NewDoctorRepo returns a DoctorRepo bound to the doctors collection of db.
func NewDoctorRepo(db *mongo.Database) *DoctorRepo {
	return &DoctorRepo{coll: db.Collection("doctors")}
}

// All returns the full roster.
func (r *DoctorRepo) All(ctx context.Context) ([]model.Doctor, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	doctors := []model.Doctor{}
	if err := cur.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// Insert adds a doctor to the roster and fills in the generated id.
func (r *DoctorRepo) Insert(ctx context.Context, d *model.Doctor) error {
	res, err := r.coll.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = id
	}
	return nil
}

// DeleteByEmail removes the doctor keyed by email, reporting
// ErrDoctorNotFound when no document matched.
func (r *DoctorRepo) DeleteByEmail(ctx context.Context, email string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
