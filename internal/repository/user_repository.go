package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/doctors-portal/internal/model"
)

// UserRepo is the Mongo-backed UserStore.  Accounts are keyed by email; the
// upsert path mirrors the self-service profile endpoint, which may create the
// account on first contact.
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepo returns a UserRepo bound to the users collection of db.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection("users")}
}

// All returns every user document.
func (r *UserRepo) All(ctx context.Context) ([]model.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail returns the user keyed by email or ErrUserNotFound.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert writes the supplied profile fields onto the user keyed by email,
// creating the document when absent.  The role field is stripped by the
// caller before it reaches this method; role changes go through SetRole only.
func (r *UserRepo) Upsert(ctx context.Context, email string, profile map[string]any) error {
	set := bson.M{"email": email}
	for k, v := range profile {
		set[k] = v
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	return err
}

// SetRole updates the role of an existing user.  Missing users yield
// ErrUserNotFound rather than an upsert; granting admin to a nonexistent
// account would create a bare document with nothing but a role.
func (r *UserRepo) SetRole(ctx context.Context, email, role string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
