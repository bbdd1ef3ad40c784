package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/doctors-portal/internal/model"
)

// ServiceRepo is the Mongo-backed ServiceStore.  The catalog is read-only
// here; documents are seeded out of band.
type ServiceRepo struct {
	coll *mongo.Collection
}

// NewServiceRepo returns a ServiceRepo bound to the services collection of db.
func NewServiceRepo(db *mongo.Database) *ServiceRepo {
	return &ServiceRepo{coll: db.Collection("services")}
}

// Names lists the catalog projected down to ids and names, which is all the
// catalog endpoint exposes.
func (r *ServiceRepo) Names(ctx context.Context) ([]model.ServiceName, error) {
	cur, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	names := []model.ServiceName{}
	if err := cur.All(ctx, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// All returns every service with its full slot template.
func (r *ServiceRepo) All(ctx context.Context) ([]model.Service, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	services := []model.Service{}
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}
