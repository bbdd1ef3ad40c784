package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service is a treatment offered by the clinic.  Slots holds the full ordered
// daily offering template; availability computations subtract booked slots
// from it without reordering.  The catalog is seeded externally and read-only
// from this service's point of view.
type Service struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Slots []string           `bson:"slots" json:"slots"`
	Price float64            `bson:"price,omitempty" json:"price,omitempty"`
}

// ServiceName is the projection returned by the catalog listing, which only
// needs identifiers and names.
type ServiceName struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name string             `bson:"name" json:"name"`
}
