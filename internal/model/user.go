package model // model defines the document types stored in the portal database

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles a user account can hold.  Every account starts as a patient and can
// only be promoted to admin by another admin.
const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// User represents an account in the users collection.  The email is the
// identity key and is unique.  Profile fields are written by the self-service
// upsert endpoint; the role field is only ever touched by the admin grant
// endpoint.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email string             `bson:"email" json:"email"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}

// IsAdmin reports whether the account holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
