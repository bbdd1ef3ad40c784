package repository

import (
	"context"

	"github.com/iliyamo/doctors-portal/internal/model"
)

// UserStore provides access to the users collection.  Upsert writes arbitrary
// profile fields supplied by the client; SetRole is the only path that
// changes a role.
type UserStore interface {
	All(ctx context.Context) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Upsert(ctx context.Context, email string, profile map[string]any) error
	SetRole(ctx context.Context, email, role string) error
}

// ServiceStore provides read access to the treatment catalog.  The catalog is
// seeded externally, so no write methods exist.
type ServiceStore interface {
	Names(ctx context.Context) ([]model.ServiceName, error)
	All(ctx context.Context) ([]model.Service, error)
}

// BookingStore provides access to the bookings collection.  Insert reports
// ErrDuplicateBooking when the (treatment, date, patient) unique constraint
// is violated, which is how a lost admission race surfaces.
type BookingStore interface {
	FindByTriple(ctx context.Context, treatment, date, patient string) (*model.Booking, error)
	Insert(ctx context.Context, b *model.Booking) error
	FindByDate(ctx context.Context, date string) ([]model.Booking, error)
	FindByPatient(ctx context.Context, patient string) ([]model.Booking, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	MarkPaid(ctx context.Context, id, transactionID string) (*model.Booking, error)
}

// DoctorStore provides access to the doctors collection.  Only admins reach
// these methods; the authorization happens in middleware, not here.
type DoctorStore interface {
	All(ctx context.Context) ([]model.Doctor, error)
	Insert(ctx context.Context, d *model.Doctor) error
	DeleteByEmail(ctx context.Context, email string) error
}

// PaymentStore appends confirmed payments.  Append is idempotent on the
// transaction id so that a retried confirmation never creates a second
// record.
type PaymentStore interface {
	Append(ctx context.Context, p *model.Payment) error
}

// Store bundles the five collection stores into the single adapter injected
// into services and handlers.  Nothing above this interface touches the
// database directly.
type Store struct {
	Users    UserStore
	Services ServiceStore
	Bookings BookingStore
	Doctors  DoctorStore
	Payments PaymentStore
}
