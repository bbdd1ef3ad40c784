package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/doctors-portal/internal/auth"
	"github.com/iliyamo/doctors-portal/internal/model"
	"github.com/iliyamo/doctors-portal/internal/queue"
	"github.com/iliyamo/doctors-portal/internal/repository"
)

// ErrNotOwner is returned when a caller asks for another patient's bookings.
// There is no admin override for this check.
var ErrNotOwner = errors.New("caller does not own the requested bookings")

// AdmissionResult reports the outcome of a booking creation.  A rejection is
// a normal outcome, not an error: the existing booking rides along so the
// caller can show it.
type AdmissionResult struct {
	Admitted bool
	Message  string
	Booking  *model.Booking
}

// Admission enforces the booking uniqueness invariant and the ownership
// scoping rule for booking queries.
type Admission struct {
	bookings repository.BookingStore
	pub      queue.Publisher
	log      zerolog.Logger
}

// NewAdmission returns an Admission over the given booking store.
func NewAdmission(bookings repository.BookingStore, pub queue.Publisher, log zerolog.Logger) *Admission {
	return &Admission{bookings: bookings, pub: pub, log: log}
}

// Create admits a booking unless one already exists for its (treatment,
// date, patient) triple.  The lookup and the insert are separate store
// operations; the unique index over the triple backstops the gap between
// them, so a lost race surfaces as a duplicate-key insert and is reported as
// the same rejection the lookup would have produced.
func (s *Admission) Create(ctx context.Context, b *model.Booking) (*AdmissionResult, error) {
	existing, err := s.bookings.FindByTriple(ctx, b.Treatment, b.Date, b.Patient)
	if err == nil {
		return &AdmissionResult{Admitted: false, Message: "Already have a booking", Booking: existing}, nil
	}
	if !errors.Is(err, repository.ErrBookingNotFound) {
		return nil, err
	}

	err = s.bookings.Insert(ctx, b)
	if errors.Is(err, repository.ErrDuplicateBooking) {
		winner, ferr := s.bookings.FindByTriple(ctx, b.Treatment, b.Date, b.Patient)
		if ferr != nil {
			return nil, ferr
		}
		return &AdmissionResult{Admitted: false, Message: "Already have a booking", Booking: winner}, nil
	}
	if err != nil {
		return nil, err
	}

	ev := queue.BookingCreatedEvent{
		BookingID: b.ID.Hex(),
		Treatment: b.Treatment,
		Date:      b.Date,
		Slot:      b.Slot,
		Patient:   b.Patient,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if perr := s.pub.PublishBookingCreated(ctx, ev); perr != nil {
		s.log.Warn().Err(perr).Str("booking_id", ev.BookingID).Msg("booking.created publish failed")
	}
	return &AdmissionResult{Admitted: true, Message: "A booking added successfully", Booking: b}, nil
}

// ListForPatient returns the bookings of patient, but only when the verified
// caller is that patient.  Any mismatch is ErrNotOwner regardless of role.
func (s *Admission) ListForPatient(ctx context.Context, patient string, ident auth.Identity) ([]model.Booking, error) {
	if patient != ident.Email {
		return nil, ErrNotOwner
	}
	return s.bookings.FindByPatient(ctx, patient)
}

// ByID fetches one booking by id.  Callers must hold a verified identity;
// there is no ownership check beyond that.
func (s *Admission) ByID(ctx context.Context, id string) (*model.Booking, error) {
	return s.bookings.FindByID(ctx, id)
}
