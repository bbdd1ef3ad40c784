package repository

import "errors"

// Sentinel errors returned by the store adapter.  Handlers compare against
// these with errors.Is to pick response codes; the concrete store (Mongo or
// the in-memory fake) is responsible for translating its own error values
// into them.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrDuplicateBooking = errors.New("booking already exists for treatment, date and patient")
)
