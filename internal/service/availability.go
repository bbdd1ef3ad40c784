// Package service holds the portal's decision logic: slot availability,
// booking admission and payment reconciliation.  Everything here reads and
// writes exclusively through the store adapter.
package service

import (
	"context"

	"github.com/iliyamo/doctors-portal/internal/model"
	"github.com/iliyamo/doctors-portal/internal/repository"
)

// Availability computes the free slots per service for a given date.
type Availability struct {
	services repository.ServiceStore
	bookings repository.BookingStore
}

// NewAvailability returns an Availability reading from the given stores.
func NewAvailability(services repository.ServiceStore, bookings repository.BookingStore) *Availability {
	return &Availability{services: services, bookings: bookings}
}

// SlotsFor returns every service with its slot template reduced to the slots
// not yet claimed by a booking on date.  The subtraction preserves the
// template's original ordering.  An empty date matches no bookings, so every
// service comes back fully available; that passthrough is intentional.  The
// result is recomputed from the store on every call because bookings change
// between requests.
func (a *Availability) SlotsFor(ctx context.Context, date string) ([]model.Service, error) {
	services, err := a.services.All(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := a.bookings.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	// Claimed slots per treatment name.
	claimed := make(map[string]map[string]bool)
	for _, b := range booked {
		if claimed[b.Treatment] == nil {
			claimed[b.Treatment] = make(map[string]bool)
		}
		claimed[b.Treatment][b.Slot] = true
	}

	for i := range services {
		taken := claimed[services[i].Name]
		if len(taken) == 0 {
			continue // full template stays as stored
		}
		free := make([]string, 0, len(services[i].Slots))
		for _, slot := range services[i].Slots {
			if !taken[slot] {
				free = append(free, slot)
			}
		}
		services[i].Slots = free
	}
	return services, nil
}
