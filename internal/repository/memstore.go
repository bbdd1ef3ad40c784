package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/doctors-portal/internal/model"
)

// MemStore is an in-memory implementation of the store adapter.  It exists so
// services and handlers can be exercised hermetically; it enforces the same
// constraints the Mongo indexes do (unique booking triple, unique payment
// transaction id) under a single mutex.
type MemStore struct {
	mu       sync.Mutex
	users    map[string]model.User
	services []model.Service
	bookings []model.Booking
	doctors  map[string]model.Doctor
	payments map[string]model.Payment
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users:    map[string]model.User{},
		doctors:  map[string]model.Doctor{},
		payments: map[string]model.Payment{},
	}
}

// Adapter exposes the MemStore through the Store interface bundle.
func (m *MemStore) Adapter() Store {
	return Store{
		Users:    memUsers{m},
		Services: memServices{m},
		Bookings: memBookings{m},
		Doctors:  memDoctors{m},
		Payments: memPayments{m},
	}
}

// SeedServices installs catalog entries, standing in for the external seeding
// the real system relies on.
func (m *MemStore) SeedServices(services ...model.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range services {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		m.services = append(m.services, s)
	}
}

// SeedUser installs a user document directly, bypassing the upsert path.
func (m *MemStore) SeedUser(u model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.Email] = u
}

// Payments returns a snapshot of the stored payment records.
func (m *MemStore) Payments() []model.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, p)
	}
	return out
}

type memUsers struct{ s *MemStore }

func (r memUsers) All(ctx context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return out, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r memUsers) Upsert(ctx context.Context, email string, profile map[string]any) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		u = model.User{ID: primitive.NewObjectID(), Email: email}
	}
	if v, ok := profile["name"].(string); ok {
		u.Name = v
	}
	if v, ok := profile["phone"].(string); ok {
		u.Phone = v
	}
	r.s.users[email] = u
	return nil
}

func (r memUsers) SetRole(ctx context.Context, email, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return ErrUserNotFound
	}
	u.Role = role
	r.s.users[email] = u
	return nil
}

type memServices struct{ s *MemStore }

func (r memServices) Names(ctx context.Context) ([]model.ServiceName, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.ServiceName, 0, len(r.s.services))
	for _, s := range r.s.services {
		out = append(out, model.ServiceName{ID: s.ID, Name: s.Name})
	}
	return out, nil
}

func (r memServices) All(ctx context.Context) ([]model.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Service, len(r.s.services))
	for i, s := range r.s.services {
		out[i] = s
		out[i].Slots = append([]string(nil), s.Slots...)
	}
	return out, nil
}

type memBookings struct{ s *MemStore }

func (r memBookings) FindByTriple(ctx context.Context, treatment, date, patient string) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.tripleLocked(treatment, date, patient)
}

func (m *MemStore) tripleLocked(treatment, date, patient string) (*model.Booking, error) {
	for i := range m.bookings {
		b := m.bookings[i]
		if b.Treatment == treatment && b.Date == date && b.Patient == patient {
			return &b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r memBookings) Insert(ctx context.Context, b *model.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, err := r.s.tripleLocked(b.Treatment, b.Date, b.Patient); err == nil {
		return ErrDuplicateBooking
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	r.s.bookings = append(r.s.bookings, *b)
	return nil
}

func (r memBookings) FindByDate(ctx context.Context, date string) ([]model.Booking, error) {
	return r.filter(func(b model.Booking) bool { return b.Date == date })
}

func (r memBookings) FindByPatient(ctx context.Context, patient string) ([]model.Booking, error) {
	return r.filter(func(b model.Booking) bool { return b.Patient == patient })
}

func (r memBookings) filter(keep func(model.Booking) bool) ([]model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Booking{}
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r memBookings) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.bookings {
		if r.s.bookings[i].ID.Hex() == id {
			b := r.s.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r memBookings) MarkPaid(ctx context.Context, id, transactionID string) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.bookings {
		if r.s.bookings[i].ID.Hex() == id {
			r.s.bookings[i].Paid = true
			r.s.bookings[i].TransactionID = transactionID
			b := r.s.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrBookingNotFound
}

type memDoctors struct{ s *MemStore }

func (r memDoctors) All(ctx context.Context) ([]model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (r memDoctors) Insert(ctx context.Context, d *model.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	r.s.doctors[d.Email] = *d
	return nil
}

func (r memDoctors) DeleteByEmail(ctx context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[email]; !ok {
		return ErrDoctorNotFound
	}
	delete(r.s.doctors, email)
	return nil
}

type memPayments struct{ s *MemStore }

func (r memPayments) Append(ctx context.Context, p *model.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.TransactionID]; ok {
		return nil // already appended, keep the first record
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.s.payments[p.TransactionID] = *p
	return nil
}
