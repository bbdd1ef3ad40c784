package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/doctors-portal/internal/auth"
	"github.com/iliyamo/doctors-portal/internal/handler"
	"github.com/iliyamo/doctors-portal/internal/model"
	"github.com/iliyamo/doctors-portal/internal/queue"
	"github.com/iliyamo/doctors-portal/internal/repository"
	"github.com/iliyamo/doctors-portal/internal/router"
	"github.com/iliyamo/doctors-portal/internal/service"
)

const testSecret = "api-test-secret"

// stubIntents stands in for the payment processor.
type stubIntents struct{}

func (stubIntents) CreateIntent(context.Context, int64) (string, error) {
	return "cs_test_secret", nil
}

type api struct {
	e  *echo.Echo
	ms *repository.MemStore
}

// newAPI assembles the real router over the in-memory store, with the broker
// and processor faked out.
func newAPI(t *testing.T) *api {
	t.Helper()
	ms := repository.NewMemStore()
	ms.SeedServices(
		model.Service{Name: "Cleaning", Slots: []string{"9:00", "10:00", "11:00"}},
		model.Service{Name: "Whitening", Slots: []string{"8:00", "9:00"}},
	)
	store := ms.Adapter()
	log := zerolog.Nop()

	avail := service.NewAvailability(store.Services, store.Bookings)
	admission := service.NewAdmission(store.Bookings, queue.NopPublisher{}, log)
	reconciler := service.NewReconciler(store.Bookings, store.Payments, stubIntents{}, queue.NopPublisher{}, log)

	e := echo.New()
	router.Register(e, router.Handlers{
		Catalog:  handler.NewCatalogHandler(store.Services, avail),
		Users:    handler.NewUserHandler(store.Users, testSecret, 5*time.Hour),
		Bookings: handler.NewBookingHandler(admission, reconciler),
		Payments: handler.NewPaymentHandler(reconciler),
		Doctors:  handler.NewDoctorHandler(store.Doctors),
	}, router.Deps{Secret: testSecret, Users: store.Users})
	return &api{e: e, ms: ms}
}

func (a *api) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func mintToken(t *testing.T, email string) string {
	t.Helper()
	tok, err := auth.IssueToken(testSecret, email, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return tok
}

func TestBookingCreatedOnceThenRejected(t *testing.T) {
	a := newAPI(t)
	body := map[string]any{"treatment": "Cleaning", "date": "2024-05-01", "patient": "a@x.com", "slot": "10:00"}

	rec := a.do(t, http.MethodPost, "/booking", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("first POST status = %d", rec.Code)
	}
	first := decode(t, rec)
	if first["success"] != true {
		t.Fatalf("first booking not admitted: %v", first)
	}
	firstID := first["booking"].(map[string]any)["_id"].(string)
	if firstID == "" {
		t.Fatal("admitted booking has no id")
	}

	rec = a.do(t, http.MethodPost, "/booking", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("second POST status = %d, conflict must not be an error status", rec.Code)
	}
	second := decode(t, rec)
	if second["success"] != false {
		t.Fatalf("duplicate booking admitted: %v", second)
	}
	if got := second["booking"].(map[string]any)["_id"].(string); got != firstID {
		t.Errorf("rejection carries id %s, want original %s", got, firstID)
	}
}

func TestAvailabilitySubtractsBookedSlot(t *testing.T) {
	a := newAPI(t)
	a.do(t, http.MethodPost, "/booking",
		"", map[string]any{"treatment": "Cleaning", "date": "2024-05-01", "patient": "a@x.com", "slot": "10:00"})

	rec := a.do(t, http.MethodGet, "/available?date=2024-05-01", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var services []model.Service
	if err := json.Unmarshal(rec.Body.Bytes(), &services); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, s := range services {
		if s.Name != "Cleaning" {
			continue
		}
		want := []string{"9:00", "11:00"}
		if len(s.Slots) != 2 || s.Slots[0] != want[0] || s.Slots[1] != want[1] {
			t.Errorf("Cleaning slots = %v, want %v", s.Slots, want)
		}
		return
	}
	t.Fatal("Cleaning missing from availability response")
}

func TestUserListRequiresCredential(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodGet, "/user", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no header status = %d, want 401", rec.Code)
	}

	rec = a.do(t, http.MethodGet, "/user", "not-a-token", nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("bad token status = %d, want 403", rec.Code)
	}

	rec = a.do(t, http.MethodGet, "/user", mintToken(t, "a@x.com"), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("verified status = %d, want 200", rec.Code)
	}
}

func TestElevationRequiresAdminRole(t *testing.T) {
	a := newAPI(t)
	a.ms.SeedUser(model.User{Email: "x@x.com", Role: model.RolePatient})
	a.ms.SeedUser(model.User{Email: "pleb@x.com", Role: model.RolePatient})
	a.ms.SeedUser(model.User{Email: "boss@x.com", Role: model.RoleAdmin})

	rec := a.do(t, http.MethodPut, "/user/admin/x@x.com", mintToken(t, "pleb@x.com"), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin grant status = %d, want 403", rec.Code)
	}
	u, err := a.ms.Adapter().Users.FindByEmail(context.Background(), "x@x.com")
	if err != nil {
		t.Fatalf("find target: %v", err)
	}
	if u.Role != model.RolePatient {
		t.Errorf("target role changed to %q by a forbidden request", u.Role)
	}

	// Unknown callers are forbidden too, not 404.
	rec = a.do(t, http.MethodPut, "/user/admin/x@x.com", mintToken(t, "ghost@x.com"), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("unknown caller status = %d, want 403", rec.Code)
	}

	rec = a.do(t, http.MethodPut, "/user/admin/x@x.com", mintToken(t, "boss@x.com"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin grant status = %d, want 200", rec.Code)
	}
	u, _ = a.ms.Adapter().Users.FindByEmail(context.Background(), "x@x.com")
	if !u.IsAdmin() {
		t.Error("target not elevated after admin grant")
	}
}

func TestBookingListScopedToCaller(t *testing.T) {
	a := newAPI(t)
	a.ms.SeedUser(model.User{Email: "boss@x.com", Role: model.RoleAdmin})
	a.do(t, http.MethodPost, "/booking",
		"", map[string]any{"treatment": "Cleaning", "date": "2024-05-01", "patient": "a@x.com", "slot": "10:00"})

	rec := a.do(t, http.MethodGet, "/booking?patient=a@x.com", mintToken(t, "a@x.com"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("own list status = %d", rec.Code)
	}
	var own []model.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &own); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(own) != 1 {
		t.Errorf("own bookings = %d, want 1", len(own))
	}

	rec = a.do(t, http.MethodGet, "/booking?patient=a@x.com", mintToken(t, "b@x.com"), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("cross-patient status = %d, want 403", rec.Code)
	}

	// No admin override for reading another patient's bookings.
	rec = a.do(t, http.MethodGet, "/booking?patient=a@x.com", mintToken(t, "boss@x.com"), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("admin cross-patient status = %d, want 403", rec.Code)
	}
}

func TestBookingByID(t *testing.T) {
	a := newAPI(t)
	rec := a.do(t, http.MethodPost, "/booking",
		"", map[string]any{"treatment": "Cleaning", "date": "2024-05-01", "patient": "a@x.com", "slot": "10:00"})
	id := decode(t, rec)["booking"].(map[string]any)["_id"].(string)

	rec = a.do(t, http.MethodGet, "/booking/"+id, mintToken(t, "a@x.com"), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	rec = a.do(t, http.MethodGet, "/booking/66b000000000000000000000", mintToken(t, "a@x.com"), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
	rec = a.do(t, http.MethodGet, "/booking/"+id, "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no credential status = %d, want 401", rec.Code)
	}
}

func TestReconcileEndpoint(t *testing.T) {
	a := newAPI(t)
	rec := a.do(t, http.MethodPost, "/booking",
		"", map[string]any{"treatment": "Cleaning", "date": "2024-05-01", "patient": "a@x.com", "slot": "10:00"})
	id := decode(t, rec)["booking"].(map[string]any)["_id"].(string)

	rec = a.do(t, http.MethodPatch, "/booking/"+id, mintToken(t, "a@x.com"),
		map[string]any{"transactionId": "txn_abc", "amount": 4500, "patient": "a@x.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	booking := decode(t, rec)["booking"].(map[string]any)
	if booking["paid"] != true {
		t.Error("booking not paid after reconcile")
	}
	if booking["transactionId"] != "txn_abc" {
		t.Errorf("transactionId = %v", booking["transactionId"])
	}
	if got := a.ms.Payments(); len(got) != 1 {
		t.Errorf("payment records = %d, want 1", len(got))
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodPost, "/create-payment-intent", "", map[string]any{"amount": 4500})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no credential status = %d, want 401", rec.Code)
	}

	rec = a.do(t, http.MethodPost, "/create-payment-intent", mintToken(t, "a@x.com"), map[string]any{"amount": 4500})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode(t, rec)["clientSecret"]; got != "cs_test_secret" {
		t.Errorf("clientSecret = %v", got)
	}
}

func TestProfileUpsertIssuesTokenAndIgnoresRole(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodPut, "/user/new@x.com", "",
		map[string]any{"name": "Nur", "role": "admin"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	tok, _ := decode(t, rec)["token"].(string)
	if tok == "" {
		t.Fatal("no token issued")
	}
	ident, err := auth.VerifyHeader(testSecret, "Bearer "+tok)
	if err != nil || ident.Email != "new@x.com" {
		t.Errorf("issued token verifies as (%v, %v)", ident, err)
	}

	u, err := a.ms.Adapter().Users.FindByEmail(context.Background(), "new@x.com")
	if err != nil {
		t.Fatalf("find upserted user: %v", err)
	}
	if u.IsAdmin() {
		t.Error("self-service upsert granted admin role")
	}
}

func TestAdminFlag(t *testing.T) {
	a := newAPI(t)
	a.ms.SeedUser(model.User{Email: "boss@x.com", Role: model.RoleAdmin})

	if got := decode(t, a.do(t, http.MethodGet, "/admin/boss@x.com", "", nil)); got["admin"] != true {
		t.Errorf("admin flag for admin = %v", got)
	}
	if got := decode(t, a.do(t, http.MethodGet, "/admin/nobody@x.com", "", nil)); got["admin"] != false {
		t.Errorf("admin flag for unknown = %v", got)
	}
}

func TestDoctorRosterAdminOnly(t *testing.T) {
	a := newAPI(t)
	a.ms.SeedUser(model.User{Email: "boss@x.com", Role: model.RoleAdmin})
	a.ms.SeedUser(model.User{Email: "pleb@x.com", Role: model.RolePatient})
	boss := mintToken(t, "boss@x.com")

	doctor := map[string]any{"name": "Dr. Who", "email": "who@x.com", "specialty": "Orthodontics"}
	if rec := a.do(t, http.MethodPost, "/doctor", mintToken(t, "pleb@x.com"), doctor); rec.Code != http.StatusForbidden {
		t.Errorf("non-admin create status = %d, want 403", rec.Code)
	}
	if rec := a.do(t, http.MethodPost, "/doctor", "", doctor); rec.Code != http.StatusUnauthorized {
		t.Errorf("no credential create status = %d, want 401", rec.Code)
	}

	if rec := a.do(t, http.MethodPost, "/doctor", boss, doctor); rec.Code != http.StatusOK {
		t.Fatalf("admin create status = %d", rec.Code)
	}
	rec := a.do(t, http.MethodGet, "/doctor", boss, nil)
	var roster []model.Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &roster); err != nil {
		t.Fatalf("decode roster: %v", err)
	}
	if len(roster) != 1 || roster[0].Email != "who@x.com" {
		t.Errorf("roster = %+v", roster)
	}

	if rec := a.do(t, http.MethodDelete, "/doctor/who@x.com", boss, nil); rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := a.do(t, http.MethodDelete, "/doctor/who@x.com", boss, nil); rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want 404", rec.Code)
	}
}
