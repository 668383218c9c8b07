package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "resbook/pkg/errors"
	"resbook/pkg/logger"
	"resbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type stubVerifier struct {
	identity model.Identity
	err      error
}

func (s *stubVerifier) Verify(token string) (model.Identity, error) {
	if s.err != nil {
		return model.Identity{}, s.err
	}
	return s.identity, nil
}

type mockBookingService struct {
	createFunc  func(ctx context.Context, identity model.Identity, req *model.BookingRequest) (*model.Booking, error)
	getByIDFunc func(ctx context.Context, identity model.Identity, id string) (*model.Booking, error)
	deleteFunc  func(ctx context.Context, identity model.Identity, id string) error
}

func (m *mockBookingService) Create(ctx context.Context, identity model.Identity, req *model.BookingRequest) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, identity, req)
	}
	return &model.Booking{ID: "65f1a2b3c4d5e6f7a8b9bb01", ResourceID: req.ResourceID, OwnerID: identity.OwnerID}, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, identity model.Identity, id string) (*model.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, identity, id)
	}
	return &model.Booking{ID: id, OwnerID: identity.OwnerID}, nil
}

func (m *mockBookingService) GetAll(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingService) GetMine(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error) {
	return []*model.Booking{}, 0, nil
}

func (m *mockBookingService) Update(ctx context.Context, identity model.Identity, id string, req *model.BookingRequest) (*model.Booking, error) {
	return &model.Booking{ID: id, ResourceID: req.ResourceID, OwnerID: identity.OwnerID}, nil
}

func (m *mockBookingService) Delete(ctx context.Context, identity model.Identity, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, identity, id)
	}
	return nil
}

func newTestRouter(svc *mockBookingService, verifier *stubVerifier) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	router := httprouter.New()
	NewBookingHandler(svc, verifier, log).RegisterRoutes(router)
	return router
}

func authedRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreate_ReturnsCreated(t *testing.T) {
	verifier := &stubVerifier{identity: model.Identity{OwnerID: "65f1a2b3c4d5e6f7a8b9c0d1", Roles: []string{model.RoleUser}}}
	var gotIdentity model.Identity
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, identity model.Identity, req *model.BookingRequest) (*model.Booking, error) {
			gotIdentity = identity
			return &model.Booking{ID: "65f1a2b3c4d5e6f7a8b9bb01", ResourceID: req.ResourceID, OwnerID: identity.OwnerID}, nil
		},
	}
	router := newTestRouter(svc, verifier)

	body, _ := json.Marshal(model.BookingRequest{
		ResourceID: "65f1a2b3c4d5e6f7a8b9aa01",
		StartTime:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings", string(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if gotIdentity.OwnerID != "65f1a2b3c4d5e6f7a8b9c0d1" {
		t.Errorf("service received identity %q, want the verified caller", gotIdentity.OwnerID)
	}
}

func TestCreate_MissingToken(t *testing.T) {
	router := newTestRouter(&mockBookingService{}, &stubVerifier{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{}"))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCreate_InvalidTokenRejected(t *testing.T) {
	verifier := &stubVerifier{err: apperrors.Unauthenticated("Invalid token")}
	router := newTestRouter(&mockBookingService{}, verifier)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings", "{}"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	verifier := &stubVerifier{identity: model.Identity{OwnerID: "65f1a2b3c4d5e6f7a8b9c0d1"}}
	router := newTestRouter(&mockBookingService{}, verifier)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings", "{not json"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreate_ServiceConflictMapsTo409(t *testing.T) {
	verifier := &stubVerifier{identity: model.Identity{OwnerID: "65f1a2b3c4d5e6f7a8b9c0d1"}}
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, identity model.Identity, req *model.BookingRequest) (*model.Booking, error) {
			return nil, apperrors.Conflict("Booking conflicts with an existing reservation")
		},
	}
	router := newTestRouter(svc, verifier)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings", "{}"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestGetByID_ForbiddenMapsTo403(t *testing.T) {
	verifier := &stubVerifier{identity: model.Identity{OwnerID: "65f1a2b3c4d5e6f7a8b9c0e2"}}
	svc := &mockBookingService{
		getByIDFunc: func(ctx context.Context, identity model.Identity, id string) (*model.Booking, error) {
			return nil, apperrors.Forbidden("You do not have permission to read this booking")
		},
	}
	router := newTestRouter(svc, verifier)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/bookings/id/65f1a2b3c4d5e6f7a8b9bb01", ""))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestDelete_NoContent(t *testing.T) {
	verifier := &stubVerifier{identity: model.Identity{OwnerID: "65f1a2b3c4d5e6f7a8b9c0d1"}}
	router := newTestRouter(&mockBookingService{}, verifier)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/bookings/id/65f1a2b3c4d5e6f7a8b9bb01", ""))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestRoutes_MyAndWildcardCoexist(t *testing.T) {
	verifier := &stubVerifier{identity: model.Identity{OwnerID: "65f1a2b3c4d5e6f7a8b9c0d1"}}
	router := newTestRouter(&mockBookingService{}, verifier)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/bookings/my", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/bookings/my status = %d, want %d", rec.Code, http.StatusOK)
	}
}
