package handler

import (
	"encoding/json"
	"net/http"

	"resbook/internal/bookings/service"
	apperrors "resbook/pkg/errors"
	httputil "resbook/pkg/http"
	"resbook/pkg/logger"
	"resbook/pkg/middleware"
	"resbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service  service.BookingService
	verifier middleware.TokenVerifier
	log      *logger.Logger
}

func NewBookingHandler(service service.BookingService, verifier middleware.TokenVerifier, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:  service,
		verifier: verifier,
		log:      log,
	}
}

// identity returns the authenticated caller. Routes are wrapped by
// RequireAuth, so a missing identity means the route was wired without it.
func (h *BookingHandler) identity(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthenticated("Authentication required")); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "WriteError", "error", writeErr)
		}
		return model.Identity{}, false
	}
	return identity, true
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), identity, id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), identity, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) GetMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetMine", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.GetMine(r.Context(), identity, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetMine", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetMine", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	id := ps.ByName("id")

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Update(r.Context(), identity, id, &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	authenticated := middleware.RequireAuth(h.verifier, h.log)

	router.POST("/api/bookings", authenticated(h.Create))
	router.GET("/api/bookings", authenticated(h.GetAll))
	router.GET("/api/bookings/my", authenticated(h.GetMine))
	router.GET("/api/bookings/id/:id", authenticated(h.GetByID))
	router.PUT("/api/bookings/id/:id", authenticated(h.Update))
	router.DELETE("/api/bookings/id/:id", authenticated(h.Delete))
}
