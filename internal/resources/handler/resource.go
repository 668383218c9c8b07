package handler

import (
	"encoding/json"
	"net/http"

	"resbook/internal/resources/service"
	httputil "resbook/pkg/http"
	"resbook/pkg/logger"
	"resbook/pkg/middleware"
	"resbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ResourceHandler struct {
	service  service.ResourceService
	verifier middleware.TokenVerifier
	log      *logger.Logger
}

func NewResourceHandler(service service.ResourceService, verifier middleware.TokenVerifier, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		service:  service,
		verifier: verifier,
		log:      log,
	}
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var resource model.Resource
	if err := json.NewDecoder(r.Body).Decode(&resource); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &resource); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, resource); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ResourceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	resource, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resource); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ResourceHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resources, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, resources, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.ResourceUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

// RegisterRoutes exposes catalog reads to any authenticated caller and
// restricts catalog writes to administrators.
func (h *ResourceHandler) RegisterRoutes(router *httprouter.Router) {
	authenticated := middleware.RequireAuth(h.verifier, h.log)
	adminOnly := middleware.RequireRole(h.verifier, h.log, model.RoleAdmin)

	router.GET("/api/resources", authenticated(h.GetAll))
	router.GET("/api/resources/:id", authenticated(h.GetByID))
	router.POST("/api/resources", adminOnly(h.Create))
	router.PUT("/api/resources/:id", adminOnly(h.Update))
	router.DELETE("/api/resources/:id", adminOnly(h.Delete))
}
