package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/membersonly/backend/internal/services"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondDomainError maps a service error onto the HTTP taxonomy and sends it.
// Unknown errors are reported as an opaque 500 so storage details never leak.
func (h *BaseHandler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrWrongPasscode):
		h.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrMessageNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("unexpected error", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
