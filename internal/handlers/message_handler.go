package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/membersonly/backend/internal/auth"
	"github.com/membersonly/backend/internal/models"
	"go.uber.org/zap"
)

// MessageService is the interface that wraps methods for message board business logic.
type MessageService interface {
	// Method ListPublic retrieves the restricted message shape visible to everyone.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListPublic(ctx context.Context) ([]models.MessagePreview, error)
	// Method ListFull retrieves the full message shape with authors and timestamps.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	ListFull(ctx context.Context) ([]models.MessageResponse, error)
	// Method Add validates and stores a new message.
	//
	// "authorID" parameter identifies the posting user.
	// "req" parameter contains title and text.
	//
	// If the input violates the content bounds, a validation error will be returned.
	Add(ctx context.Context, authorID int, req *models.NewMessageRequest) error
	// Method Delete removes a message by ID.
	//
	// "messageID" parameter identifies the message.
	//
	// If no message with such ID exists, a not-found error will be returned.
	Delete(ctx context.Context, messageID int) error
}

// MessageHandler handles message board HTTP requests
type MessageHandler struct {
	BaseHandler
	messageService MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    BaseHandler{logger: logger},
		messageService: messageService,
	}
}

// RegisterRoutes registers all message handler routes behind their capability gates.
// Posting requires any authenticated user, the full list requires member level and
// deletion requires admin level.
func (h *MessageHandler) RegisterRoutes(r chi.Router, authMiddleware, memberMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/messages", func(r chi.Router) {
		r.Get("/", h.ListPublic)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Add)
		})
		r.Group(func(r chi.Router) {
			r.Use(memberMiddleware)
			r.Get("/full", h.ListFull)
		})
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// ListPublic handles GET /api/v1/messages
// @Summary List message previews
// @Description Get up to 100 messages, newest first. Each message exposes only id, title and text — no author, no timestamp.
// @Tags messages
// @Produce json
// @Success 200 {array} models.MessagePreview
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /messages [get]
func (h *MessageHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	previews, err := h.messageService.ListPublic(r.Context())
	if err != nil {
		h.logger.Error("failed to list message previews", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}

	h.respondJSON(w, http.StatusOK, previews)
}

// ListFull handles GET /api/v1/messages/full
// @Summary List full messages
// @Description Get up to 100 messages, newest first, each with author and timestamp. Requires member status.
// @Tags messages
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.MessageResponse
// @Failure 401 {object} map[string]string "Unauthorized - member status required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /messages/full [get]
func (h *MessageHandler) ListFull(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageService.ListFull(r.Context())
	if err != nil {
		h.logger.Error("failed to list full messages", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}

	h.respondJSON(w, http.StatusOK, messages)
}

// Add handles POST /api/v1/messages
// @Summary Post a new message
// @Description Create a message authored by the authenticated user. Title is capped at 30 characters, text at 255.
// @Tags messages
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.NewMessageRequest true "New message"
// @Success 201 {object} map[string]string "Message created"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /messages [post]
func (h *MessageHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.logger.Error("user ID not found in context")
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.NewMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.messageService.Add(r.Context(), userID, &req); err != nil {
		h.logger.Warn("failed to add message", zap.Error(err))
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// Delete handles DELETE /api/v1/messages/{id}
// @Summary Delete a message
// @Description Remove a message by id. Requires admin status.
// @Tags messages
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]string "Message deleted"
// @Failure 400 {object} map[string]string "Invalid id parameter"
// @Failure 401 {object} map[string]string "Unauthorized - admin status required"
// @Failure 404 {object} map[string]string "Message not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /messages/{id} [delete]
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	messageID, err := strconv.Atoi(idParam)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	if err := h.messageService.Delete(r.Context(), messageID); err != nil {
		h.logger.Warn("failed to delete message", zap.Error(err), zap.Int("messageId", messageID))
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
