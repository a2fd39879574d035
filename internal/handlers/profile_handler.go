package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/membersonly/backend/internal/auth"
	"github.com/membersonly/backend/internal/models"
	"go.uber.org/zap"
)

// MembershipService is the interface that wraps methods for profile and status upgrade business logic.
type MembershipService interface {
	// Method GetProfile retrieves the profile of the given user.
	//
	// "userID" parameter identifies the user.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error)
	// Method BecomeMember upgrades the user to member status.
	//
	// "userID" parameter identifies the user.
	// "passcode" parameter must match the configured member passcode exactly.
	//
	// Returns the updated profile. A wrong passcode fails with a forbidden error and
	// leaves the statuses untouched.
	BecomeMember(ctx context.Context, userID int, passcode string) (*models.ProfileResponse, error)
	// Method BecomeAdmin upgrades the user to admin status (which implies member status).
	//
	// "userID" parameter identifies the user.
	// "passcode" parameter must match the configured admin passcode exactly.
	//
	// Returns the updated profile. A wrong passcode fails with a forbidden error and
	// leaves the statuses untouched.
	BecomeAdmin(ctx context.Context, userID int, passcode string) (*models.ProfileResponse, error)
}

// ProfileHandler handles profile and status upgrade HTTP requests
type ProfileHandler struct {
	BaseHandler
	membershipService MembershipService
	tokenGenerator    *auth.TokenGenerator
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(membershipService MembershipService, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:       BaseHandler{logger: logger},
		membershipService: membershipService,
		tokenGenerator:    tokenGenerator,
	}
}

// RegisterRoutes registers all profile handler routes
func (h *ProfileHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/profile", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetProfile)
		r.Post("/membership", h.BecomeMember)
		r.Post("/admin", h.BecomeAdmin)
	})
}

// GetProfile handles GET /api/v1/profile
// @Summary Get own profile
// @Description Get the authenticated user's profile. Requires authentication.
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.ProfileResponse "User profile"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.logger.Error("user ID not found in context")
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.membershipService.GetProfile(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get profile", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	h.respondJSON(w, http.StatusOK, profile)
}

// BecomeMember handles POST /api/v1/profile/membership
// @Summary Become a member
// @Description Unlock member status with the member passcode. On success the session cookies are re-issued with the new capability level, no re-login needed.
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.PasscodeRequest true "Member passcode"
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Wrong passcode"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /profile/membership [post]
func (h *ProfileHandler) BecomeMember(w http.ResponseWriter, r *http.Request) {
	h.upgrade(w, r, h.membershipService.BecomeMember)
}

// BecomeAdmin handles POST /api/v1/profile/admin
// @Summary Become an admin
// @Description Unlock admin status with the admin passcode. Admin implies member. On success the session cookies are re-issued with the new capability level.
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.PasscodeRequest true "Admin passcode"
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 403 {object} map[string]string "Wrong passcode"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /profile/admin [post]
func (h *ProfileHandler) BecomeAdmin(w http.ResponseWriter, r *http.Request) {
	h.upgrade(w, r, h.membershipService.BecomeAdmin)
}

// upgrade runs a status upgrade and refreshes the session cookies so the new
// capability level is current for role-gated reads without a re-login.
func (h *ProfileHandler) upgrade(w http.ResponseWriter, r *http.Request, fn func(context.Context, int, string) (*models.ProfileResponse, error)) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.logger.Error("user ID not found in context")
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.PasscodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := fn(r.Context(), userID, req.Passcode)
	if err != nil {
		h.logger.Warn("failed to upgrade status", zap.Error(err), zap.Int("userId", userID))
		h.respondDomainError(w, err)
		return
	}

	level := models.LevelFor(profile.MembershipStatus, profile.AdminStatus)
	accessToken, refreshToken, err := h.tokenGenerator.GenerateTokens(userID, level)
	if err != nil {
		h.logger.Error("failed to refresh session after upgrade", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to refresh session")
		return
	}

	setTokenCookies(w, accessToken, refreshToken)
	h.respondJSON(w, http.StatusOK, profile)
}
