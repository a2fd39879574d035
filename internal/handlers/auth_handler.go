package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/membersonly/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method SignUp validates the sign-up input and creates a new user with default statuses.
	//
	// "req" parameter contains first name, last name, email and password.
	//
	// Returns the created profile (password excluded) together with access and refresh tokens.
	// If the input is invalid or the email is already taken, the error will be returned
	// together with "nil" and empty token values.
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.ProfileResponse, string, string, error)
	// Method Login authenticates a user by email and password.
	//
	// "req" parameter contains email and password.
	//
	// Returns the profile together with access and refresh tokens. An unknown email and a
	// wrong password fail with the same error.
	Login(ctx context.Context, req *models.LoginRequest) (*models.ProfileResponse, string, string, error)
	// Method Refresh validates a refresh token and issues a new token pair.
	//
	// "refreshToken" parameter identifies the user.
	//
	// If the refresh token is invalid or expired, the error will be returned together with
	// empty token values.
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.SignUp)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/refresh", h.Refresh)
	})
}

// SignUp handles POST /auth/signup
// @Summary Sign up a new user
// @Description Create a new account with first name, last name, email and password. Returns the created profile and sets access and refresh tokens as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignUpRequest true "Sign-up request"
// @Success 201 {object} models.ProfileResponse "Created profile"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 409 {object} map[string]string "Email already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, accessToken, refreshToken, err := h.authService.SignUp(r.Context(), &req)
	if err != nil {
		h.logger.Warn("failed to sign up user", zap.Error(err))
		h.respondDomainError(w, err)
		return
	}

	setTokenCookies(w, accessToken, refreshToken)
	h.respondJSON(w, http.StatusCreated, profile)
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with email and password. Returns the profile and sets access and refresh tokens as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.ProfileResponse "Authenticated profile"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, accessToken, refreshToken, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.logger.Warn("failed to login user", zap.Error(err))
		h.respondDomainError(w, err)
		return
	}

	setTokenCookies(w, accessToken, refreshToken)
	h.respondJSON(w, http.StatusOK, profile)
}

// Logout handles POST /auth/logout
// @Summary Logout user
// @Description Expire the access and refresh token cookies. The tokens themselves are stateless, so this is the whole logout.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearTokenCookies(w)
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /auth/refresh
// @Summary Refresh access token
// @Description Refresh access and refresh tokens using a valid refresh token. Token can be provided in request body or as a cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest false "Refresh token request (optional if using cookie)"
// @Success 200 {object} map[string]string "Tokens refreshed successfully"
// @Failure 400 {object} map[string]string "Refresh token required"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	// Get refresh token from request body or cookie
	var refreshToken string
	var req RefreshRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		refreshToken = req.RefreshToken
	} else {
		cookie, err := r.Cookie("refresh_token")
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "refresh token required")
			return
		}
		refreshToken = cookie.Value
	}

	accessToken, newRefreshToken, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.logger.Warn("failed to refresh tokens", zap.Error(err))
		h.respondError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	setTokenCookies(w, accessToken, newRefreshToken)
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "tokens refreshed successfully"})
}

// setTokenCookies sets access and refresh tokens as HTTP-only cookies
func setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	// Access token cookie (1 hour)
	accessCookie := &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   3600, // 1 hour
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, accessCookie)

	// Refresh token cookie (7 days)
	refreshCookie := &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   604800, // 7 days
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, refreshCookie)
}

// clearTokenCookies expires both token cookies
func clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{"access_token", "refresh_token"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
