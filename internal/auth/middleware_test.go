package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/membersonly/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 1*time.Hour, 7*24*time.Hour)

	memberToken, _, err := tg.GenerateTokens(7, models.LevelMember)
	require.NoError(t, err)

	tests := []struct {
		name           string
		requiredLevel  models.Level
		setupRequest   func(*http.Request)
		expectedStatus int
	}{
		{
			name:           "no token",
			requiredLevel:  models.LevelUser,
			setupRequest:   func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "invalid token",
			requiredLevel: models.LevelUser,
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-token")
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "valid token via header",
			requiredLevel: models.LevelUser,
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+memberToken)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "valid token via cookie",
			requiredLevel: models.LevelUser,
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "access_token", Value: memberToken})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "member level satisfies member gate",
			requiredLevel: models.LevelMember,
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+memberToken)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "member level fails admin gate",
			requiredLevel: models.LevelAdmin,
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+memberToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID, ok := GetUserID(r.Context())
				assert.True(t, ok)
				assert.Equal(t, 7, userID)

				level, ok := GetLevel(r.Context())
				assert.True(t, ok)
				assert.Equal(t, models.LevelMember, level)

				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setupRequest(req)
			w := httptest.NewRecorder()

			Middleware(tg, tt.requiredLevel)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(req.Context())
	assert.False(t, ok)

	_, ok = GetLevel(req.Context())
	assert.False(t, ok)
}
