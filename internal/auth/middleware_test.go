package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fuelease/fuelease/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T, captured **models.TokenClaims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = PrincipalFromContext(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_ValidAccessToken(t *testing.T) {
	tm := NewTokenManager("test-secret-key-for-middleware", time.Hour)
	token, err := tm.GenerateAccessToken("principal-1", "admin@fuelease.app", models.RoleAdmin)
	require.NoError(t, err)

	var claims *models.TokenClaims
	handler := Middleware(tm)(protectedHandler(t, &claims))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, "principal-1", claims.PrincipalID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	tm := NewTokenManager("test-secret-key-for-middleware", time.Hour)

	var claims *models.TokenClaims
	handler := Middleware(tm)(protectedHandler(t, &claims))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, claims)
}

func TestMiddleware_RejectsPendingToken(t *testing.T) {
	tm := NewTokenManager("test-secret-key-for-middleware", time.Hour)
	token, err := tm.GeneratePendingToken(
		"principal-1", "admin@fuelease.app", models.RoleAdmin,
		models.PurposeLogin, "hash", 10*time.Minute)
	require.NoError(t, err)

	var claims *models.TokenClaims
	handler := Middleware(tm)(protectedHandler(t, &claims))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, claims)
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager("test-secret-key-for-middleware", time.Hour)

	tests := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
	}{
		{"matching role", models.RoleAdmin, []string{models.RoleAdmin}, http.StatusOK},
		{"one of several", models.RoleOperator, []string{models.RoleAdmin, models.RoleOperator}, http.StatusOK},
		{"wrong role", models.RoleCustomer, []string{models.RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tm.GenerateAccessToken("principal-1", "someone@fuelease.app", tt.role)
			require.NoError(t, err)

			var claims *models.TokenClaims
			handler := Middleware(tm)(RequireRole(tt.allowed...)(protectedHandler(t, &claims)))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"missing", "", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"empty token", "Bearer ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, ok := BearerToken(req)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, token)
		})
	}
}
