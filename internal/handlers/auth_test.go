package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fuelease/fuelease/internal/auth"
	"github.com/fuelease/fuelease/internal/models"
	"github.com/fuelease/fuelease/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidationTestHandler(t *testing.T) (*AuthHandler, *auth.TokenManager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tm := auth.NewTokenManager("test-secret-key-for-handler-tests", time.Hour)
	svc := services.NewAuthService(tm, nil, logger, 10*time.Minute)
	return NewAuthHandler(svc, logger), tm
}

func TestLogin_InvalidBody(t *testing.T) {
	handler, _ := newValidationTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/admin/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Login(models.RoleAdmin)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_ValidationErrors(t *testing.T) {
	handler, _ := newValidationTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"Password123"}`},
		{"malformed email", `{"email":"not-an-email","password":"Password123"}`},
		{"missing password", `{"email":"admin@fuelease.app"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/admin/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.Login(models.RoleAdmin)(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestVerifyTwoFactor_MissingBearer(t *testing.T) {
	handler, _ := newValidationTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/verify-2fa", strings.NewReader(`{"code":"123456"}`))
	rec := httptest.NewRecorder()
	handler.VerifyTwoFactor(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyTwoFactor_BadCodeFormat(t *testing.T) {
	handler, tm := newValidationTestHandler(t)

	pending, err := tm.GeneratePendingToken(
		"principal-1", "admin@fuelease.app", models.RoleAdmin,
		models.PurposeLogin, "hash", 10*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"too short", `{"code":"123"}`},
		{"not numeric", `{"code":"abcdef"}`},
		{"missing", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/verify-2fa", strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer "+pending)
			rec := httptest.NewRecorder()
			handler.VerifyTwoFactor(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestVerifyTwoFactor_AccessTokenRejected(t *testing.T) {
	handler, tm := newValidationTestHandler(t)

	accessToken, err := tm.GenerateAccessToken("principal-1", "admin@fuelease.app", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/verify-2fa", strings.NewReader(`{"code":"123456"}`))
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	handler.VerifyTwoFactor(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDecodeToken_ReturnsClaims(t *testing.T) {
	handler, tm := newValidationTestHandler(t)

	token, err := tm.GenerateAccessToken("principal-1", "admin@fuelease.app", models.RoleAdmin)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"token": token})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/decode-token", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	handler.DecodeToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Claims map[string]interface{} `json:"claims"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "principal-1", resp.Claims["principal_id"])
	assert.Equal(t, models.TokenTypeAccess, resp.Claims["type"])
}

func TestDecodeToken_Malformed(t *testing.T) {
	handler, _ := newValidationTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/decode-token", strings.NewReader(`{"token":"garbage"}`))
	rec := httptest.NewRecorder()
	handler.DecodeToken(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
