package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fuelease/fuelease/internal/auth"
	"github.com/fuelease/fuelease/internal/services"
	pkghttp "github.com/fuelease/fuelease/pkg/http"
)

// AuthHandler serves the two-step login flow. The same handler is mounted
// once per principal kind; the role is fixed at mount time.
type AuthHandler struct {
	authService *services.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService *services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type verifyTwoFactorRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type decodeTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// Login checks credentials for one principal kind. Accounts without
// two-factor receive an access token; enrolled accounts receive a pending
// token and a code by email.
func (h *AuthHandler) Login(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttp.WriteBadRequest(w, "invalid request body")
			return
		}

		if err := ValidateRequest(&req); err != nil {
			pkghttp.WriteBadRequest(w, err.Error())
			return
		}

		result, err := h.authService.Login(r.Context(), role, req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		pkghttp.WriteJSON(w, http.StatusOK, result)
	}
}

// VerifyTwoFactor finishes a two-factor login. The pending token from
// Login rides in the Authorization header; the code comes in the body.
func (h *AuthHandler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	pendingToken, ok := auth.BearerToken(r)
	if !ok {
		pkghttp.WriteUnauthorized(w, "missing or malformed authorization header")
		return
	}

	var req verifyTwoFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.authService.VerifyLogin(r.Context(), pendingToken, req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, result)
}

// DecodeToken returns a token's claims without signature verification.
// Diagnostic endpoint; the output grants nothing.
func (h *AuthHandler) DecodeToken(w http.ResponseWriter, r *http.Request) {
	var req decodeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	claims, err := h.authService.DecodeToken(req.Token)
	if err != nil {
		pkghttp.WriteBadRequest(w, "malformed token")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{"claims": claims})
}
