package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fuelease/fuelease/internal/auth"
	"github.com/fuelease/fuelease/internal/services"
	pkghttp "github.com/fuelease/fuelease/pkg/http"
)

// TwoFactorHandler serves enrollment into email two-factor authentication.
// Both endpoints run behind the access-token middleware; the principal is
// taken from the verified claims, never from the request body.
type TwoFactorHandler struct {
	twoFactorService *services.TwoFactorService
	logger           *slog.Logger
}

func NewTwoFactorHandler(twoFactorService *services.TwoFactorService, logger *slog.Logger) *TwoFactorHandler {
	return &TwoFactorHandler{
		twoFactorService: twoFactorService,
		logger:           logger,
	}
}

type enableTwoFactorRequest struct {
	TwoFactorEmail *string `json:"two_factor_email,omitempty" validate:"omitempty,email"`
}

type verifySetupRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// Enable starts enrollment by mailing a setup code. An optional
// two_factor_email rebinds where codes are delivered; otherwise the
// account email is used.
func (h *TwoFactorHandler) Enable(w http.ResponseWriter, r *http.Request) {
	claims := auth.PrincipalFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req enableTwoFactorRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttp.WriteBadRequest(w, "invalid request body")
			return
		}
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	challenge, err := h.twoFactorService.BeginEnrollment(r.Context(), claims.Role, claims.PrincipalID, req.TwoFactorEmail)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, challenge)
}

// VerifySetup consumes the setup code and commits enrollment
func (h *TwoFactorHandler) VerifySetup(w http.ResponseWriter, r *http.Request) {
	claims := auth.PrincipalFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req verifySetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.twoFactorService.CompleteEnrollment(r.Context(), claims.Role, claims.PrincipalID, req.Code); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Two-factor authentication enabled",
	})
}
