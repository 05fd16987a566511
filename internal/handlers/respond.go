package handlers

import (
	"errors"
	"net/http"

	"github.com/fuelease/fuelease/internal/models"
	pkghttp "github.com/fuelease/fuelease/pkg/http"
)

// writeServiceError maps a service-layer error onto the wire. Sentinel
// errors choose the status code; anything unrecognized becomes a 500 with
// a generic message so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrAuthenticationFailed):
		pkghttp.WriteUnauthorized(w, "invalid email or password")
	case errors.Is(err, models.ErrInvalidToken):
		pkghttp.WriteUnauthorized(w, models.ErrInvalidToken.Error())
	case errors.Is(err, models.ErrNoPendingVerification):
		pkghttp.WriteError(w, http.StatusUnauthorized, "no_pending_verification", models.ErrNoPendingVerification.Error())
	case errors.Is(err, models.ErrOTPExpired):
		pkghttp.WriteError(w, http.StatusUnauthorized, "code_expired", models.ErrOTPExpired.Error())
	case errors.Is(err, models.ErrInvalidCode):
		pkghttp.WriteError(w, http.StatusUnauthorized, "invalid_code", models.ErrInvalidCode.Error())
	case errors.Is(err, models.ErrTwoFactorAlreadyEnabled):
		pkghttp.WriteConflict(w, models.ErrTwoFactorAlreadyEnabled.Error())
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "resource not found")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, err.Error())
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		pkghttp.WriteUnauthorized(w, "unauthorized")
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "forbidden")
	default:
		pkghttp.WriteInternalError(w, "an unexpected error occurred")
	}
}
