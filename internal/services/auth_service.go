package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fuelease/fuelease/internal/auth"
	"github.com/fuelease/fuelease/internal/metrics"
	"github.com/fuelease/fuelease/internal/models"
	pkgauth "github.com/fuelease/fuelease/pkg/auth"
	"github.com/fuelease/fuelease/pkg/logger"
)

// PrincipalStore is the authentication-facing view over one account table.
// Each principal kind (admin, operator, customer) supplies its own
// implementation; the auth services are otherwise kind-agnostic.
type PrincipalStore interface {
	// Kind returns the role tag of the accounts this store serves.
	Kind() string
	GetPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error)
	GetPrincipalByID(ctx context.Context, id string) (*models.Principal, error)
	// SetTwoFactorPending overwrites any pending code with a new hash and
	// expiry. A non-nil notifyEmail also rebinds the delivery address.
	SetTwoFactorPending(ctx context.Context, id string, notifyEmail *string, otpHash string, expiresAt time.Time) error
	// ConsumeOTP runs verify against the row's pending-code state under a
	// row lock and clears that state when verify returns nil. When enable
	// is true the two-factor flag is set in the same statement.
	ConsumeOTP(ctx context.Context, id string, enable bool, verify func(otpHash *string, expiresAt *time.Time) error) error
}

// LoginRecorder is implemented by stores that track a last-login stamp.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, id string) error
}

// LoginResult is the outcome of a credential check: either a finished
// session or a two-factor challenge, never both.
type LoginResult struct {
	TwoFactorRequired bool   `json:"two_factor_required"`
	AccessToken       string `json:"access_token,omitempty"`
	PendingToken      string `json:"pending_token,omitempty"`
	Message           string `json:"message,omitempty"`
}

// dummyHash is compared against when the email lookup misses, so unknown
// emails and wrong passwords take comparable time.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthService verifies credentials and drives the two-step login flow for
// every principal kind.
type AuthService struct {
	otpIssuer
	stores map[string]PrincipalStore
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthService creates an AuthService serving the given stores, keyed by
// their Kind.
func NewAuthService(tokens *auth.TokenManager, mailer Mailer, log *slog.Logger, otpExpiry time.Duration, stores ...PrincipalStore) *AuthService {
	byKind := make(map[string]PrincipalStore, len(stores))
	for _, store := range stores {
		byKind[store.Kind()] = store
	}

	return &AuthService{
		otpIssuer: otpIssuer{
			mailer:    mailer,
			logger:    log,
			otpExpiry: otpExpiry,
		},
		stores: byKind,
		tokens: tokens,
		logger: log,
	}
}

// Login verifies an email and password for the given role. Accounts
// without two-factor get an access token immediately; enrolled accounts
// get a one-time code by email and a pending token to carry the attempt
// across the verification step. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, role, email, password string) (*LoginResult, error) {
	store, ok := s.stores[role]
	if !ok {
		return nil, models.ErrBadRequest
	}

	email = strings.ToLower(strings.TrimSpace(email))

	principal, err := store.GetPrincipalByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		pkgauth.CompareSecret(dummyHash, password)
		metrics.LoginsTotal.WithLabelValues(role, "failure").Inc()
		s.logger.Warn("login failed",
			slog.String("role", role),
			slog.String("email", logger.SanitizedEmail(email)))
		return nil, models.ErrAuthenticationFailed
	}

	if err := pkgauth.CompareSecret(principal.PasswordHash, password); err != nil {
		metrics.LoginsTotal.WithLabelValues(role, "failure").Inc()
		s.logger.Warn("login failed",
			slog.String("role", role),
			slog.String("email", logger.SanitizedEmail(email)))
		return nil, models.ErrAuthenticationFailed
	}

	if !principal.TwoFactorEnabled {
		if recorder, ok := store.(LoginRecorder); ok {
			if err := recorder.RecordLogin(ctx, principal.ID); err != nil {
				s.logger.Warn("failed to record login time", slog.String("error", err.Error()))
			}
		}

		token, err := s.tokens.GenerateAccessToken(principal.ID, principal.Email, role)
		if err != nil {
			return nil, err
		}

		metrics.LoginsTotal.WithLabelValues(role, "success").Inc()
		s.logger.Info("login succeeded",
			slog.String("role", role),
			slog.String("principal_id", principal.ID))

		return &LoginResult{AccessToken: token}, nil
	}

	otpHash, err := s.issueOTP(ctx, store, principal, models.PurposeLogin, nil)
	if err != nil {
		return nil, err
	}

	pendingToken, err := s.tokens.GeneratePendingToken(
		principal.ID, principal.Email, role, models.PurposeLogin, otpHash, s.otpExpiry)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues(role, "challenge").Inc()
	s.logger.Info("login challenge issued",
		slog.String("role", role),
		slog.String("principal_id", principal.ID))

	return &LoginResult{
		TwoFactorRequired: true,
		PendingToken:      pendingToken,
		Message:           "A verification code has been sent to your email",
	}, nil
}

// VerifyLogin consumes a one-time code against the pending token issued by
// Login. A correct code finishes the session exactly once; the pending
// state is cleared in the same transaction, so replays of the same code
// report no pending verification.
func (s *AuthService) VerifyLogin(ctx context.Context, pendingToken, code string) (*LoginResult, error) {
	claims, err := s.tokens.ValidatePendingToken(pendingToken, models.PurposeLogin)
	if err != nil {
		metrics.OTPVerifiedTotal.WithLabelValues(models.PurposeLogin, "invalid_token").Inc()
		return nil, models.ErrInvalidToken
	}

	store, ok := s.stores[claims.Role]
	if !ok {
		metrics.OTPVerifiedTotal.WithLabelValues(models.PurposeLogin, "invalid_token").Inc()
		return nil, models.ErrInvalidToken
	}

	err = store.ConsumeOTP(ctx, claims.PrincipalID, false, verifyOTPState(code))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			err = models.ErrInvalidToken
		}
		metrics.OTPVerifiedTotal.WithLabelValues(models.PurposeLogin, otpResultLabel(err)).Inc()
		s.logger.Warn("two-factor verification failed",
			slog.String("role", claims.Role),
			slog.String("principal_id", claims.PrincipalID),
			slog.String("reason", err.Error()))
		return nil, err
	}

	if recorder, ok := store.(LoginRecorder); ok {
		if err := recorder.RecordLogin(ctx, claims.PrincipalID); err != nil {
			s.logger.Warn("failed to record login time", slog.String("error", err.Error()))
		}
	}

	token, err := s.tokens.GenerateAccessToken(claims.PrincipalID, claims.Email, claims.Role)
	if err != nil {
		return nil, err
	}

	metrics.OTPVerifiedTotal.WithLabelValues(models.PurposeLogin, "success").Inc()
	s.logger.Info("two-factor login completed",
		slog.String("role", claims.Role),
		slog.String("principal_id", claims.PrincipalID))

	return &LoginResult{AccessToken: token}, nil
}

// DecodeToken returns a token's raw claim map without verifying the
// signature. Diagnostic only.
func (s *AuthService) DecodeToken(tokenString string) (map[string]interface{}, error) {
	return s.tokens.DecodeToken(tokenString)
}

// verifyOTPState builds the check run against a row's pending-code state.
// The failure order is fixed: missing state, then expiry, then code
// mismatch, so an expired code never reports as merely wrong.
func verifyOTPState(code string) func(otpHash *string, expiresAt *time.Time) error {
	return func(otpHash *string, expiresAt *time.Time) error {
		if otpHash == nil || expiresAt == nil {
			return models.ErrNoPendingVerification
		}
		if time.Now().After(*expiresAt) {
			return models.ErrOTPExpired
		}
		if err := pkgauth.CompareSecret(*otpHash, code); err != nil {
			return models.ErrInvalidCode
		}
		return nil
	}
}

func otpResultLabel(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, models.ErrNoPendingVerification):
		return "no_pending"
	case errors.Is(err, models.ErrOTPExpired):
		return "expired"
	case errors.Is(err, models.ErrInvalidCode):
		return "invalid_code"
	default:
		return "error"
	}
}
