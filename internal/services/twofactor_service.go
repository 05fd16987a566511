package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/fuelease/fuelease/internal/auth"
	"github.com/fuelease/fuelease/internal/metrics"
	"github.com/fuelease/fuelease/internal/models"
	pkgauth "github.com/fuelease/fuelease/pkg/auth"
	"github.com/fuelease/fuelease/pkg/logger"
)

// otpIssuer generates, persists and delivers one-time codes. It is shared
// by the login and enrollment flows.
type otpIssuer struct {
	mailer    Mailer
	logger    *slog.Logger
	otpExpiry time.Duration
}

// issueOTP stores a fresh code on the principal row and mails it out,
// returning the code's bcrypt hash. Persisting before sending means a
// failed delivery leaves a code nobody knows, which harmlessly expires.
// Any previously pending code is superseded.
func (i *otpIssuer) issueOTP(ctx context.Context, store PrincipalStore, principal *models.Principal, purpose string, notifyEmail *string) (string, error) {
	code, err := auth.GenerateOTPCode()
	if err != nil {
		return "", err
	}

	otpHash, err := pkgauth.HashSecret(code)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(i.otpExpiry)
	if err := store.SetTwoFactorPending(ctx, principal.ID, notifyEmail, otpHash, expiresAt); err != nil {
		return "", err
	}

	destination := principal.OTPDestination()
	if notifyEmail != nil && *notifyEmail != "" {
		destination = *notifyEmail
	}

	var subject, textBody, htmlBody string
	if purpose == models.PurposeEnrollment {
		subject, textBody, htmlBody = TwoFactorSetupEmail(code)
	} else {
		subject, textBody, htmlBody = TwoFactorLoginEmail(code)
	}

	metrics.OTPIssuedTotal.WithLabelValues(purpose).Inc()

	// Delivery is best-effort and must not block the request
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := i.mailer.Send(sendCtx, destination, subject, textBody, htmlBody); err != nil {
			metrics.EmailSendFailuresTotal.Inc()
			i.logger.Error("failed to send verification code",
				slog.String("email", logger.SanitizedEmail(destination)),
				slog.String("purpose", purpose),
				slog.String("error", err.Error()))
		}
	}()

	return otpHash, nil
}

// EnrollmentChallenge reports that a setup code is on its way.
type EnrollmentChallenge struct {
	Message string `json:"message"`
}

// TwoFactorService manages enrollment into email two-factor
// authentication. Verification of enrollment codes is keyed by the
// authenticated principal, not by a pending token: the caller already
// holds an access token.
type TwoFactorService struct {
	otpIssuer
	stores map[string]PrincipalStore
	logger *slog.Logger
}

// NewTwoFactorService creates a TwoFactorService serving the given stores,
// keyed by their Kind.
func NewTwoFactorService(mailer Mailer, log *slog.Logger, otpExpiry time.Duration, stores ...PrincipalStore) *TwoFactorService {
	byKind := make(map[string]PrincipalStore, len(stores))
	for _, store := range stores {
		byKind[store.Kind()] = store
	}

	return &TwoFactorService{
		otpIssuer: otpIssuer{
			mailer:    mailer,
			logger:    log,
			otpExpiry: otpExpiry,
		},
		stores: byKind,
		logger: log,
	}
}

// BeginEnrollment mails a setup code to the principal. When notifyEmail is
// set it becomes the persisted two-factor delivery address; otherwise the
// account email is used. Already-enrolled accounts are rejected without
// touching any state.
func (s *TwoFactorService) BeginEnrollment(ctx context.Context, role, principalID string, notifyEmail *string) (*EnrollmentChallenge, error) {
	store, ok := s.stores[role]
	if !ok {
		return nil, models.ErrBadRequest
	}

	principal, err := store.GetPrincipalByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	if principal.TwoFactorEnabled {
		return nil, models.ErrTwoFactorAlreadyEnabled
	}

	if _, err := s.issueOTP(ctx, store, principal, models.PurposeEnrollment, notifyEmail); err != nil {
		return nil, err
	}

	s.logger.Info("two-factor enrollment started",
		slog.String("role", role),
		slog.String("principal_id", principalID))

	return &EnrollmentChallenge{
		Message: "A setup code has been sent to your email",
	}, nil
}

// CompleteEnrollment consumes a setup code and flips the two-factor flag
// in the same transaction that clears the code. A correct code enrolls
// exactly once; replays report no pending verification.
func (s *TwoFactorService) CompleteEnrollment(ctx context.Context, role, principalID, code string) error {
	store, ok := s.stores[role]
	if !ok {
		return models.ErrBadRequest
	}

	principal, err := store.GetPrincipalByID(ctx, principalID)
	if err != nil {
		return err
	}

	// An enrolled account has no setup to finish. A code pending on it
	// belongs to a login attempt and must not be consumed here.
	if principal.TwoFactorEnabled {
		if principal.TwoFactorOTPHash == nil {
			return models.ErrNoPendingVerification
		}
		return models.ErrTwoFactorAlreadyEnabled
	}

	err = store.ConsumeOTP(ctx, principalID, true, verifyOTPState(code))
	if err != nil {
		metrics.OTPVerifiedTotal.WithLabelValues(models.PurposeEnrollment, otpResultLabel(err)).Inc()
		s.logger.Warn("two-factor enrollment verification failed",
			slog.String("role", role),
			slog.String("principal_id", principalID),
			slog.String("reason", err.Error()))
		return err
	}

	metrics.OTPVerifiedTotal.WithLabelValues(models.PurposeEnrollment, "success").Inc()
	s.logger.Info("two-factor enrollment completed",
		slog.String("role", role),
		slog.String("principal_id", principalID))

	return nil
}
