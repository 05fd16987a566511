package services

import (
	"context"
	"sync"
	"time"

	"github.com/fuelease/fuelease/internal/models"
)

// mockPrincipalStore is an in-memory PrincipalStore over a single account
// row. It reproduces the store's transactional OTP semantics: verify runs
// against the current state and a nil result clears it.
type mockPrincipalStore struct {
	mu        sync.Mutex
	role      string
	principal *models.Principal

	recordedLogins []string
	lookupErr      error
	setPendingErr  error
}

func newMockPrincipalStore(role string, principal *models.Principal) *mockPrincipalStore {
	principal.Role = role
	return &mockPrincipalStore{role: role, principal: principal}
}

func (m *mockPrincipalStore) Kind() string {
	return m.role
}

func (m *mockPrincipalStore) GetPrincipalByEmail(_ context.Context, email string) (*models.Principal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	if m.principal.Email != email {
		return nil, models.ErrNotFound
	}
	copied := *m.principal
	return &copied, nil
}

func (m *mockPrincipalStore) GetPrincipalByID(_ context.Context, id string) (*models.Principal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.principal.ID != id {
		return nil, models.ErrNotFound
	}
	copied := *m.principal
	return &copied, nil
}

func (m *mockPrincipalStore) SetTwoFactorPending(_ context.Context, id string, notifyEmail *string, otpHash string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setPendingErr != nil {
		return m.setPendingErr
	}
	if m.principal.ID != id {
		return models.ErrNotFound
	}

	if notifyEmail != nil {
		m.principal.TwoFactorEmail = notifyEmail
	}
	m.principal.TwoFactorOTPHash = &otpHash
	m.principal.TwoFactorOTPExpiresAt = &expiresAt
	return nil
}

func (m *mockPrincipalStore) ConsumeOTP(_ context.Context, id string, enable bool, verify func(otpHash *string, expiresAt *time.Time) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.principal.ID != id {
		return models.ErrNotFound
	}

	if err := verify(m.principal.TwoFactorOTPHash, m.principal.TwoFactorOTPExpiresAt); err != nil {
		return err
	}

	m.principal.TwoFactorOTPHash = nil
	m.principal.TwoFactorOTPExpiresAt = nil
	if enable {
		m.principal.TwoFactorEnabled = true
	}
	return nil
}

// expireOTP backdates the pending code so expiry paths can be exercised
// without waiting.
func (m *mockPrincipalStore) expireOTP() {
	m.mu.Lock()
	defer m.mu.Unlock()

	past := time.Now().Add(-time.Minute)
	m.principal.TwoFactorOTPExpiresAt = &past
}

func (m *mockPrincipalStore) snapshot() models.Principal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.principal
}

// mockRecordingStore adds last-login tracking on top of the base mock
type mockRecordingStore struct {
	*mockPrincipalStore
}

func (m *mockRecordingStore) RecordLogin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recordedLogins = append(m.recordedLogins, id)
	return nil
}

type sentEmail struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// mockMailer captures sent emails on a buffered channel. Delivery happens
// on a background goroutine, so tests receive with a timeout.
type mockMailer struct {
	sent    chan sentEmail
	sendErr error
}

func newMockMailer() *mockMailer {
	return &mockMailer{sent: make(chan sentEmail, 8)}
}

func (m *mockMailer) Send(_ context.Context, to, subject, textBody, htmlBody string) error {
	m.sent <- sentEmail{To: to, Subject: subject, TextBody: textBody, HTMLBody: htmlBody}
	return m.sendErr
}

// waitForEmail blocks until a message is captured or the timeout elapses
func (m *mockMailer) waitForEmail(t interface{ Fatalf(string, ...interface{}) }, timeout time.Duration) sentEmail {
	select {
	case email := <-m.sent:
		return email
	case <-time.After(timeout):
		t.Fatalf("no email sent within %s", timeout)
		return sentEmail{}
	}
}
