package auth

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		shouldFail bool
	}{
		{
			name:       "valid strong password",
			password:   "Secret1!",
			shouldFail: false,
		},
		{
			name:       "too short",
			password:   "Pass1",
			shouldFail: true,
		},
		{
			name:       "missing uppercase",
			password:   "securepass123",
			shouldFail: true,
		},
		{
			name:       "missing lowercase",
			password:   "SECUREPASS123",
			shouldFail: true,
		},
		{
			name:       "missing digit",
			password:   "SecurePassXyz",
			shouldFail: true,
		},
		{
			name:       "common password rejected",
			password:   "password123",
			shouldFail: true,
		},
		{
			name:       "too long",
			password:   "Aa1" + strings.Repeat("x", 80),
			shouldFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)

			if tt.shouldFail && err == nil {
				t.Errorf("expected error for %q, got nil", tt.password)
			}
			if !tt.shouldFail && err != nil {
				t.Errorf("expected nil for %q, got %v", tt.password, err)
			}
		})
	}
}

func TestHashSecret_RoundTrip(t *testing.T) {
	hash, err := HashSecret("Secret1!")
	if err != nil {
		t.Fatalf("HashSecret() = %v, want nil", err)
	}

	if err := CompareSecret(hash, "Secret1!"); err != nil {
		t.Errorf("CompareSecret() with matching secret = %v, want nil", err)
	}
	if err := CompareSecret(hash, "WrongSecret1!"); err == nil {
		t.Error("CompareSecret() with wrong secret = nil, want error")
	}
}

func TestHashSecret_OTPCode(t *testing.T) {
	// Six-digit codes are hashed with the same cost as passwords
	hash, err := HashSecret("482913")
	if err != nil {
		t.Fatalf("HashSecret() = %v, want nil", err)
	}

	if err := CompareSecret(hash, "482913"); err != nil {
		t.Errorf("CompareSecret() = %v, want nil", err)
	}
	if err := CompareSecret(hash, "482914"); err == nil {
		t.Error("CompareSecret() with off-by-one code = nil, want error")
	}
}

func TestHashSecret_Empty(t *testing.T) {
	if _, err := HashSecret(""); err == nil {
		t.Error("HashSecret(\"\") = nil, want error")
	}
}
