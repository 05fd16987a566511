package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizedEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"regular address", "admin@fuelease.app", "a****@********.app"},
		{"single-char user", "a@fuelease.app", "a@********.app"},
		{"no at sign", "not-an-email", "[invalid-email]"},
		{"multi-part domain", "op@mail.fuelease.app", "o*@****.********.app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizedEmail(tt.email))
		})
	}
}

func TestSanitizeQueryString(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     bool
	}{
		{"empty", "", false},
		{"harmless", "limit=20&offset=40", false},
		{"carries code", "code=123456", true},
		{"carries otp", "otp=482913", true},
		{"carries token", "token=abc", true},
		{"case insensitive", "Password=hunter2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeQueryString(tt.rawQuery))
		})
	}
}
