package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	tests := []struct {
		name     string
		actual   time.Duration
		expected time.Duration
	}{
		{"AccessTokenExpiry", cfg.Auth.AccessTokenExpiry, 24 * time.Hour},
		{"OTPExpiry", cfg.Auth.OTPExpiry, 10 * time.Minute},
	}

	for _, tt := range tests {
		if tt.actual != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.name, tt.actual, tt.expected)
		}
	}

	if cfg.Database.Name != "fuelease" {
		t.Errorf("Database.Name: got %q, want %q", cfg.Database.Name, "fuelease")
	}
}

func TestLoad_CustomDurations(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("ACCESS_TOKEN_EXPIRY", "1h")
	os.Setenv("OTP_EXPIRY", "5m")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Auth.AccessTokenExpiry != 1*time.Hour {
		t.Errorf("AccessTokenExpiry: got %v, want 1h", cfg.Auth.AccessTokenExpiry)
	}
	if cfg.Auth.OTPExpiry != 5*time.Minute {
		t.Errorf("OTPExpiry: got %v, want 5m", cfg.Auth.OTPExpiry)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("OTP_EXPIRY", "not-a-duration")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Auth.OTPExpiry != 10*time.Minute {
		t.Errorf("OTPExpiry with invalid value: got %v, want 10m", cfg.Auth.OTPExpiry)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() with no JWT_SECRET should fail")
	}
}

func TestLoad_WeakJWTSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "short")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() with short JWT_SECRET should fail")
	}
}

func TestValidateJWTSecret_ProductionLength(t *testing.T) {
	// 16 chars is fine for development but too short for production
	secret := "sixteen-chars-xx"
	if err := validateJWTSecret(secret, "development"); err != nil {
		t.Errorf("development: got %v, want nil", err)
	}
	if err := validateJWTSecret(secret, "production"); err == nil {
		t.Error("production: want error for 16-char secret")
	}
}
