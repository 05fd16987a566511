package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Authentication errors. ErrAuthenticationFailed covers both unknown
	// email and wrong password so callers cannot tell them apart.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Two-factor verification errors, one per failure mode
	ErrInvalidToken          = errors.New("invalid or expired verification token")
	ErrNoPendingVerification = errors.New("no pending two-factor verification")
	ErrOTPExpired            = errors.New("verification code expired")
	ErrInvalidCode           = errors.New("invalid verification code")

	// Enrollment errors
	ErrTwoFactorAlreadyEnabled = errors.New("two-factor authentication already enabled")
)
