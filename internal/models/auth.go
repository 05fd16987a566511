package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "type" claim
const (
	TokenTypeAccess  = "access"
	TokenTypePending = "pending"
)

// Pending-verification purposes. A pending token is only accepted by the
// verification step matching its purpose.
const (
	PurposeLogin      = "login_2fa"
	PurposeEnrollment = "enrollment"
)

// TokenClaims is the claim set for both access and pending tokens.
// Pending tokens additionally carry the purpose and the bcrypt hash of the
// code they were issued for; access tokens never carry OTP material.
type TokenClaims struct {
	Type        string `json:"type"`
	PrincipalID string `json:"principal_id"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	OTPHash     string `json:"otp_hash,omitempty"`
	jwt.RegisteredClaims
}
