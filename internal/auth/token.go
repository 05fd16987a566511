package auth

import (
	"fmt"
	"time"

	"github.com/fuelease/fuelease/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager signs and validates both kinds of bearer credential: the
// long-lived access token issued after full authentication, and the
// short-lived pending-verification token that carries a login or
// enrollment attempt across the OTP step.
type TokenManager struct {
	secret            string
	accessTokenExpiry time.Duration
}

// NewTokenManager creates a new TokenManager
func NewTokenManager(secret string, accessExpiry time.Duration) *TokenManager {
	return &TokenManager{
		secret:            secret,
		accessTokenExpiry: accessExpiry,
	}
}

// GenerateAccessToken mints the final stateless bearer token for a fully
// authenticated principal. It never carries OTP material.
func (tm *TokenManager) GenerateAccessToken(principalID, email, role string) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		Type:        models.TokenTypeAccess,
		PrincipalID: principalID,
		Email:       email,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.accessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(tm.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// pendingTokenGrace keeps a pending token verifiable slightly past its
// code's expiry, so a late attempt is judged by the row's expiry and
// reports the code as expired rather than the token as invalid.
const pendingTokenGrace = 5 * time.Minute

// GeneratePendingToken mints a pending-verification token scoped to one
// (principal, purpose) pair. The token embeds the bcrypt hash of the code
// it was issued for; the hash is opaque to the client and the
// authoritative copy still lives on the principal row. TTL slightly
// exceeds the OTP expiry; the row state decides how late attempts fail.
func (tm *TokenManager) GeneratePendingToken(principalID, email, role, purpose, otpHash string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		Type:        models.TokenTypePending,
		PrincipalID: principalID,
		Email:       email,
		Role:        role,
		Purpose:     purpose,
		OTPHash:     otpHash,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl + pendingTokenGrace)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(tm.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign pending token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies a token signature and returns its claims
func (tm *TokenManager) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tm.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, models.ErrUnauthorized
	}

	if claims.Type == "" {
		return nil, fmt.Errorf("invalid token: missing type")
	}

	return claims, nil
}

// ValidateAccessToken verifies a token and requires the access type
func (tm *TokenManager) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	claims, err := tm.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != models.TokenTypeAccess {
		return nil, models.ErrUnauthorized
	}
	return claims, nil
}

// ValidatePendingToken verifies a token and requires the pending type and
// the given purpose. Any mismatch is reported as an invalid token; the
// caller never learns which check failed.
func (tm *TokenManager) ValidatePendingToken(tokenString, purpose string) (*models.TokenClaims, error) {
	claims, err := tm.ValidateToken(tokenString)
	if err != nil {
		return nil, models.ErrInvalidToken
	}
	if claims.Type != models.TokenTypePending || claims.Purpose != purpose {
		return nil, models.ErrInvalidToken
	}
	return claims, nil
}

// DecodeToken parses a token without verifying its signature and returns
// the raw claim map. Diagnostic only; never use it for authorization.
func (tm *TokenManager) DecodeToken(tokenString string) (map[string]interface{}, error) {
	claims := jwt.MapClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	return claims, nil
}
