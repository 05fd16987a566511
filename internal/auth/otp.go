package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPDigits is the length of generated one-time codes
const OTPDigits = 6

var otpMax = big.NewInt(1000000)

// GenerateOTPCode returns a uniformly random six-digit code, left-padded
// with zeros. crypto/rand.Int is already rejection-sampled, so every value
// in [000000, 999999] is equally likely.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate one-time code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
