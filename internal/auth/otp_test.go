package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPCode_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)

		assert.Len(t, code, OTPDigits)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestGenerateOTPCode_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		seen[code] = true
	}

	// 20 identical draws from a million-value space means a broken source
	assert.Greater(t, len(seen), 1)
}
