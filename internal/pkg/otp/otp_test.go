package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_SixDigits(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	require.Len(t, code, Digits)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit %q", code, r)
	}
}

func TestGenerateCode_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "20 draws produced a single code")
}
