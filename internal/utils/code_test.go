package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCouponCode(t *testing.T) {
	code, err := GenerateCouponCode("pontos")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^RESGATE-PONTOS-[A-Z0-9]{10}$`), code)
}

func TestGenerateCouponCodeUnlikelyCollision(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateCouponCode("frete")
		require.NoError(t, err)
		require.False(t, seen[code], "duplicate code generated: %s", code)
		seen[code] = true
	}
}

func TestHashPIN(t *testing.T) {
	hash := HashPIN("1234")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashPIN("1234"))
	assert.NotEqual(t, hash, HashPIN("1235"))

	assert.True(t, CheckPIN(hash, "1234"))
	assert.False(t, CheckPIN(hash, "0000"))
	assert.False(t, CheckPIN("", "1234"))
}
