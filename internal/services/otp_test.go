package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_SixDigits(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, `^[1-9][0-9]{5}$`, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
