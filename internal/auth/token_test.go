package auth_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teambitewolf/news-hole/internal/auth"
)

func TestGenerateResetToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := auth.GenerateResetToken()
		require.NoError(t, err)

		raw, err := hex.DecodeString(token)
		require.NoError(t, err)
		assert.Len(t, raw, 32, "reset tokens carry 256 bits")

		_, dup := seen[token]
		assert.False(t, dup, "tokens must not repeat")
		seen[token] = struct{}{}
	}
}

func TestHashToken(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", auth.HashToken("abc"))
	assert.NotEqual(t, auth.HashToken("a"), auth.HashToken("b"))
}
