package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAdminPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := GenerateAdminPassword()
		require.NoError(t, err)
		require.Len(t, p, passwordLen)
		require.True(t, strings.ContainsAny(p, upperLetters), p)
		require.True(t, strings.ContainsAny(p, lowerLetters), p)
		require.True(t, strings.ContainsAny(p, digits), p)
		require.True(t, strings.ContainsAny(p, symbols), p)
		require.False(t, strings.ContainsAny(p, "0O1lI"), p)
		seen[p] = true
	}
	require.Greater(t, len(seen), 1)
}
