package shareid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLengthAndAlphabet(t *testing.T) {
	id, err := New()
	require.NoError(t, err)
	require.Len(t, id, Length)

	for _, r := range id {
		require.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
	}
}

func TestNewIsNotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := New()
		require.NoError(t, err)
		seen[id] = true
	}
	require.Greater(t, len(seen), 1)
}
