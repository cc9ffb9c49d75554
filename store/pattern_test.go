package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    string
	}{
		{"*", "*"},
		{"user:?", "user:?"},
		{"[^a]", "[!a]"},
		{"[a^]", "[a^]"},
		{"{a}", `\{a\}`},
		{"a,b", `a\,b`},
		{"[{,}]", "[{,}]"},
		{`\{x`, `\{x`},
		{`trailing\`, `trailing\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, translatePattern(tt.pattern), tt.pattern)
	}
}

func TestStore_KeysRedisGlobSyntax(t *testing.T) {
	t.Parallel()
	store, _ := setupStore(t)

	for _, k := range []string{"{a}", "a", "b", "x,y"} {
		store.Set(k, "1", nil)
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"{a}", []string{"{a}"}},
		{"{*", []string{"{a}"}},
		{"[^a]", []string{"b"}},
		{"x,y", []string{"x,y"}},
		{"[ab]", []string{"a", "b"}},
	}

	for _, tt := range tests {
		keys, err := store.Keys(tt.pattern)
		require.NoError(t, err, tt.pattern)
		assert.Equal(t, tt.want, keys, tt.pattern)
	}
}
