package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for range count {
		v, err := Generate(PrefixList)
		require.NoError(t, err)
		assert.False(t, ids[v], "ID should be unique: %s", v)
		ids[v] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"list", PrefixList},
		{"sse client", PrefixSSE},
		{"custom", "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Generate(tt.prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(v, tt.prefix+"-"))

			// NanoID default is 21 characters.
			assert.Len(t, strings.TrimPrefix(v, tt.prefix+"-"), 21)
		})
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		v := MustGenerate(PrefixList)
		assert.True(t, strings.HasPrefix(v, "list-"))
	})
}

func TestForEmail(t *testing.T) {
	a := ForEmail("Alex@Example.com")
	b := ForEmail("  alex@example.com ")
	c := ForEmail("sam@example.com")

	assert.Equal(t, a, b, "email should be case and whitespace insensitive")
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "user-"))
}
