package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("book")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "book-"))
	// prefix + "-" + 21-char nanoid
	assert.Len(t, got, len("book-")+21)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		got, err := Generate("author")
		require.NoError(t, err)

		_, dup := seen[got]
		require.False(t, dup, "duplicate id %s", got)
		seen[got] = struct{}{}
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		got := MustGenerate("tok")
		assert.True(t, strings.HasPrefix(got, "tok-"))
	})
}
