package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiter_BurstThenDeny(t *testing.T) {
	kl := New(1, 3)
	defer kl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, kl.Allow("10.0.0.1"), "request %d within burst should pass", i+1)
	}
	assert.False(t, kl.Allow("10.0.0.1"), "request beyond burst should be denied")
}

func TestKeyedLimiter_KeysAreIndependent(t *testing.T) {
	kl := New(1, 1)
	defer kl.Stop()

	assert.True(t, kl.Allow("10.0.0.1"))
	assert.False(t, kl.Allow("10.0.0.1"))

	// A different key has its own full bucket.
	assert.True(t, kl.Allow("10.0.0.2"))
}

func TestKeyedLimiter_StopIsIdempotent(t *testing.T) {
	kl := New(1, 1)
	kl.Stop()
	kl.Stop()
}
