package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketAllowsBurst(t *testing.T) {
	tb := NewTokenBucket(3, time.Second)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		assert.NoError(t, tb.Wait(ctx))
	}
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestTokenBucketRespectsContextCancellation(t *testing.T) {
	tb := NewTokenBucket(1, time.Hour)
	ctx := context.Background()
	assert.NoError(t, tb.Wait(ctx))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, tb.Wait(cancelled))
}

func TestUnlimitedNeverBlocks(t *testing.T) {
	var u Unlimited
	start := time.Now()
	assert.NoError(t, u.Wait(context.Background()))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
