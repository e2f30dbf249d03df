package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/landedcost/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseReplyAllowed(t *testing.T) {
	res, err := parseReply([]interface{}{int64(1), "4.5", int64(1700000000000)}, 1, 10)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
	assert.Equal(t, 10, res.Limit)
	assert.Zero(t, res.RetryAfter)
}

func TestParseReplyDeniedComputesRetryAfter(t *testing.T) {
	// 0.25 tokens left at 0.5 tokens/s needs 1.5s for the next token
	res, err := parseReply([]interface{}{int64(0), "0.25", int64(0)}, 0.5, 5)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 1500*time.Millisecond, res.RetryAfter)
}

func TestParseReplyRejectsShortReply(t *testing.T) {
	_, err := parseReply([]interface{}{int64(1)}, 1, 1)
	assert.ErrorIs(t, err, errBadReply)
}

func TestBucketTTL(t *testing.T) {
	assert.Equal(t, 4*time.Second, bucketTTL(5, 10))
	assert.Equal(t, time.Second, bucketTTL(1000, 1))
}

func TestNilBucket(t *testing.T) {
	var b *TokenBucket
	_, err := b.Allow(context.Background(), "k", 1, 1)
	assert.ErrorIs(t, err, errNotConfigured)
	assert.Nil(t, NewTokenBucket(nil))
}

func TestLoginLimiterWithoutRedisAllows(t *testing.T) {
	l := NewLoginLimiter(config.Config{
		LoginRateLimit: config.LoginRateLimitConfig{Capacity: 10, RefillPerMins: 5},
	}, nil, zap.NewNop())
	assert.False(t, l.Enabled())

	res, err := l.Allow(context.Background(), "a@example.com", "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLoginKeyNormalizesEmail(t *testing.T) {
	assert.Equal(t, "landedcost:login:a@example.com:10.0.0.1", loginKey(" A@Example.com ", "10.0.0.1"))
}
