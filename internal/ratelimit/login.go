package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/landedcost/internal/config"
	"go.uber.org/zap"
)

const keyLoginAttempts = "landedcost:login:%s:%s"

// LoginLimiter throttles password login attempts per email and client IP.
// Without redis every attempt is allowed.
type LoginLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
	log    *zap.Logger
}

func NewLoginLimiter(cfg config.Config, client *redis.Client, log *zap.Logger) *LoginLimiter {
	l := &LoginLimiter{
		rate:  float64(cfg.LoginRateLimit.RefillPerMins) / 60,
		burst: int(cfg.LoginRateLimit.Capacity),
		log:   log.Named("ratelimit.login"),
	}
	if client != nil && l.rate > 0 && l.burst > 0 {
		l.bucket = NewTokenBucket(client)
	}
	return l
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow fails open when redis errors.
func (l *LoginLimiter) Allow(ctx context.Context, email, ip string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}

	res, err := l.bucket.Allow(ctx, loginKey(email, ip), l.rate, l.burst)
	if err != nil {
		l.log.Warn("login rate limit check failed", zap.Error(err))
		return &Result{Allowed: true}, nil
	}
	return res, nil
}

func loginKey(email, ip string) string {
	return fmt.Sprintf(keyLoginAttempts,
		strings.ToLower(strings.TrimSpace(email)),
		strings.TrimSpace(ip),
	)
}
