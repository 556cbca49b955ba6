package limiters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSignUpRateLimited      = errors.New("sign-up rate limited")
	ErrSignUpRedisUnavailable = errors.New("sign-up redis unavailable")
)

type SignUpConfig struct {
	EnableIdentifierThrottle bool
	EnableIPThrottle         bool
	MaxAttempts              int
	Cooldown                 time.Duration
}

// SignUpLimiter counts sign-up submissions per email and per client IP in fixed
// windows of Cooldown.
type SignUpLimiter struct {
	redis  redis.UniversalClient
	config SignUpConfig
}

func NewSignUpLimiter(redisClient redis.UniversalClient, cfg SignUpConfig) *SignUpLimiter {
	if redisClient == nil {
		return nil
	}
	if !cfg.EnableIdentifierThrottle && !cfg.EnableIPThrottle {
		return nil
	}
	return &SignUpLimiter{
		redis:  redisClient,
		config: cfg,
	}
}

// Enforce records one attempt and fails once either budget is exceeded.
func (l *SignUpLimiter) Enforce(ctx context.Context, email, ip string) error {
	if l == nil {
		return nil
	}

	if l.config.EnableIdentifierThrottle && email != "" {
		if err := l.enforceKey(ctx, signUpIdentifierKey(email)); err != nil {
			return err
		}
	}

	if l.config.EnableIPThrottle && ip != "" {
		if err := l.enforceKey(ctx, signUpIPKey(ip)); err != nil {
			return err
		}
	}

	return nil
}

// Reset clears the identifier window, used after a successful sign-up.
func (l *SignUpLimiter) Reset(ctx context.Context, email string) error {
	if l == nil || email == "" {
		return nil
	}
	if err := l.redis.Del(ctx, signUpIdentifierKey(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSignUpRedisUnavailable, err)
	}
	return nil
}

func (l *SignUpLimiter) enforceKey(ctx context.Context, key string) error {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignUpRedisUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.Cooldown).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrSignUpRedisUnavailable, err)
		}
	}

	if count > int64(l.config.MaxAttempts) {
		return ErrSignUpRateLimited
	}

	return nil
}

func signUpIdentifierKey(email string) string {
	return "asu:id:" + strings.ToLower(email)
}

func signUpIPKey(ip string) string {
	return "asu:ip:" + ip
}
