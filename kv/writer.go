package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrEmptyKey is returned when a write targets an empty key.
	ErrEmptyKey = errors.New("kv: empty key")
	// ErrUnavailable wraps backend failures.
	ErrUnavailable = errors.New("kv: backend unavailable")
)

// Writer stores value under key.
type Writer interface {
	SetValue(ctx context.Context, key, value string) error
}

// RedisWriter is a [Writer] backed by plain Redis SET commands.
type RedisWriter struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisWriter returns a writer that stores keys as "{prefix}:{key}". An empty
// prefix stores keys as given.
func NewRedisWriter(client redis.UniversalClient, prefix string) *RedisWriter {
	return &RedisWriter{
		redis:  client,
		prefix: strings.TrimSuffix(prefix, ":"),
	}
}

// SetValue writes value with no expiry, overwriting any previous value.
func (w *RedisWriter) SetValue(ctx context.Context, key, value string) error {
	if w == nil || w.redis == nil {
		return ErrUnavailable
	}
	if key == "" {
		return ErrEmptyKey
	}
	if err := w.redis.Set(ctx, w.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (w *RedisWriter) key(key string) string {
	if w.prefix == "" {
		return key
	}
	return w.prefix + ":" + key
}

// WriterFunc adapts a function to [Writer].
type WriterFunc func(ctx context.Context, key, value string) error

// SetValue calls f.
func (f WriterFunc) SetValue(ctx context.Context, key, value string) error {
	return f(ctx, key, value)
}
