// Package idempotency serialises concurrent processing of the same
// caller-supplied key, e.g. redelivered payment webhooks.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/a2sh3r/mlmnet/internal/apperrors"
)

// Guard hands out short-lived exclusive locks per key. Acquire returns an
// owner token; Release with a stale token is a no-op, so a holder that
// outlived its ttl cannot drop a lock someone else has taken since.
type Guard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}

// Do runs fn while holding the lock for key. A key already held by another
// caller yields apperrors.ErrRequestInProgress without running fn.
func Do(ctx context.Context, g Guard, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	token, locked, err := g.Acquire(ctx, key, ttl)
	if err != nil {
		return fmt.Errorf("acquire idempotency lock: %w", err)
	}
	if !locked {
		return apperrors.ErrRequestInProgress
	}
	defer func() {
		// the caller's context may already be cancelled
		_ = g.Release(context.WithoutCancel(ctx), key, token)
	}()

	return fn(ctx)
}

// GenerateKey builds a deterministic key from all provided parts.
func GenerateKey(parts ...interface{}) string {
	h := sha256.New()
	for _, part := range parts {
		fmt.Fprintf(h, "%v:", part)
	}

	return hex.EncodeToString(h.Sum(nil))
}
