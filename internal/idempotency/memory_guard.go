package idempotency

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryLock struct {
	token   string
	expires time.Time
}

// MemoryGuard is the single-process Guard used when no Redis is configured.
type MemoryGuard struct {
	mu    sync.Mutex
	locks map[string]memoryLock
	now   func() time.Time
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		locks: make(map[string]memoryLock),
		now:   time.Now,
	}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if l, ok := g.locks[key]; ok && now.Before(l.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	g.locks[key] = memoryLock{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if l, ok := g.locks[key]; ok && l.token == token {
		delete(g.locks, key)
	}
	return nil
}
