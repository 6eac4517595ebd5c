// Package lock provides the per-filing submission lock. The Redis implementation
// spans service instances; Local serves single-process deployments and tests.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"lear/pkg/platform/sentinel"
)

// Release frees a held lock. It is safe to call once.
type Release func(ctx context.Context) error

// Redis obtains short-lived locks with bsm/redislock.
type Redis struct {
	client *redislock.Client
	ttl    time.Duration
}

func NewRedis(rdb redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: redislock.New(rdb), ttl: ttl}
}

// Acquire takes key without waiting. A held key returns sentinel.ErrLockHeld.
func (l *Redis) Acquire(ctx context.Context, key string) (Release, error) {
	lk, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, sentinel.ErrLockHeld
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		err := lk.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return nil
		}
		return err
	}, nil
}

// Local is an in-process lock table.
type Local struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocal() *Local {
	return &Local{held: make(map[string]struct{})}
}

func (l *Local) Acquire(_ context.Context, key string) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return nil, sentinel.ErrLockHeld
	}
	l.held[key] = struct{}{}
	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
		return nil
	}, nil
}
