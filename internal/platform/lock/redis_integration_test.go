//go:build integration

package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lear/pkg/platform/sentinel"
	"lear/pkg/testutil/containers"
)

func TestRedisLock(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))

	l := NewRedis(rc.Client, 5*time.Second)

	release, err := l.Acquire(ctx, "filing:42")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "filing:42")
	assert.ErrorIs(t, err, sentinel.ErrLockHeld)

	require.NoError(t, release(ctx))
	require.NoError(t, release(ctx))

	again, err := l.Acquire(ctx, "filing:42")
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}
