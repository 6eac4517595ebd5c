package tx

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromWithoutTx(t *testing.T) {
	_, ok := From(context.Background())
	assert.False(t, ok)
	assert.Equal(t, context.Background(), WithTx(context.Background(), nil))
}

func TestLocal(t *testing.T) {
	t.Run("nested calls join the outer one", func(t *testing.T) {
		var l Local
		calls := 0
		err := l.RunInTx(context.Background(), func(ctx context.Context) error {
			calls++
			return l.RunInTx(ctx, func(context.Context) error {
				calls++
				return nil
			})
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("errors propagate", func(t *testing.T) {
		var l Local
		boom := errors.New("boom")
		assert.ErrorIs(t, l.RunInTx(context.Background(), func(context.Context) error { return boom }), boom)
	})

	t.Run("calls are serialised", func(t *testing.T) {
		var (
			l       Local
			wg      sync.WaitGroup
			counter int
		)
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = l.RunInTx(context.Background(), func(context.Context) error {
					counter++
					return nil
				})
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, counter)
	})
}
