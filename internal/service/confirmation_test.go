package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (ConfirmationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisConfirmationStore(client, time.Hour), mr
}

func TestConfirmationStore(t *testing.T) {
	ctx := context.Background()

	t.Run("ConsumeMatchingCode", func(t *testing.T) {
		store, _ := newTestStore(t)
		require.NoError(t, store.Store(ctx, "alice", "code-1"))
		assert.NoError(t, store.Consume(ctx, "alice", "code-1"))
	})

	t.Run("CodeIsSingleUse", func(t *testing.T) {
		store, _ := newTestStore(t)
		require.NoError(t, store.Store(ctx, "alice", "code-1"))
		require.NoError(t, store.Consume(ctx, "alice", "code-1"))

		err := store.Consume(ctx, "alice", "code-1")
		assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
	})

	t.Run("WrongCodeRejected", func(t *testing.T) {
		store, _ := newTestStore(t)
		require.NoError(t, store.Store(ctx, "alice", "code-1"))

		err := store.Consume(ctx, "alice", "other")
		assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
	})

	t.Run("UnknownUserRejected", func(t *testing.T) {
		store, _ := newTestStore(t)
		err := store.Consume(ctx, "nobody", "code-1")
		assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
	})

	t.Run("ReissueInvalidatesPreviousCode", func(t *testing.T) {
		store, _ := newTestStore(t)
		require.NoError(t, store.Store(ctx, "alice", "code-1"))
		require.NoError(t, store.Store(ctx, "alice", "code-2"))

		assert.ErrorIs(t, store.Consume(ctx, "alice", "code-1"), ErrInvalidConfirmationCode)
		assert.NoError(t, store.Consume(ctx, "alice", "code-2"))
	})

	t.Run("CodeExpires", func(t *testing.T) {
		store, mr := newTestStore(t)
		require.NoError(t, store.Store(ctx, "alice", "code-1"))

		mr.FastForward(2 * time.Hour)

		err := store.Consume(ctx, "alice", "code-1")
		assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
	})
}
