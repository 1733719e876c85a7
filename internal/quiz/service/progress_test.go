package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sgronlund/latias-backend/internal/quiz/store"
)

func newProgressService(t *testing.T) (*ProgressService, *AuthService) {
	t.Helper()
	st := newTestStore(t)
	return &ProgressService{Store: st}, &AuthService{Store: st, Sessions: NewSessionRegistry()}
}

func TestProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh user starts at zero", func(t *testing.T) {
		progress, auth := newProgressService(t)
		require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))

		u, err := progress.Progress(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, 0, u.Score)
		require.Equal(t, 0, u.Balance)
	})

	t.Run("score accumulates", func(t *testing.T) {
		progress, auth := newProgressService(t)
		require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))

		require.NoError(t, progress.AddScore(ctx, "alice", 10))
		require.NoError(t, progress.AddScore(ctx, "alice", 5))

		u, err := progress.Progress(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, 15, u.Score)
	})

	t.Run("unknown user", func(t *testing.T) {
		progress, _ := newProgressService(t)
		_, err := progress.Progress(ctx, "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("empty username", func(t *testing.T) {
		progress, _ := newProgressService(t)
		_, err := progress.Progress(ctx, "")
		require.ErrorIs(t, err, ErrInvalidInput)
		require.ErrorIs(t, progress.AddScore(ctx, "", 1), ErrInvalidInput)
		require.ErrorIs(t, progress.AddBalance(ctx, "", 1), ErrInvalidInput)
	})
}

func TestSpendBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts within balance", func(t *testing.T) {
		progress, auth := newProgressService(t)
		require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))
		require.NoError(t, progress.AddBalance(ctx, "alice", 100))

		require.NoError(t, progress.SpendBalance(ctx, "alice", 60))

		u, err := progress.Progress(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, 40, u.Balance)
	})

	t.Run("rejects overdraft", func(t *testing.T) {
		progress, auth := newProgressService(t)
		require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))
		require.NoError(t, progress.AddBalance(ctx, "alice", 30))

		require.ErrorIs(t, progress.SpendBalance(ctx, "alice", 31), ErrInsufficientBalance)

		u, err := progress.Progress(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, 30, u.Balance)
	})

	t.Run("exact balance spends to zero", func(t *testing.T) {
		progress, auth := newProgressService(t)
		require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))
		require.NoError(t, progress.AddBalance(ctx, "alice", 30))

		require.NoError(t, progress.SpendBalance(ctx, "alice", 30))

		u, err := progress.Progress(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, 0, u.Balance)
	})

	t.Run("unknown user", func(t *testing.T) {
		progress, _ := newProgressService(t)
		require.ErrorIs(t, progress.SpendBalance(ctx, "ghost", 1), store.ErrNotFound)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		progress, _ := newProgressService(t)
		require.ErrorIs(t, progress.SpendBalance(ctx, "alice", 0), ErrInvalidInput)
		require.ErrorIs(t, progress.SpendBalance(ctx, "alice", -5), ErrInvalidInput)
	})
}
