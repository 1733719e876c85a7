package service

import (
	"context"
	"errors"

	"github.com/sgronlund/latias-backend/internal/quiz/domain"
	"github.com/sgronlund/latias-backend/internal/quiz/store"
)

var ErrInsufficientBalance = errors.New("insufficient_balance")

// ProgressService tracks per-user score and coupon balance.
type ProgressService struct {
	Store store.Store
}

// AddScore credits points to a user after a correct answer.
func (s *ProgressService) AddScore(ctx context.Context, username string, points int) error {
	if username == "" {
		return ErrInvalidInput
	}
	return s.Store.Users().AddScore(ctx, username, points)
}

// AddBalance credits coupon currency to a user.
func (s *ProgressService) AddBalance(ctx context.Context, username string, amount int) error {
	if username == "" {
		return ErrInvalidInput
	}
	return s.Store.Users().AddBalance(ctx, username, amount)
}

// Progress returns the user's current score and balance.
func (s *ProgressService) Progress(ctx context.Context, username string) (domain.User, error) {
	if username == "" {
		return domain.User{}, ErrInvalidInput
	}
	return s.Store.Users().GetByUsername(ctx, username)
}

// SpendBalance deducts a coupon redemption. The balance check and the
// deduction share a transaction so concurrent redemptions cannot spend
// the same funds twice.
func (s *ProgressService) SpendBalance(ctx context.Context, username string, amount int) error {
	if username == "" || amount <= 0 {
		return ErrInvalidInput
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if u.Balance < amount {
			return ErrInsufficientBalance
		}
		return tx.Users().AddBalance(ctx, username, -amount)
	})
}
