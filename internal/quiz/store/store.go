package store

import (
	"context"
	"errors"

	"github.com/sgronlund/latias-backend/internal/quiz/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users

	// Questions returns the repository for one bank variant. Each variant
	// has its own table with its own wrong-answer arity.
	Questions(variant domain.BankVariant) Questions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Register and AddQuestion run their
	// check-then-insert sequences through this so concurrent identical
	// requests cannot both pass the existence check.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetByUsername fetches a user, matching the username case-insensitively.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// GetByCredentials matches username (case-insensitive) and password
	// (exact). Returns ErrNotFound when no row matches both.
	GetByCredentials(ctx context.Context, username, password string) (domain.User, error)

	// UsernameOrEmailTaken reports whether any row collides with the given
	// username (case-insensitive) or email.
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)

	// Create inserts a new user with score/balance defaulted to zero.
	Create(ctx context.Context, u domain.User) error

	// EmailExists reports whether a user with this email is registered.
	EmailExists(ctx context.Context, email string) (bool, error)

	// SetResetCode attaches a reset code to the user with this email.
	SetResetCode(ctx context.Context, email, code string) error

	// ResetCodeMatches reports whether code and email identify the same row.
	ResetCodeMatches(ctx context.Context, code, email string) (bool, error)

	// UpdatePassword replaces the password for the user with this email.
	UpdatePassword(ctx context.Context, email, password string) error

	// AddScore adjusts the user's score by delta (may be negative).
	AddScore(ctx context.Context, username string, delta int) error

	// AddBalance adjusts the user's balance by delta (may be negative).
	AddBalance(ctx context.Context, username string, delta int) error
}

type Questions interface {
	// Create inserts a question. The wrong-answer count must match the
	// variant's arity.
	Create(ctx context.Context, q domain.Question) error

	// GetByTextAndWeek fetches the question matching both text and week exactly.
	GetByTextAndWeek(ctx context.Context, text string, week int) (domain.Question, error)

	// ListByWeek returns all questions for a week in insertion order.
	ListByWeek(ctx context.Context, week int) ([]domain.Question, error)

	// TextExists reports whether the question text exists anywhere in this
	// bank, regardless of week.
	TextExists(ctx context.Context, text string) (bool, error)

	// CountForWeek returns the number of questions stored for a week.
	CountForWeek(ctx context.Context, week int) (int, error)

	// DeleteWeek removes every question for the given week.
	DeleteWeek(ctx context.Context, week int) error

	// IsCorrect reports whether a question with this text exists and its
	// stored correct answer equals answer.
	IsCorrect(ctx context.Context, text, answer string) (bool, error)
}
