package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sgronlund/latias-backend/internal/quiz/domain"
)

const userColumns = `username, password, email, resetcode, score, balance, created_at, updated_at`

type usersRepo struct {
	q querier
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		resetCode sql.NullString
	)
	err := row.Scan(
		&u.Username,
		&u.Password,
		&u.Email,
		&resetCode,
		&u.Score,
		&u.Balance,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.ResetCode = mapNullStringPtr(resetCode)
	return u, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	// username column carries COLLATE NOCASE, so = matches case-insensitively.
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) GetByCredentials(ctx context.Context, username, password string) (domain.User, error) {
	// Password comparison stays case-sensitive (BINARY collation).
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? AND password = ?`,
		username, password)
	return scanUser(row)
}

func (r *usersRepo) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`,
		username, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (username, password, email, score, balance, created_at, updated_at)
		 VALUES (?, ?, ?, 0, 0, ?, ?)`,
		u.Username, u.Password, u.Email, now, now)
	return mapConstraint(err)
}

func (r *usersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) SetResetCode(ctx context.Context, email, code string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET resetcode = ?, updated_at = ? WHERE email = ?`,
		code, time.Now().UTC(), email)
	return err
}

func (r *usersRepo) ResetCodeMatches(ctx context.Context, code, email string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE resetcode = ? AND email = ?`,
		code, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) UpdatePassword(ctx context.Context, email, password string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET password = ?, updated_at = ? WHERE email = ?`,
		password, time.Now().UTC(), email)
	return err
}

func (r *usersRepo) AddScore(ctx context.Context, username string, delta int) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET score = score + ?, updated_at = ? WHERE username = ?`,
		delta, time.Now().UTC(), username)
	return err
}

func (r *usersRepo) AddBalance(ctx context.Context, username string, delta int) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET balance = balance + ?, updated_at = ? WHERE username = ?`,
		delta, time.Now().UTC(), username)
	return err
}
