package service

import (
	"context"
	"log/slog"

	"github.com/sgronlund/latias-backend/internal/quiz/store"
	"github.com/sgronlund/latias-backend/pkg/codex"
)

// DefaultResetCodeLength matches the codes the clients expect to type in.
const DefaultResetCodeLength = 8

// Mailer delivers reset codes. The app wires a real SMTP mailer in
// production and a log-only mailer in development.
type Mailer interface {
	SendResetCode(ctx context.Context, code, email string) error
}

// PasswordResetService drives the forgot-password flow: check the mail
// is known, issue a code, verify it, then accept the new password.
type PasswordResetService struct {
	Store      store.Store
	Mailer     Mailer
	Logger     *slog.Logger
	CodeLength int
}

// CheckMail reports whether an account with this email exists.
func (s *PasswordResetService) CheckMail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, ErrInvalidInput
	}
	return s.Store.Users().EmailExists(ctx, email)
}

// RequestReset issues a fresh code, stores it on the account, and mails
// it out. Delivery happens in the background; a mail failure is logged
// but never surfaced, so an attacker cannot probe for delivery errors.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrInvalidInput
	}

	length := s.CodeLength
	if length <= 0 {
		length = DefaultResetCodeLength
	}

	code, err := codex.GenerateCode(length)
	if err != nil {
		return "", err
	}

	if err := s.Store.Users().SetResetCode(ctx, email, code); err != nil {
		return "", err
	}

	go func(ctx context.Context) {
		if err := s.Mailer.SendResetCode(ctx, code, email); err != nil {
			s.Logger.Error("reset code delivery failed", "email", email, "error", err)
		}
	}(context.WithoutCancel(ctx))

	return code, nil
}

// CheckCode reports whether the code belongs to the account with this email.
func (s *PasswordResetService) CheckCode(ctx context.Context, code, email string) (bool, error) {
	if code == "" || email == "" {
		return false, ErrInvalidInput
	}
	return s.Store.Users().ResetCodeMatches(ctx, code, email)
}

// UpdatePassword replaces the password for the account with this email.
// An unknown email is not an error; the update simply touches no row.
// The stored reset code is left in place.
func (s *PasswordResetService) UpdatePassword(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrInvalidInput
	}
	return s.Store.Users().UpdatePassword(ctx, email, password)
}
