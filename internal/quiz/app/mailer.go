package app

import (
	"context"
	"log/slog"
)

// logMailer writes reset codes to the log instead of sending mail. It
// is the development stand-in for a real SMTP delivery; swap it out in
// initServices when one exists.
type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) SendResetCode(_ context.Context, code, email string) error {
	m.logger.Info("password reset code issued", "email", email, "code", code)
	return nil
}
