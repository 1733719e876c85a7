package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	code  string
	email string
}

type channelMailer struct {
	sent chan capturedMail
	err  error
}

func (m *channelMailer) SendResetCode(_ context.Context, code, email string) error {
	m.sent <- capturedMail{code: code, email: email}
	return m.err
}

func newResetService(t *testing.T) (*PasswordResetService, *AuthService, *channelMailer) {
	t.Helper()

	st := newTestStore(t)
	mailer := &channelMailer{sent: make(chan capturedMail, 1)}
	reset := &PasswordResetService{
		Store:  st,
		Mailer: mailer,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	auth := &AuthService{Store: st, Sessions: NewSessionRegistry()}
	return reset, auth, mailer
}

func waitForMail(t *testing.T, m *channelMailer) capturedMail {
	t.Helper()
	select {
	case mail := <-m.sent:
		return mail
	case <-time.After(2 * time.Second):
		t.Fatal("reset mail never sent")
		return capturedMail{}
	}
}

func TestCheckMail(t *testing.T) {
	ctx := context.Background()
	reset, auth, _ := newResetService(t)

	require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))

	t.Run("known email", func(t *testing.T) {
		ok, err := reset.CheckMail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("unknown email", func(t *testing.T) {
		ok, err := reset.CheckMail(ctx, "ghost@example.com")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("empty email", func(t *testing.T) {
		_, err := reset.CheckMail(ctx, "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRequestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("issues and mails an eight-char code", func(t *testing.T) {
		reset, auth, mailer := newResetService(t)
		require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))

		code, err := reset.RequestReset(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Len(t, code, DefaultResetCodeLength)

		mail := waitForMail(t, mailer)
		require.Equal(t, code, mail.code)
		require.Equal(t, "alice@example.com", mail.email)

		ok, err := reset.CheckCode(ctx, code, "alice@example.com")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("new request replaces the old code", func(t *testing.T) {
		reset, auth, mailer := newResetService(t)
		require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))

		first, err := reset.RequestReset(ctx, "alice@example.com")
		require.NoError(t, err)
		waitForMail(t, mailer)

		second, err := reset.RequestReset(ctx, "alice@example.com")
		require.NoError(t, err)
		waitForMail(t, mailer)

		ok, err := reset.CheckCode(ctx, first, "alice@example.com")
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = reset.CheckCode(ctx, second, "alice@example.com")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("mail failure is swallowed", func(t *testing.T) {
		reset, auth, mailer := newResetService(t)
		mailer.err = errors.New("smtp down")
		require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))

		_, err := reset.RequestReset(ctx, "alice@example.com")
		require.NoError(t, err)
		waitForMail(t, mailer)
	})
}

func TestCheckCode(t *testing.T) {
	ctx := context.Background()
	reset, auth, mailer := newResetService(t)

	require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))
	code, err := reset.RequestReset(ctx, "alice@example.com")
	require.NoError(t, err)
	waitForMail(t, mailer)

	t.Run("wrong code", func(t *testing.T) {
		ok, err := reset.CheckCode(ctx, "WRONG123", "alice@example.com")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("code bound to email", func(t *testing.T) {
		ok, err := reset.CheckCode(ctx, code, "other@example.com")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := reset.CheckCode(ctx, "", "alice@example.com")
		require.ErrorIs(t, err, ErrInvalidInput)
		_, err = reset.CheckCode(ctx, code, "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes the stored password", func(t *testing.T) {
		reset, auth, _ := newResetService(t)
		require.NoError(t, auth.Register(ctx, "alice", "old-pw", "alice@example.com"))

		require.NoError(t, reset.UpdatePassword(ctx, "alice@example.com", "new-pw"))

		out, err := auth.Login(ctx, "alice", "old-pw", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginInvalidCredentials, out)

		out, err = auth.Login(ctx, "alice", "new-pw", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginValid, out)
	})

	t.Run("unknown email is a silent no-op", func(t *testing.T) {
		reset, _, _ := newResetService(t)
		require.NoError(t, reset.UpdatePassword(ctx, "ghost@example.com", "new-pw"))
	})

	t.Run("reset code survives the password change", func(t *testing.T) {
		reset, auth, mailer := newResetService(t)
		require.NoError(t, auth.Register(ctx, "alice", "pw", "alice@example.com"))

		code, err := reset.RequestReset(ctx, "alice@example.com")
		require.NoError(t, err)
		waitForMail(t, mailer)

		require.NoError(t, reset.UpdatePassword(ctx, "alice@example.com", "new-pw"))

		ok, err := reset.CheckCode(ctx, code, "alice@example.com")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("empty input", func(t *testing.T) {
		reset, _, _ := newResetService(t)
		require.ErrorIs(t, reset.UpdatePassword(ctx, "", "pw"), ErrInvalidInput)
		require.ErrorIs(t, reset.UpdatePassword(ctx, "a@b.c", ""), ErrInvalidInput)
	})
}
