package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Store:    newTestStore(t),
		Sessions: NewSessionRegistry(),
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("valid registration", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "hunter2", "alice@example.com"))
	})

	t.Run("empty fields rejected", func(t *testing.T) {
		svc := newAuthService(t)

		require.ErrorIs(t, svc.Register(ctx, "", "pw", "a@b.c"), ErrInvalidInput)
		require.ErrorIs(t, svc.Register(ctx, "alice", "", "a@b.c"), ErrInvalidInput)
		require.ErrorIs(t, svc.Register(ctx, "alice", "pw", ""), ErrInvalidInput)
	})

	t.Run("root is reserved", func(t *testing.T) {
		svc := newAuthService(t)
		require.ErrorIs(t, svc.Register(ctx, "root", "pw", "root@example.com"), ErrReservedName)
	})

	t.Run("root check is exact", func(t *testing.T) {
		svc := newAuthService(t)
		// Only the literal lowercase name is reserved.
		require.NoError(t, svc.Register(ctx, "Root", "pw", "rooty@example.com"))
	})

	t.Run("malformed emails rejected", func(t *testing.T) {
		svc := newAuthService(t)

		for _, email := range []string{
			"foo@bar@foo.bar",
			"foo@bar",
			"foobar",
			"foo bar@baz.qux",
			"@example.com",
			"foo@.com",
		} {
			require.ErrorIs(t, svc.Register(ctx, "alice", "pw", email), ErrInvalidEmail, email)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "pw", "alice@example.com"))
		require.ErrorIs(t, svc.Register(ctx, "alice", "pw2", "other@example.com"), ErrTaken)
	})

	t.Run("duplicate username case-insensitive", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "pw", "alice@example.com"))
		require.ErrorIs(t, svc.Register(ctx, "ALICE", "pw2", "other@example.com"), ErrTaken)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "pw", "shared@example.com"))
		require.ErrorIs(t, svc.Register(ctx, "bob", "pw2", "shared@example.com"), ErrTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "hunter2", "alice@example.com"))

		out, err := svc.Login(ctx, "alice", "hunter2", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginValid, out)

		name, ok := svc.LookupUsername("conn-1")
		require.True(t, ok)
		require.Equal(t, "alice", name)
	})

	t.Run("username is case-insensitive, password is not", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "hunter2", "alice@example.com"))

		out, err := svc.Login(ctx, "alice", "HUNTER2", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginInvalidCredentials, out)

		out, err = svc.Login(ctx, "ALICE", "hunter2", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginValid, out)
	})

	t.Run("empty input", func(t *testing.T) {
		svc := newAuthService(t)

		for _, tc := range []struct{ user, pass, conn string }{
			{"", "pw", "conn"},
			{"alice", "", "conn"},
			{"alice", "pw", ""},
		} {
			out, err := svc.Login(ctx, tc.user, tc.pass, tc.conn)
			require.NoError(t, err)
			require.Equal(t, LoginInvalidInput, out)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newAuthService(t)

		out, err := svc.Login(ctx, "ghost", "pw", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginInvalidCredentials, out)
		require.Equal(t, 0, svc.Sessions.Len())
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "hunter2", "alice@example.com"))

		out, err := svc.Login(ctx, "alice", "wrong", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginInvalidCredentials, out)
		require.Equal(t, 0, svc.Sessions.Len())
	})

	t.Run("root login", func(t *testing.T) {
		svc := newAuthService(t)

		out, err := svc.Login(ctx, "root",
			"a7534ffaebea80c377ce69ae7802ee3a917fd000ae0b897932908525653f3653", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginRoot, out)

		// Root never occupies a session slot.
		require.Equal(t, 0, svc.Sessions.Len())
	})

	t.Run("root with wrong digest falls through", func(t *testing.T) {
		svc := newAuthService(t)

		out, err := svc.Login(ctx, "root", "deadbeef", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginInvalidCredentials, out)
	})

	t.Run("second login for same user rejected", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "hunter2", "alice@example.com"))

		out, err := svc.Login(ctx, "alice", "hunter2", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginValid, out)

		out, err = svc.Login(ctx, "alice", "hunter2", "conn-2")
		require.NoError(t, err)
		require.Equal(t, LoginAlreadyLoggedIn, out)
		require.Equal(t, 1, svc.Sessions.Len())
	})

	t.Run("already-logged-in check runs before credential lookup", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "hunter2", "alice@example.com"))

		out, err := svc.Login(ctx, "alice", "hunter2", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginValid, out)

		// Even a wrong password reports the active session first.
		out, err = svc.Login(ctx, "alice", "wrong", "conn-2")
		require.NoError(t, err)
		require.Equal(t, LoginAlreadyLoggedIn, out)
	})

	t.Run("login after logout succeeds", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "hunter2", "alice@example.com"))

		out, err := svc.Login(ctx, "alice", "hunter2", "conn-1")
		require.NoError(t, err)
		require.Equal(t, LoginValid, out)

		require.True(t, svc.Logout("conn-1"))

		out, err = svc.Login(ctx, "alice", "hunter2", "conn-2")
		require.NoError(t, err)
		require.Equal(t, LoginValid, out)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown connection", func(t *testing.T) {
		svc := newAuthService(t)
		require.False(t, svc.Logout("conn-1"))
	})

	t.Run("double logout", func(t *testing.T) {
		svc := newAuthService(t)
		require.NoError(t, svc.Register(ctx, "alice", "hunter2", "alice@example.com"))

		_, err := svc.Login(ctx, "alice", "hunter2", "conn-1")
		require.NoError(t, err)

		require.True(t, svc.Logout("conn-1"))
		require.False(t, svc.Logout("conn-1"))
	})
}

func TestLoginOutcomeString(t *testing.T) {
	require.Equal(t, "invalid_input", LoginInvalidInput.String())
	require.Equal(t, "invalid_credentials", LoginInvalidCredentials.String())
	require.Equal(t, "valid", LoginValid.String())
	require.Equal(t, "root", LoginRoot.String())
	require.Equal(t, "already_logged_in", LoginAlreadyLoggedIn.String())
}
