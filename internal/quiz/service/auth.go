package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"sync"

	"github.com/sgronlund/latias-backend/internal/quiz/domain"
	"github.com/sgronlund/latias-backend/internal/quiz/store"
)

var (
	ErrReservedName = errors.New("reserved_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrTaken        = errors.New("username_or_email_taken")
)

const (
	// RootUsername is the hardcoded superuser. It bypasses the credential
	// store entirely and can never be registered.
	RootUsername = "root"

	// rootSecretDigest is the SHA-256 hex digest the client submits as the
	// root password. The raw secret never reaches the server.
	rootSecretDigest = "a7534ffaebea80c377ce69ae7802ee3a917fd000ae0b897932908525653f3653"
)

// emailPattern: local part of ASCII letters/digits/_.+-, then one domain
// segment plus at least one dot-separated segment. A second @ can't match.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+$`)

// LoginOutcome is the discriminated result of a login attempt.
type LoginOutcome int

const (
	LoginInvalidInput LoginOutcome = iota
	LoginInvalidCredentials
	LoginValid
	LoginRoot
	LoginAlreadyLoggedIn
)

func (o LoginOutcome) String() string {
	switch o {
	case LoginInvalidCredentials:
		return "invalid_credentials"
	case LoginValid:
		return "valid"
	case LoginRoot:
		return "root"
	case LoginAlreadyLoggedIn:
		return "already_logged_in"
	default:
		return "invalid_input"
	}
}

// AuthService owns registration and the session lifecycle.
type AuthService struct {
	Store    store.Store
	Sessions *SessionRegistry

	// loginMu serializes the whole login critical section so two
	// concurrent logins for the same username cannot both pass the
	// already-logged-in check.
	loginMu sync.Mutex
}

// Register creates a new user. Checks run in a fixed order: input
// presence, reserved name, email shape, then username/email collision.
// The collision check and the insert share one transaction.
func (s *AuthService) Register(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" || email == "" {
		return ErrInvalidInput
	}
	if username == RootUsername {
		return ErrReservedName
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		taken, err := tx.Users().UsernameOrEmailTaken(ctx, username, email)
		if err != nil {
			return err
		}
		if taken {
			// Either collision blocks registration; callers get one answer.
			return ErrTaken
		}

		err = tx.Users().Create(ctx, domain.User{
			Username: username,
			Password: password,
			Email:    email,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrTaken
		}
		return err
	})
}

// Login authenticates a connection. Ordering is part of the contract:
// input check, root check, already-logged-in check, then the credential
// lookup. A session is registered only on a genuine credential match,
// never for root and never before the lookup.
func (s *AuthService) Login(ctx context.Context, username, password, connectionID string) (LoginOutcome, error) {
	if username == "" || password == "" || connectionID == "" {
		return LoginInvalidInput, nil
	}

	if username == RootUsername &&
		subtle.ConstantTimeCompare([]byte(password), []byte(rootSecretDigest)) == 1 {
		return LoginRoot, nil
	}

	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	if s.Sessions.Active(username) {
		return LoginAlreadyLoggedIn, nil
	}

	_, err := s.Store.Users().GetByCredentials(ctx, username, password)
	if errors.Is(err, store.ErrNotFound) {
		return LoginInvalidCredentials, nil
	}
	if err != nil {
		return LoginInvalidInput, err
	}

	s.Sessions.Add(connectionID, username)
	return LoginValid, nil
}

// Logout drops the session for the connection. Transport disconnect
// notifications call this too.
func (s *AuthService) Logout(connectionID string) bool {
	return s.Sessions.Remove(connectionID)
}

// LookupUsername resolves a connection to its logged-in username.
func (s *AuthService) LookupUsername(connectionID string) (string, bool) {
	return s.Sessions.Username(connectionID)
}
