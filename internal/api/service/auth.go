package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/activist-org/activist-api/internal/api/domain"
	"github.com/activist-org/activist-api/internal/api/mail"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/pkg/cryptox"
	"github.com/activist-org/activist-api/pkg/idx"
	"github.com/activist-org/activist-api/pkg/slogx"
)

// DefaultSessionTTL is how long a session token stays valid unless
// configured otherwise.
const DefaultSessionTTL = 30 * 24 * time.Hour

var (
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrAccountNotConfirmed = errors.New("account_not_confirmed")
	ErrAccountDisabled     = errors.New("account_disabled")
	ErrUserExists          = errors.New("user_exists")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrCodeNotFound        = errors.New("verification_code_not_found")
)

// AuthService owns accounts and session tokens. Tokens are opaque random
// strings; only their SHA-256 fingerprint is stored, so a database leak does
// not leak usable sessions.
type AuthService struct {
	Store      store.Store
	Mailer     mail.Mailer
	SessionTTL time.Duration
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL <= 0 {
		return DefaultSessionTTL
	}
	return s.SessionTTL
}

// SignUp registers a new pending account and dispatches the verification
// email. The account cannot sign in until the email code is redeemed.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	code, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:               idx.New().String(),
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		Status:           domain.UserStatusPending,
		VerificationCode: &code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	// Fire and forget: a slow or broken relay must not block sign-up. The
	// request context ends when the response is written, so detach.
	l := slogx.FromContext(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Mailer.SendVerification(ctx, email, username, code); err != nil {
			l.Error("failed to send verification email",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
	}()

	return user, nil
}

// SignIn checks the credentials and mints a new session token. The raw token
// is returned exactly once; the store only keeps its fingerprint. Multiple
// concurrent sessions per user are allowed.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash anyway so unknown usernames cost the same as
			// wrong passwords.
			_ = cryptox.VerifyPassword(password, burnHash())
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	if !user.Confirmed {
		return "", ErrAccountNotConfirmed
	}
	if user.Status == domain.UserStatusSuspended || user.Status == domain.UserStatusBanned {
		return "", ErrAccountDisabled
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(s.sessionTTL()),
		CreatedAt: now,
	}
	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}

// Authenticate resolves a raw session token to its user. It never mutates
// state, so concurrent requests with the same token are safe.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrUnauthenticated
	}

	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, err
	}

	return user, nil
}

// SignOut revokes the session behind the token. Unknown tokens are not an
// error: signing out twice succeeds both times.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
}

// DeleteAccount removes a user. Users may delete themselves; staff and
// admins may delete anyone. Sessions and flags cascade at the schema level.
func (s *AuthService) DeleteAccount(ctx context.Context, actor domain.User, targetID string) error {
	if actor.ID != targetID && !actor.IsModerator() {
		return ErrUnauthorized
	}
	return s.Store.Users().DeleteUser(ctx, targetID)
}

// VerifyEmail redeems an outstanding verification code, confirming the
// account and activating it. Lookup and confirmation run in one transaction
// so two concurrent redemptions of the same code cannot both succeed.
func (s *AuthService) VerifyEmail(ctx context.Context, code string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByVerificationCode(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCodeNotFound
			}
			return err
		}
		return tx.Users().ConfirmUser(ctx, user.ID)
	})
}

var (
	burnHashOnce sync.Once
	burnHashVal  string
)

// burnHash returns a throwaway argon2 hash verified against when the
// username is unknown, keeping sign-in timing independent of account
// existence. Computed lazily so the pepper path is configured first.
func burnHash() string {
	burnHashOnce.Do(func() {
		h, err := cryptox.HashPassword("timing-equalizer")
		if err != nil {
			panic(err)
		}
		burnHashVal = h
	})
	return burnHashVal
}
