// Package session holds the client's authentication state: the bearer
// credential and the cached profile of the current user.
//
// A Store is created once at startup (NewStore) and shared by the router,
// the supervisor and the CLI. Its side effects are confined to its own
// fields and the persisted token slot; it never navigates.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/exchangeclient/internal/client/client"
	"github.com/dmitrijs2005/exchangeclient/internal/client/models"
	"github.com/dmitrijs2005/exchangeclient/internal/client/storage"
	"github.com/dmitrijs2005/exchangeclient/internal/client/tokenx"
	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

// API is the part of the remote API the store needs.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, payload models.RegisterPayload) (*models.AuthResponse, error)
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, payload models.UpdateProfilePayload) (*models.User, error)
	UploadAvatar(ctx context.Context, filename string, content io.Reader) (string, error)
}

// AuthError is a failure of a session operation that carries a message fit
// for the user, taken verbatim from the server.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// asAuthError surfaces the server's reason when there is one and returns
// other failures (unreachable, decode errors, ...) unchanged.
func asAuthError(err error) error {
	if msg, ok := client.ServerMessage(err); ok {
		return &AuthError{Message: msg, Err: err}
	}
	return err
}

type Store struct {
	api    API
	tokens storage.TokenStore
	log    logging.Logger

	mu      sync.RWMutex
	token   string
	profile *models.User

	fetches singleflight.Group
}

// NewStore builds the session from the persisted credential, if any.
func NewStore(ctx context.Context, api API, tokens storage.TokenStore, log logging.Logger) (*Store, error) {
	token, err := tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load persisted credential: %w", err)
	}

	s := &Store{
		api:    api,
		tokens: tokens,
		log:    log.With("component", "session"),
		token:  token,
	}

	if token != "" {
		s.log.Info(ctx, "restored session")
		if c, err := tokenx.Inspect(token); err == nil && c.Expired(time.Now()) {
			s.log.Warn(ctx, "persisted token looks expired; the server will decide", "user", c.Username, "expired_at", c.ExpiresAt)
		}
	}
	return s, nil
}

// IsAuthenticated reports whether a credential is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the held credential ("" when logged out).
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns a copy of the cached profile, or nil when none is cached.
// The profile may lag behind the credential.
func (s *Store) Profile() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Login exchanges credentials for a token, persists it and fetches the
// profile. If the exchange fails the session is left unchanged. A failed
// profile fetch after a successful exchange is returned but the credential
// is kept.
func (s *Store) Login(ctx context.Context, username, password string) error {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.log.Info(ctx, "login failed", "user", username, "error", err)
		return asAuthError(err)
	}

	if err := s.adopt(ctx, token, nil); err != nil {
		return err
	}
	s.log.Info(ctx, "logged in", "user", username)

	if err := s.FetchProfile(ctx); err != nil {
		return fmt.Errorf("fetch profile after login: %w", err)
	}
	return nil
}

// Register creates the account and adopts the returned token. A user record
// in the response is cached directly, saving a profile fetch.
func (s *Store) Register(ctx context.Context, payload models.RegisterPayload) error {
	resp, err := s.api.Register(ctx, payload)
	if err != nil {
		s.log.Info(ctx, "registration failed", "user", payload.Username, "error", err)
		return asAuthError(err)
	}

	if err := s.adopt(ctx, resp.Token, resp.User); err != nil {
		return err
	}
	s.log.Info(ctx, "registered", "user", payload.Username, "profile_cached", resp.User != nil)
	return nil
}

// adopt persists token and makes it (and profile, possibly nil) current.
func (s *Store) adopt(ctx context.Context, token string, profile *models.User) error {
	if err := s.tokens.Set(ctx, token); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.profile = profile.Clone()
	return nil
}

// FetchProfile replaces the cached profile with the server's record. It
// returns immediately when no credential is held.
//
// Concurrent calls for the same credential share one request. The shared
// request is detached from the callers' cancellation, and its result is
// dropped if the credential changed while it was in flight.
func (s *Store) FetchProfile(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return nil
	}

	_, err, shared := s.fetches.Do(token, func() (any, error) {
		u, err := s.api.GetProfile(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.token != token {
			s.log.Debug(ctx, "discarding profile for a superseded credential", "user", u.Username)
			return nil, nil
		}
		s.profile = u
		return nil, nil
	})
	if err != nil {
		s.log.Warn(ctx, "profile fetch failed", "error", err, "shared", shared)
		return err
	}
	return nil
}

// UpdateProfile sends only the fields set in payload and caches the server's
// echo of the full record, which it also returns.
func (s *Store) UpdateProfile(ctx context.Context, payload models.UpdateProfilePayload) (*models.User, error) {
	u, err := s.api.UpdateProfile(ctx, payload)
	if err != nil {
		return nil, asAuthError(err)
	}

	s.mu.Lock()
	s.profile = u.Clone()
	s.mu.Unlock()

	s.log.Info(ctx, "profile updated", "user", u.Username)
	return u, nil
}

// UploadAvatar uploads a new avatar image and, if a profile is cached,
// points its Avatar at the stored URL.
func (s *Store) UploadAvatar(ctx context.Context, filename string, content io.Reader) (string, error) {
	url, err := s.api.UploadAvatar(ctx, filename, content)
	if err != nil {
		return "", asAuthError(err)
	}

	s.mu.Lock()
	if s.profile != nil {
		s.profile.Avatar = url
	}
	s.mu.Unlock()
	return url, nil
}

// Logout clears the credential, the profile and the persisted slot. It never
// fails: a storage error is logged and the in-memory state is cleared anyway.
// Calling it while logged out is a no-op.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear persisted credential", "error", err)
	}
	if wasAuthenticated {
		s.log.Info(ctx, "logged out")
	}
}

// CheckAdminPermission fetches the profile first when none is cached (the
// fetch error is returned) and reports whether its role is admin.
func (s *Store) CheckAdminPermission(ctx context.Context) (bool, error) {
	if s.Profile() == nil {
		if err := s.FetchProfile(ctx); err != nil {
			return false, err
		}
	}
	return s.Profile().IsAdmin(), nil
}

// IsAuthError reports whether err carries a server-supplied message.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
