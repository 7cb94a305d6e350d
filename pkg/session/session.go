// Package session is the single source of truth for "who is logged in".
// It persists the bearer token and principal together in one state file
// (the browser local-storage analog), hydrates once at startup, and hands
// token snapshots to every other component at call time.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	contractpro "github.com/wellnessvoyage60-gif/contract-management-app"
)

// Role is the principal's authorization role. One role per principal.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleVendor:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Principal is the authenticated identity driving authorization decisions.
type Principal struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Authenticator is the slice of the API client that login needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*contractpro.LoginResult, error)
}

// Store holds the current principal and token. Token and principal are
// set and cleared together, never one without the other.
type Store struct {
	mu        sync.RWMutex
	path      string
	token     string
	principal *Principal

	now func() time.Time
	log zerolog.Logger
}

type Option func(*Store)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the expiry clock. Tests use it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// persistedState is the on-disk shape, written atomically with mode 0600.
type persistedState struct {
	AccessToken string     `json:"access_token"`
	Principal   *Principal `json:"principal"`
}

// Open hydrates a store from the state file at path. A missing file means
// logged out. A file holding a token without a principal (or the reverse)
// is inconsistent and is discarded, as is a token that has already
// expired: neither may resurrect a session.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path: path,
		now:  time.Now,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session state: %w", err)
	}

	var state persistedState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.log.Warn().Err(err).Msg("session state unreadable, starting logged out")
		_ = os.Remove(path)
		return s, nil
	}
	switch {
	case state.AccessToken == "" || state.Principal == nil:
		s.log.Warn().Msg("session state inconsistent, starting logged out")
		_ = os.Remove(path)
	case tokenExpired(state.AccessToken, s.now()):
		s.log.Info().Msg("stored session expired, starting logged out")
		_ = os.Remove(path)
	default:
		s.token = state.AccessToken
		s.principal = state.Principal
	}
	return s, nil
}

// Login exchanges credentials via auth and, on success, stores token and
// principal together in memory and on disk. Any failure leaves the prior
// state untouched.
func (s *Store) Login(ctx context.Context, auth Authenticator, username, password string) (Principal, error) {
	res, err := auth.Login(ctx, username, password)
	if err != nil {
		return Principal{}, err
	}
	role, err := ParseRole(res.Role)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", contractpro.ErrSchemaMismatch, err)
	}
	p := Principal{Username: username, Role: role}

	s.mu.Lock()
	defer s.mu.Unlock()
	prevToken, prevPrincipal := s.token, s.principal
	s.token = res.AccessToken
	s.principal = &p
	if err := s.persist(); err != nil {
		s.token = prevToken
		s.principal = prevPrincipal
		return Principal{}, fmt.Errorf("persist session: %w", err)
	}
	s.log.Info().Str("username", username).Str("role", string(role)).Msg("logged in")
	return p, nil
}

// Logout clears memory and disk unconditionally. Calling it while logged
// out is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.principal = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session state: %w", err)
	}
	return nil
}

// Current returns the in-memory principal. The second return is false
// when nobody is logged in or the session has expired.
func (s *Store) Current() (Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil || s.token == "" || tokenExpired(s.token, s.now()) {
		return Principal{}, false
	}
	return *s.principal, true
}

// Token returns the bearer token as a fresh snapshot. An expired token
// reads as empty, so a session that lapses mid-run denies the very next
// authenticated call.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || tokenExpired(s.token, s.now()) {
		return ""
	}
	return s.token
}

var _ contractpro.TokenSource = (*Store)(nil)

func (s *Store) persist() error {
	state := persistedState{AccessToken: s.token, Principal: s.principal}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// tokenExpired inspects a JWT's exp claim without verifying the
// signature; verification is the backend's job. Opaque (non-JWT) tokens
// and JWTs without exp never expire client-side.
func tokenExpired(raw string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
