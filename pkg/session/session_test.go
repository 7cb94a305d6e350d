package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractpro "github.com/wellnessvoyage60-gif/contract-management-app"
)

type fakeAuth struct {
	res *contractpro.LoginResult
	err error
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*contractpro.LoginResult, error) {
	return f.res, f.err
}

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestLoginStoresTokenAndPrincipalTogether(t *testing.T) {
	path := statePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	auth := &fakeAuth{res: &contractpro.LoginResult{AccessToken: "opaque-token", Role: "admin"}}
	p, err := s.Login(context.Background(), auth, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, Principal{Username: "alice", Role: RoleAdmin}, p)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, p, current)
	assert.Equal(t, "opaque-token", s.Token())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var state struct {
		AccessToken string     `json:"access_token"`
		Principal   *Principal `json:"principal"`
	}
	require.NoError(t, json.Unmarshal(raw, &state))
	assert.Equal(t, "opaque-token", state.AccessToken)
	require.NotNil(t, state.Principal)
	assert.Equal(t, p, *state.Principal)
}

func TestLoginFailureLeavesPriorStateUntouched(t *testing.T) {
	s, err := Open(statePath(t))
	require.NoError(t, err)

	good := &fakeAuth{res: &contractpro.LoginResult{AccessToken: "tok-1", Role: "user"}}
	_, err = s.Login(context.Background(), good, "bob", "pw")
	require.NoError(t, err)

	bad := &fakeAuth{err: contractpro.ErrAuthenticationFailed}
	_, err = s.Login(context.Background(), bad, "mallory", "guess")
	require.ErrorIs(t, err, contractpro.ErrAuthenticationFailed)

	current, ok := s.Current()
	require.True(t, ok, "prior session must survive a failed login")
	assert.Equal(t, "bob", current.Username)
	assert.Equal(t, "tok-1", s.Token())
}

func TestLoginFailureWhenLoggedOutStaysLoggedOut(t *testing.T) {
	s, err := Open(statePath(t))
	require.NoError(t, err)

	bad := &fakeAuth{err: contractpro.ErrAuthenticationFailed}
	_, err = s.Login(context.Background(), bad, "mallory", "guess")
	require.Error(t, err)

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, s.Token())
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	s, err := Open(statePath(t))
	require.NoError(t, err)

	auth := &fakeAuth{res: &contractpro.LoginResult{AccessToken: "tok", Role: "superuser"}}
	_, err = s.Login(context.Background(), auth, "alice", "pw")
	require.ErrorIs(t, err, contractpro.ErrSchemaMismatch)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestLogoutIsIdempotent(t *testing.T) {
	path := statePath(t)
	s, err := Open(path)
	require.NoError(t, err)

	auth := &fakeAuth{res: &contractpro.LoginResult{AccessToken: "tok", Role: "vendor"}}
	_, err = s.Login(context.Background(), auth, "acme", "pw")
	require.NoError(t, err)

	require.NoError(t, s.Logout())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, s.Token())
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Logging out while logged out is a no-op, not an error.
	require.NoError(t, s.Logout())
}

func TestHydrateAcrossRestarts(t *testing.T) {
	path := statePath(t)
	s1, err := Open(path)
	require.NoError(t, err)
	auth := &fakeAuth{res: &contractpro.LoginResult{AccessToken: "tok", Role: "user"}}
	_, err = s1.Login(context.Background(), auth, "bob", "pw")
	require.NoError(t, err)

	s2, err := Open(path)
	require.NoError(t, err)
	current, ok := s2.Current()
	require.True(t, ok)
	assert.Equal(t, "bob", current.Username)
	assert.Equal(t, RoleUser, current.Role)
	assert.Equal(t, "tok", s2.Token())
}

func TestInconsistentStateHydratesLoggedOut(t *testing.T) {
	path := statePath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"tok"}`), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Current()
	assert.False(t, ok, "token without principal must not resurrect a session")
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist, "inconsistent state file should be discarded")
}

func TestCorruptStateHydratesLoggedOut(t *testing.T) {
	path := statePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestExpiredTokenHydratesLoggedOut(t *testing.T) {
	path := statePath(t)
	expired := signedJWT(t, time.Now().Add(-time.Hour))
	state, err := json.Marshal(map[string]any{
		"access_token": expired,
		"principal":    Principal{Username: "alice", Role: RoleAdmin},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, state, 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, s.Token())
}

func TestTokenExpiresMidSession(t *testing.T) {
	now := time.Now()
	clock := &now
	s, err := Open(statePath(t), WithClock(func() time.Time { return *clock }))
	require.NoError(t, err)

	tok := signedJWT(t, now.Add(time.Minute))
	auth := &fakeAuth{res: &contractpro.LoginResult{AccessToken: tok, Role: "admin"}}
	_, err = s.Login(context.Background(), auth, "alice", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token())

	later := now.Add(2 * time.Minute)
	clock = &later
	assert.Empty(t, s.Token(), "expired token must read as empty at call time")
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestOpaqueTokenNeverExpiresClientSide(t *testing.T) {
	s, err := Open(statePath(t))
	require.NoError(t, err)
	auth := &fakeAuth{res: &contractpro.LoginResult{AccessToken: "not-a-jwt", Role: "user"}}
	_, err = s.Login(context.Background(), auth, "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "not-a-jwt", s.Token())
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "user", "vendor"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}
	_, err := ParseRole("root")
	assert.Error(t, err)
}

func TestLoginSurfacesNetworkErrors(t *testing.T) {
	s, err := Open(statePath(t))
	require.NoError(t, err)
	bad := &fakeAuth{err: errors.New("connect: connection refused")}
	_, err = s.Login(context.Background(), bad, "alice", "pw")
	require.Error(t, err)
}
