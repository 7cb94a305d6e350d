package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func TestAuthenticatedReflectsCurrentToken(t *testing.T) {
	token := "tok"
	g := New(tokenFunc(func() string { return token }))

	assert.True(t, g.Authenticated())
	require.NoError(t, g.Require())

	// The guard must re-read on every call: a token cleared mid-session
	// denies the next guarded operation.
	token = ""
	assert.False(t, g.Authenticated())
	assert.ErrorIs(t, g.Require(), ErrNotAuthenticated)
}

func TestRequireWhenNeverLoggedIn(t *testing.T) {
	g := New(tokenFunc(func() string { return "" }))
	assert.ErrorIs(t, g.Require(), ErrNotAuthenticated)
}
