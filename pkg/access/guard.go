// Package access gates protected operations on the presence of a live
// session token. There is no finer-grained client-side permission model:
// the backend stays the authority on whether an action succeeds.
package access

import "errors"

// ErrNotAuthenticated tells the caller to send the user to login.
var ErrNotAuthenticated = errors.New("not authenticated")

// TokenReader is the read-only slice of the session store the guard needs.
type TokenReader interface {
	Token() string
}

type Guard struct {
	tokens TokenReader
}

func New(tokens TokenReader) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticated reports whether a non-empty token is held right now. The
// check is re-evaluated on every call, never cached, so a token cleared
// or expired mid-session denies the next guarded operation.
func (g *Guard) Authenticated() bool {
	return g.tokens.Token() != ""
}

// Require returns ErrNotAuthenticated when no live session exists.
func (g *Guard) Require() error {
	if !g.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}
