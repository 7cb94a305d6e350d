package contractpro

import (
	"context"
	"net/http"
	"net/url"
)

// User is a directory-backed account as listed for reviewer assignment
// and user management.
type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
}

// SyncResult acknowledges a directory synchronisation run.
type SyncResult struct {
	Message      string `json:"message"`
	TotalADUsers int    `json:"total_ad_users"`
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	out, err := getJSON[[]User](ctx, c, "/users", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// SyncDirectory triggers an Active Directory import on the backend. The
// sync itself is an opaque backend concern.
func (c *Client) SyncDirectory(ctx context.Context) (*SyncResult, error) {
	return sendForm[SyncResult](ctx, c, http.MethodPost, "/users/sync-ad", url.Values{}, nil)
}
