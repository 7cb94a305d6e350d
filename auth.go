package contractpro

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// LoginResult is the backend's answer to a successful credential check.
// AccessToken is opaque to this client; the session store owns it.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// Login exchanges credentials for a bearer token. A 401 is reported as
// ErrAuthenticationFailed, anything transport-level as ErrNetworkUnavailable.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	res, err := sendForm[LoginResult](ctx, c, http.MethodPost, "/auth/login", form, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			apiErr.kind = ErrAuthenticationFailed
		}
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Detail: "login response carried no access token", kind: ErrSchemaMismatch}
	}
	return res, nil
}
