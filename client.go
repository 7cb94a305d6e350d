// Package contractpro is a typed client for the ContractPro contract
// lifecycle management REST backend. It owns no business logic: every
// method maps to one backend endpoint, parses the response at the
// boundary, and classifies failures into the package error taxonomy.
package contractpro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const userAgent = "contractpro-go/0.1.0"

// TokenSource supplies the current session bearer token. Implementations
// must return a fresh snapshot on every call so that a logout (or expiry)
// is visible to requests issued afterwards.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-credential TokenSource, useful for scripts.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient builds a client for the backend rooted at baseURL
// (e.g. "http://localhost:8000/api"). tokens may be nil for the few
// unauthenticated calls such as Login.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", "req_"+uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Token is read at send time, never cached, so a logout invalidates
	// any authenticated call issued after it.
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

// do executes the request and maps the outcome onto the error taxonomy.
// kind, when non-nil, overrides the default bucket for non-2xx statuses
// (login maps 401 to ErrAuthenticationFailed, transitions map everything
// to ErrTransitionRejected).
func (c *Client) do(req *http.Request, kind error) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", req.Method).Str("path", req.URL.Path).Err(err).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w: %v", req.Method, req.URL.Path, ErrNetworkUnavailable, err)
	}
	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, c.apiError(resp, kind)
	}
	return resp, nil
}

func (c *Client) apiError(resp *http.Response, kind error) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	out := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("X-Request-Id"),
	}
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		switch d := payload.Detail.(type) {
		case string:
			out.Detail = d
		default:
			b, _ := json.Marshal(d)
			out.Detail = string(b)
		}
	} else {
		out.Detail = strings.TrimSpace(string(body))
	}
	out.kind = kind
	if out.kind == nil {
		out.kind = sentinelFor(resp.StatusCode)
	}
	return out
}

func decode[T any](resp *http.Response) (*T, error) {
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return &out, nil
}

func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, nil)
	if err != nil {
		return nil, err
	}
	return decode[T](resp)
}

func sendJSON[T any](ctx context.Context, c *Client, method, path string, body any, kind error) (*T, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, nil, bytes.NewReader(b), "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, kind)
	if err != nil {
		return nil, err
	}
	return decode[T](resp)
}

func sendForm[T any](ctx context.Context, c *Client, method, path string, form url.Values, kind error) (*T, error) {
	req, err := c.newRequest(ctx, method, path, nil, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, kind)
	if err != nil {
		return nil, err
	}
	return decode[T](resp)
}

// messageResponse is the backend's generic {"message": ...} acknowledgement.
type messageResponse struct {
	Message string `json:"message"`
}
