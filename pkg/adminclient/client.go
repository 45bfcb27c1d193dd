// Package adminclient drives the portfolio API the way the admin dashboard
// does: it logs in, keeps the session token, attaches it to every mutation
// and keeps an in-memory copy of each content list that it patches after
// successful writes instead of refetching.
//
// Any 401 or 403 on an authenticated call ends the session: the token is
// dropped and ErrSessionExpired is returned, so the caller must log in again.
package adminclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

var (
	// ErrSessionExpired is returned when the server rejected the stored token.
	ErrSessionExpired = errors.New("session expired, log in again")
	// ErrNotLoggedIn is returned by mutations attempted without a session.
	ErrNotLoggedIn = errors.New("not logged in")
)

// APIError is any other non-2xx answer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	hc      *http.Client

	mu      sync.RWMutex
	session *Session

	About    *Resource[AboutItem]
	Projects *Resource[Project]
	Services *Resource[Service]
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	c.About = newResource(c, "/api/about",
		func(a *AboutItem) *int64 { return &a.ID }, nil)
	c.Projects = newResource(c, "/api/projects",
		func(p *Project) *int64 { return &p.ID },
		func(old, updated *Project) {
			updated.DateAdded = old.DateAdded
			updated.Features = normalizeList(updated.Features)
			updated.Tech = normalizeList(updated.Tech)
		})
	c.Services = newResource(c, "/api/services",
		func(s *Service) *int64 { return &s.ID },
		func(_, updated *Service) { updated.Points = normalizeList(updated.Points) })
	return c
}

// Login authenticates and stores the session. A rejected login is an
// *APIError, not ErrSessionExpired.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &s, false); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()
	return &s, nil
}

// Logout forgets the token. Tokens are stateless, so nothing is sent.
func (c *Client) Logout() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// Session returns a copy of the current session, or nil.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Client) LoggedIn() bool { return c.Session() != nil }

// Refresh reloads all three lists.
func (c *Client) Refresh(ctx context.Context) error {
	if _, err := c.About.Fetch(ctx); err != nil {
		return fmt.Errorf("about: %w", err)
	}
	if _, err := c.Projects.Fetch(ctx); err != nil {
		return fmt.Errorf("projects: %w", err)
	}
	if _, err := c.Services.Fetch(ctx); err != nil {
		return fmt.Errorf("services: %w", err)
	}
	return nil
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

// do sends one request. When authed is set the bearer token is attached and
// an auth rejection ends the session.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var token string
	if authed {
		if token = c.token(); token == "" {
			return ErrNotLoggedIn
		}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if authed && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		c.expire(token)
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// expire drops the session only if it still holds the rejected token.
func (c *Client) expire(token string) {
	c.mu.Lock()
	if c.session != nil && c.session.Token == token {
		c.session = nil
	}
	c.mu.Unlock()
}

func errorMessage(raw []byte, fallback string) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return fallback
}

// normalizeList trims items and drops blanks the way the server stores list
// fields; the result is never nil.
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
