package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/welldanyogia/inboxzero/internal/inbox"
	"github.com/welldanyogia/inboxzero/internal/models"
)

// DefaultTimeout bounds every request made by a Client
const DefaultTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 10 << 20

// Client is an Inbox Zero API client bound to one session store
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	sessions SessionStore
	logger   *slog.Logger

	mu      sync.RWMutex
	session *Session
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for failed requests
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for serverURL and restores any stored session
func New(serverURL string, sessions SessionStore, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", serverURL)
	}

	c := &Client{
		baseURL:  base,
		http:     &http.Client{Timeout: DefaultTimeout},
		sessions: sessions,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	session, err := sessions.Load()
	switch {
	case err == nil:
		c.session = session
	case errors.Is(err, ErrNoSession):
	default:
		c.logger.Warn("ignoring unreadable session", slog.Any("error", err))
	}
	return c, nil
}

// Session returns a copy of the current session, or nil when logged out
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.session.Valid() {
		return nil
	}
	s := *c.session
	return &s
}

// LoggedIn reports whether a session is held
func (c *Client) LoggedIn() bool {
	return c.Session() != nil
}

// Signup registers a new account and stores the returned session
func (c *Client) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/signup", body)
}

// Login exchanges credentials for a session and stores it
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/login", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, path, body, &s, false); err != nil {
		return nil, err
	}
	if !s.Valid() {
		return nil, fmt.Errorf("server returned no token")
	}
	if err := c.setSession(&s); err != nil {
		return nil, err
	}
	return c.Session(), nil
}

// Logout forgets the current session
func (c *Client) Logout() error {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	return c.sessions.Clear()
}

// ListEmails returns every email of the signed-in user, newest first
func (c *Client) ListEmails(ctx context.Context) ([]models.Email, error) {
	var emails []models.Email
	if err := c.do(ctx, http.MethodGet, "/api/emails", nil, &emails, true); err != nil {
		return nil, err
	}
	if emails == nil {
		emails = []models.Email{}
	}
	return emails, nil
}

// MarkRead marks an email as read and returns the server's copy
func (c *Client) MarkRead(ctx context.Context, id uint) (*models.Email, error) {
	return c.transition(ctx, id, "read")
}

// Archive archives an email and returns the server's copy
func (c *Client) Archive(ctx context.Context, id uint) (*models.Email, error) {
	return c.transition(ctx, id, "archive")
}

func (c *Client) transition(ctx context.Context, id uint, action string) (*models.Email, error) {
	var email models.Email
	path := "/api/emails/" + strconv.FormatUint(uint64(id), 10) + "/" + action
	if err := c.do(ctx, http.MethodPut, path, nil, &email, true); err != nil {
		return nil, err
	}
	return &email, nil
}

// Progress fetches the server-side progress summary
func (c *Client) Progress(ctx context.Context) (*inbox.Progress, error) {
	var p inbox.Progress
	if err := c.do(ctx, http.MethodGet, "/api/emails/progress", nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) setSession(s *Session) error {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	if err := c.sessions.Save(s); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// do sends one request. Authenticated calls without a session fail before any I/O.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authenticated bool) error {
	var token string
	if authenticated {
		s := c.Session()
		if s == nil {
			return ErrUnauthenticated
		}
		token = s.Token
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		c.logger.Warn("session rejected by server", slog.String("path", path))
		if err := c.Logout(); err != nil {
			c.logger.Error("failed to clear session", slog.Any("error", err))
		}
		return ErrUnauthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, data)
		c.logger.Error("request rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", apiErr.Status),
			slog.String("code", apiErr.Code))
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status}
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
	}
	return apiErr
}
