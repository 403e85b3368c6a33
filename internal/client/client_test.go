package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/welldanyogia/inboxzero/internal/inbox"
	"github.com/welldanyogia/inboxzero/internal/models"
)

type ClientTestSuite struct {
	suite.Suite
	mux      *http.ServeMux
	server   *httptest.Server
	sessions *MemorySessionStore
	client   *Client
	ctx      context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.sessions = NewMemorySessionStore()
	s.ctx = context.Background()

	var err error
	s.client, err = New(s.server.URL, s.sessions, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) login() {
	s.Require().NoError(s.sessions.Save(testSession()))
	var err error
	s.client, err = New(s.server.URL, s.sessions, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(err)
	s.Require().True(s.client.LoggedIn())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *ClientTestSuite) TestSignup_StoresSession() {
	s.mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("Ada", body["name"])
		s.Equal("ada@example.com", body["email"])
		s.Equal("password123", body["password"])
		writeJSON(w, http.StatusCreated, testSession())
	})

	session, err := s.client.Signup(s.ctx, "Ada", "ada@example.com", "password123")

	s.Require().NoError(err)
	s.Equal("token-123", session.Token)
	s.Equal("Ada", session.User.Name)

	stored, err := s.sessions.Load()
	s.Require().NoError(err)
	s.Equal("token-123", stored.Token)
}

func (s *ClientTestSuite) TestLogin_InvalidCredentials() {
	s.mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid email or password", Code: "INVALID_CREDENTIALS"})
	})

	session, err := s.client.Login(s.ctx, "ada@example.com", "wrong")

	s.Nil(session)
	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusBadRequest, apiErr.Status)
	s.Equal("INVALID_CREDENTIALS", apiErr.Code)
	s.Equal("invalid email or password", apiErr.Error())
	s.False(s.client.LoggedIn())
}

func (s *ClientTestSuite) TestListEmails_SendsBearerToken() {
	s.login()
	s.mux.HandleFunc("GET /api/emails", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer token-123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []models.Email{{ID: 2, Subject: "b"}, {ID: 1, Subject: "a"}})
	})

	emails, err := s.client.ListEmails(s.ctx)

	s.Require().NoError(err)
	s.Len(emails, 2)
	s.Equal(uint(2), emails[0].ID)
}

func (s *ClientTestSuite) TestListEmails_NullBodyIsEmptyList() {
	s.login()
	s.mux.HandleFunc("GET /api/emails", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	})

	emails, err := s.client.ListEmails(s.ctx)

	s.Require().NoError(err)
	s.NotNil(emails)
	s.Empty(emails)
}

func (s *ClientTestSuite) TestAuthenticatedCallWithoutSession() {
	called := false
	s.mux.HandleFunc("GET /api/emails", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := s.client.ListEmails(s.ctx)

	s.ErrorIs(err, ErrUnauthenticated)
	s.False(called)
}

func (s *ClientTestSuite) TestUnauthorizedClearsSession() {
	s.login()
	s.mux.HandleFunc("GET /api/emails/progress", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "token expired", Code: "UNAUTHORIZED"})
	})

	_, err := s.client.Progress(s.ctx)

	s.ErrorIs(err, ErrUnauthenticated)
	s.False(s.client.LoggedIn())
	_, err = s.sessions.Load()
	s.ErrorIs(err, ErrNoSession)
}

func (s *ClientTestSuite) TestMarkReadAndArchive() {
	s.login()
	s.mux.HandleFunc("PUT /api/emails/5/read", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Email{ID: 5, IsRead: true})
	})
	s.mux.HandleFunc("PUT /api/emails/5/archive", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Email{ID: 5, IsRead: true, IsArchived: true})
	})

	read, err := s.client.MarkRead(s.ctx, 5)
	s.Require().NoError(err)
	s.True(read.IsRead)
	s.False(read.IsArchived)

	archived, err := s.client.Archive(s.ctx, 5)
	s.Require().NoError(err)
	s.True(archived.IsArchived)
}

func (s *ClientTestSuite) TestMarkRead_NotFound() {
	s.login()
	s.mux.HandleFunc("PUT /api/emails/99/read", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "email not found", Code: "NOT_FOUND"})
	})

	_, err := s.client.MarkRead(s.ctx, 99)

	s.True(IsNotFound(err))
	s.True(s.client.LoggedIn())
}

func (s *ClientTestSuite) TestProgress() {
	s.login()
	s.mux.HandleFunc("GET /api/emails/progress", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, inbox.Progress{Progress: 50, TotalEmails: 4, ProcessedEmails: 2})
	})

	p, err := s.client.Progress(s.ctx)

	s.Require().NoError(err)
	s.Equal(50.0, p.Progress)
	s.Equal(4, p.TotalEmails)
}

func (s *ClientTestSuite) TestServerErrorWithoutEnvelope() {
	s.login()
	s.mux.HandleFunc("GET /api/emails", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := s.client.ListEmails(s.ctx)

	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusBadGateway, apiErr.Status)
	s.Contains(apiErr.Error(), "502")
}

func (s *ClientTestSuite) TestLogout() {
	s.login()

	s.Require().NoError(s.client.Logout())

	s.False(s.client.LoggedIn())
	_, err := s.sessions.Load()
	s.ErrorIs(err, ErrNoSession)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com", NewMemorySessionStore())
	assert.Error(t, err)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := New("http://localhost:8080/", NewMemorySessionStore())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.baseURL.String())
}

func TestWithHTTPClient_TimeoutApplies(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL, NewMemorySessionStore(), WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "ada@example.com", "password123")

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Nil(t, c.Session())
}
