package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/welldanyogia/inboxzero/internal/client"
	"github.com/welldanyogia/inboxzero/internal/inbox"
	"github.com/welldanyogia/inboxzero/internal/models"
)

var ada = &client.Session{
	Token: "token",
	User:  models.PublicUser{ID: 1, Name: "Ada", Email: "ada@example.com"},
}

func mailbox() []models.Email {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return []models.Email{
		{ID: 3, Subject: "Project Update", Body: "Please review", Sender: "team@inboxzero.com", UserID: 1, CreatedAt: now},
		{ID: 2, Subject: "Meeting Reminder", Body: "3 PM", Sender: "manager@inboxzero.com", UserID: 1, CreatedAt: now.Add(-time.Minute)},
		{ID: 1, Subject: "Weekly Newsletter", Body: "News", Sender: "newsletter@inboxzero.com", UserID: 1, CreatedAt: now.Add(-2 * time.Minute)},
	}
}

type AppTestSuite struct {
	suite.Suite
	api *mockBackend
	out *bytes.Buffer
	app *App
	ctx context.Context
}

func (s *AppTestSuite) SetupTest() {
	s.api = &mockBackend{}
	s.out = &bytes.Buffer{}
	s.ctx = context.Background()
	s.newApp("")
}

func (s *AppTestSuite) newApp(input string) {
	s.app = NewApp(Config{
		API:    s.api,
		In:     strings.NewReader(input),
		Out:    s.out,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.app.password = func() (string, error) { return "password123", nil }
}

func (s *AppTestSuite) loggedInWith(emails []models.Email) {
	s.api.session = ada
	s.api.On("ListEmails", mock.Anything).Return(emails, nil).Once()
	s.Require().NoError(s.app.Refresh(s.ctx))
	s.out.Reset()
}

func (s *AppTestSuite) TestLoggedOut_RequiresLogin() {
	s.False(s.app.Execute(s.ctx, "inbox"))
	s.Contains(s.out.String(), "Please log in first.")

	s.out.Reset()
	s.app.Execute(s.ctx, "frobnicate")
	s.Contains(s.out.String(), "Unknown command: frobnicate")
	s.api.AssertNotCalled(s.T(), "ListEmails", mock.Anything)
}

func (s *AppTestSuite) TestLogin_LoadsMailbox() {
	s.newApp("ada@example.com\n")
	s.api.On("Login", mock.Anything, "ada@example.com", "password123").Return(ada, nil)
	s.api.On("ListEmails", mock.Anything).Return(mailbox(), nil)

	s.app.Execute(s.ctx, "login")

	out := s.out.String()
	s.Contains(out, "Logged in as ada@example.com.")
	s.Contains(out, "Inbox - Ada")
	s.Contains(out, "3 total emails, 3 unread")
	s.Contains(out, "Showing all 3 emails")
	s.Contains(out, "Project Update")
	s.api.AssertExpectations(s.T())
}

func (s *AppTestSuite) TestLogin_ShowsServerMessage() {
	s.newApp("ada@example.com\n")
	s.api.On("Login", mock.Anything, "ada@example.com", "password123").
		Return(nil, &client.APIError{Status: http.StatusBadRequest, Code: "INVALID_CREDENTIALS", Message: "invalid email or password"})

	s.app.Execute(s.ctx, "login")

	s.Contains(s.out.String(), "invalid email or password")
	s.False(s.app.loggedIn())
	s.api.AssertNotCalled(s.T(), "ListEmails", mock.Anything)
}

func (s *AppTestSuite) TestSignup() {
	s.newApp("Ada\nada@example.com\n")
	s.api.On("Signup", mock.Anything, "Ada", "ada@example.com", "password123").Return(ada, nil)
	s.api.On("ListEmails", mock.Anything).Return([]models.Email{}, nil)

	s.app.Execute(s.ctx, "signup")

	out := s.out.String()
	s.Contains(out, "Welcome, Ada!")
	s.Contains(out, "🎉 Inbox Zero! No emails here.")
	s.False(s.app.Celebrating())
}

func (s *AppTestSuite) TestMarkRead_UpdatesLocalCopyAfterSuccess() {
	s.loggedInWith(mailbox())
	updated := mailbox()[1]
	updated.IsRead = true
	s.api.On("MarkRead", mock.Anything, uint(2)).Return(&updated, nil)

	s.app.Execute(s.ctx, "read 2")

	s.Contains(s.out.String(), "3 total emails, 2 unread")
	s.Contains(s.out.String(), "33.3%")

	s.app.Execute(s.ctx, "filter read")
	visible := s.app.Visible()
	s.Require().Len(visible, 1)
	s.Equal(uint(2), visible[0].ID)
}

func (s *AppTestSuite) TestMarkRead_FailureLeavesLocalCopy() {
	s.loggedInWith(mailbox())
	s.api.On("MarkRead", mock.Anything, uint(2)).Return(nil, errors.New("connection refused"))

	s.app.Execute(s.ctx, "read 2")

	s.Contains(s.out.String(), "Failed to mark email as read.")
	s.NotContains(s.out.String(), "connection refused")
	for _, e := range s.app.emails {
		s.False(e.IsRead)
	}
}

func (s *AppTestSuite) TestMarkRead_NotFound() {
	s.loggedInWith(mailbox())
	s.api.On("MarkRead", mock.Anything, uint(99)).
		Return(nil, &client.APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "email not found"})

	s.app.Execute(s.ctx, "read 99")

	s.Contains(s.out.String(), "Email #99 not found.")
}

func (s *AppTestSuite) TestInvalidID() {
	s.loggedInWith(mailbox())

	s.app.Execute(s.ctx, "read abc")
	s.Contains(s.out.String(), `invalid email id "abc"`)

	s.out.Reset()
	s.app.Execute(s.ctx, "archive")
	s.Contains(s.out.String(), "usage: read <id> | archive <id>")
	s.api.AssertNotCalled(s.T(), "Archive", mock.Anything, mock.Anything)
}

func (s *AppTestSuite) TestArchive_MovesEmailToArchivedView() {
	s.loggedInWith(mailbox())
	updated := mailbox()[0]
	updated.IsArchived = true
	s.api.On("Archive", mock.Anything, uint(3)).Return(&updated, nil)

	s.app.Execute(s.ctx, "archive 3")

	s.Len(s.app.Visible(), 2)
	s.Contains(s.out.String(), "2 total emails, 2 unread")

	s.out.Reset()
	s.app.Execute(s.ctx, "archived")
	s.Require().Len(s.app.Visible(), 1)
	s.Equal(uint(3), s.app.Visible()[0].ID)
	s.Contains(s.out.String(), "Archived - Ada")
	s.Contains(s.out.String(), "[ARCHIVED]")
}

func (s *AppTestSuite) TestCelebration_FiresOnceAndDismisses() {
	one := mailbox()[:1]
	s.loggedInWith(one)
	s.False(s.app.Celebrating())

	updated := one[0]
	updated.IsRead = true
	s.api.On("MarkRead", mock.Anything, uint(3)).Return(&updated, nil)

	s.app.Execute(s.ctx, "read 3")
	s.True(s.app.Celebrating())
	s.Contains(s.out.String(), "Inbox Zero Achieved!")

	s.out.Reset()
	s.app.Execute(s.ctx, "dismiss")
	s.False(s.app.Celebrating())
	s.NotContains(s.out.String(), "type 'dismiss'")

	archived := updated
	archived.IsArchived = true
	s.api.On("Archive", mock.Anything, uint(3)).Return(&archived, nil)
	s.app.Execute(s.ctx, "archive 3")
	s.False(s.app.Celebrating())
}

func (s *AppTestSuite) TestLogin_SwitchingAccountsStartsFresh() {
	s.newApp("grace@example.com\n")
	one := mailbox()[:1]
	one[0].IsRead = true
	s.loggedInWith(one)
	s.True(s.app.Celebrating())
	s.app.Execute(s.ctx, "dismiss")
	s.app.Execute(s.ctx, "archived")
	s.app.Execute(s.ctx, "search update")

	grace := &client.Session{
		Token: "other",
		User:  models.PublicUser{ID: 2, Name: "Grace", Email: "grace@example.com"},
	}
	theirs := []models.Email{{ID: 9, Subject: "Done", Sender: "x@y.com", UserID: 2, IsRead: true}}
	s.api.On("Login", mock.Anything, "grace@example.com", "password123").Return(grace, nil)
	s.api.On("ListEmails", mock.Anything).Return(theirs, nil).Once()
	s.out.Reset()

	s.app.Execute(s.ctx, "login")

	s.True(s.app.Celebrating())
	s.Equal(inbox.DefaultFilter(), s.app.Filter())
	s.Contains(s.out.String(), "Inbox Zero Achieved!")
	s.Len(s.app.Visible(), 1)
}

func (s *AppTestSuite) TestFilterAndSearchSummary() {
	emails := mailbox()
	emails[0].IsRead = true
	s.loggedInWith(emails)

	s.app.Execute(s.ctx, "filter unread")
	s.app.Execute(s.ctx, "search  Meeting ")

	s.Equal(inbox.Filter{View: inbox.ViewInbox, Status: inbox.StatusUnread, Query: "Meeting"}, s.app.Filter())
	s.Require().Len(s.app.Visible(), 1)
	s.Contains(s.out.String(), `Showing 2 unread emails • Search: "Meeting"`)

	s.app.Execute(s.ctx, "clear")
	s.Equal(inbox.DefaultFilter(), s.app.Filter())
	s.Len(s.app.Visible(), 3)
}

func (s *AppTestSuite) TestFilter_BadArgument() {
	s.loggedInWith(mailbox())

	s.app.Execute(s.ctx, "filter starred")

	s.Contains(s.out.String(), "unknown status")
	s.Equal(inbox.StatusAll, s.app.Filter().Status)
}

func (s *AppTestSuite) TestExpiredSession_SwitchesToLoggedOut() {
	s.loggedInWith(mailbox())
	s.api.On("ListEmails", mock.Anything).
		Run(func(mock.Arguments) { s.api.session = nil }).
		Return(nil, client.ErrUnauthenticated)

	s.app.Execute(s.ctx, "refresh")

	s.Contains(s.out.String(), "Your session has expired. Please log in.")
	s.False(s.app.loggedIn())
	s.Empty(s.app.emails)
}

func (s *AppTestSuite) TestProgressCommand() {
	s.loggedInWith(mailbox())
	s.api.On("Progress", mock.Anything).Return(&inbox.Progress{Progress: 50, TotalEmails: 4, ProcessedEmails: 2}, nil)

	s.app.Execute(s.ctx, "progress")

	s.Contains(s.out.String(), "50.0%")
	s.Contains(s.out.String(), "You're halfway to Inbox Zero!")
}

func (s *AppTestSuite) TestLogout() {
	s.loggedInWith(mailbox())
	s.api.On("Logout").Return(nil)

	s.app.Execute(s.ctx, "logout")

	s.Contains(s.out.String(), "Logged out.")
	s.False(s.app.loggedIn())
	s.Empty(s.app.emails)
}

func (s *AppTestSuite) TestRun_ExitsOnCommandAndEOF() {
	s.newApp("help\nexit\n")
	s.Require().NoError(s.app.Run(s.ctx))
	s.Contains(s.out.String(), "Commands: signup, login, help, exit")
	s.Contains(s.out.String(), "Bye!")

	s.out.Reset()
	s.newApp("help")
	s.Require().NoError(s.app.Run(s.ctx))
	s.NotContains(s.out.String(), "Bye!")
}

func (s *AppTestSuite) TestRun_RefreshesStoredSession() {
	s.api.session = ada
	s.api.On("ListEmails", mock.Anything).Return(mailbox(), nil).Once()
	s.newApp("exit\n")

	s.Require().NoError(s.app.Run(s.ctx))

	s.Contains(s.out.String(), "Inbox - Ada")
	s.Contains(s.out.String(), "inbox> ")
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"99999999999", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
