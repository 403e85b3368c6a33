package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/welldanyogia/inboxzero/internal/client"
	"github.com/welldanyogia/inboxzero/internal/inbox"
	"github.com/welldanyogia/inboxzero/internal/models"
)

// Backend is the API surface the CLI drives. *client.Client satisfies it.
type Backend interface {
	Session() *client.Session
	LoggedIn() bool
	Signup(ctx context.Context, name, email, password string) (*client.Session, error)
	Login(ctx context.Context, email, password string) (*client.Session, error)
	Logout() error
	ListEmails(ctx context.Context) ([]models.Email, error)
	MarkRead(ctx context.Context, id uint) (*models.Email, error)
	Archive(ctx context.Context, id uint) (*models.Email, error)
	Progress(ctx context.Context) (*inbox.Progress, error)
}

// App holds the client-side state of one inboxctl run
type App struct {
	api      Backend
	in       *bufio.Reader
	out      io.Writer
	render   *Renderer
	logger   *slog.Logger
	password func() (string, error)

	emails      []models.Email
	filter      inbox.Filter
	celebration inbox.Celebration
}

// Config wires an App
type Config struct {
	API    Backend
	In     io.Reader
	Out    io.Writer
	Color  bool
	Logger *slog.Logger
}

// NewApp creates an App with the default inbox filter
func NewApp(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		api:    cfg.API,
		in:     bufio.NewReader(cfg.In),
		out:    cfg.Out,
		render: NewRenderer(cfg.Out, cfg.Color),
		logger: logger,
		filter: inbox.DefaultFilter(),
	}
	a.password = func() (string, error) { return promptPassword(a.in, cfg.In, a.out) }
	return a
}

func (a *App) loggedIn() bool {
	return a.api.LoggedIn()
}

// Visible returns the emails shown under the active filter
func (a *App) Visible() []models.Email {
	return a.filter.Apply(a.emails)
}

// Filter returns the active filter
func (a *App) Filter() inbox.Filter {
	return a.filter
}

// Signup prompts for name, email and password and creates an account.
// Local state from any previous account is dropped.
func (a *App) Signup(ctx context.Context) error {
	name, err := prompt(a.in, a.out, "Name")
	if err != nil {
		return err
	}
	email, err := prompt(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}

	session, err := a.api.Signup(ctx, name, email, password)
	if err != nil {
		a.fail("Signup failed", err)
		return err
	}
	a.reset()
	a.render.Info(fmt.Sprintf("Welcome, %s!", session.User.Name))
	return a.Refresh(ctx)
}

// Login prompts for credentials and signs in
func (a *App) Login(ctx context.Context) error {
	email, err := prompt(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}

	session, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.fail("Login failed", err)
		return err
	}
	a.reset()
	a.render.Info(fmt.Sprintf("Logged in as %s.", session.User.Email))
	return a.Refresh(ctx)
}

// Logout clears the session and the local mailbox copy
func (a *App) Logout() error {
	if err := a.api.Logout(); err != nil {
		a.fail("Logout failed", err)
		return err
	}
	a.reset()
	a.render.Info("Logged out.")
	return nil
}

func (a *App) reset() {
	a.emails = nil
	a.filter = inbox.DefaultFilter()
	a.celebration = inbox.Celebration{}
}

// Refresh reloads the mailbox from the server
func (a *App) Refresh(ctx context.Context) error {
	emails, err := a.api.ListEmails(ctx)
	if err != nil {
		a.fail("Failed to load emails. Please try again.", err)
		return err
	}
	a.emails = emails
	a.observe()
	a.Show()
	return nil
}

// ShowProgress fetches progress from the server and prints it
func (a *App) ShowProgress(ctx context.Context) error {
	p, err := a.api.Progress(ctx)
	if err != nil {
		a.fail("Failed to load progress.", err)
		return err
	}
	a.render.Progress(*p)
	return nil
}

// MarkRead marks id as read on the server, then updates the local copy
func (a *App) MarkRead(ctx context.Context, id uint) error {
	return a.update(ctx, id, a.api.MarkRead, "Failed to mark email as read.")
}

// Archive archives id on the server, then updates the local copy
func (a *App) Archive(ctx context.Context, id uint) error {
	return a.update(ctx, id, a.api.Archive, "Failed to archive email.")
}

func (a *App) update(ctx context.Context, id uint, call func(context.Context, uint) (*models.Email, error), failure string) error {
	updated, err := call(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			msg := fmt.Sprintf("Email #%d not found.", id)
			a.render.Banner(msg)
			a.logger.Warn(msg)
			return err
		}
		a.fail(failure, err)
		return err
	}
	a.emails = inbox.Replace(a.emails, *updated)
	a.observe()
	a.Show()
	return nil
}

// SetView switches between the inbox and the archive
func (a *App) SetView(v inbox.View) {
	a.filter.View = v
	a.Show()
}

// SetStatus applies a read-state filter
func (a *App) SetStatus(s inbox.Status) {
	a.filter.Status = s
	a.Show()
}

// Search applies a text query
func (a *App) Search(q string) {
	a.filter.Query = strings.TrimSpace(q)
	a.Show()
}

// ClearFilter resets status and search while keeping the view
func (a *App) ClearFilter() {
	a.filter.Status = inbox.StatusAll
	a.filter.Query = ""
	a.Show()
}

// Dismiss hides the celebration panel
func (a *App) Dismiss() {
	a.celebration.Dismiss()
	a.Show()
}

// Celebrating reports whether the celebration panel is showing
func (a *App) Celebrating() bool {
	return a.celebration.Celebrating()
}

func (a *App) observe() {
	a.celebration.Observe(inbox.ComputeProgress(a.emails))
}

// Show renders the current view
func (a *App) Show() {
	var user *models.PublicUser
	if s := a.api.Session(); s != nil {
		user = &s.User
	}

	a.render.Header(user, a.filter.View, a.emails)
	a.render.Progress(inbox.ComputeProgress(a.emails))
	if a.celebration.Celebrating() {
		a.render.Celebration()
	}

	inView := inbox.Filter{View: a.filter.View, Status: inbox.StatusAll}.Apply(a.emails)
	a.render.FilterSummary(a.filter, inbox.CountStatuses(inView))
	a.render.Emails(a.Visible(), a.filter.View)
}

// fail reports err as a banner. An expired session switches to the logged-out state.
func (a *App) fail(message string, err error) {
	if errors.Is(err, client.ErrUnauthenticated) {
		a.reset()
		a.render.Banner("Your session has expired. Please log in.")
		a.logger.Warn("session expired")
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status < 500 {
		message = apiErr.Message
	}
	a.render.Banner(message)
	a.logger.Error(message, slog.Any("error", err))
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid email id %q", arg)
	}
	return uint(id), nil
}
