package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/welldanyogia/inboxzero/internal/inbox"
)

// Run reads commands until exit or end of input
func (a *App) Run(ctx context.Context) error {
	if a.loggedIn() {
		_ = a.Refresh(ctx)
	} else {
		a.render.Info("Welcome to Inbox Zero. Type 'login' or 'signup' to begin.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprintf(a.out, "%s> ", a.promptLabel())
		line, err := readLine(a.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if quit := a.Execute(ctx, line); quit {
			a.render.Info("Bye!")
			return nil
		}
	}
}

func (a *App) promptLabel() string {
	if !a.loggedIn() {
		return "inboxzero"
	}
	label := string(a.filter.View)
	if a.filter.Status != inbox.StatusAll {
		label += ":" + string(a.filter.Status)
	}
	return label
}

// Execute runs one command line and reports whether the user asked to quit.
// Command errors are shown by the handlers themselves.
func (a *App) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "exit", "quit":
		return true
	case "help", "?":
		a.render.Help(a.loggedIn())
		return false
	case "signup":
		_ = a.Signup(ctx)
		return false
	case "login":
		_ = a.Login(ctx)
		return false
	}

	if !a.loggedIn() {
		if isKnownCommand(cmd) {
			a.render.Banner("Please log in first.")
		} else {
			a.render.Banner(fmt.Sprintf("Unknown command: %s", cmd))
		}
		return false
	}

	switch cmd {
	case "logout":
		_ = a.Logout()
	case "inbox":
		a.SetView(inbox.ViewInbox)
	case "archived":
		a.SetView(inbox.ViewArchived)
	case "filter":
		a.filterCommand(args)
	case "search":
		a.Search(strings.Join(args, " "))
	case "clear":
		a.ClearFilter()
	case "read":
		a.withID(args, func(id uint) { _ = a.MarkRead(ctx, id) })
	case "archive":
		a.withID(args, func(id uint) { _ = a.Archive(ctx, id) })
	case "refresh", "r":
		_ = a.Refresh(ctx)
	case "progress":
		_ = a.ShowProgress(ctx)
	case "dismiss":
		a.Dismiss()
	default:
		a.render.Banner(fmt.Sprintf("Unknown command: %s", cmd))
	}
	return false
}

func (a *App) filterCommand(args []string) {
	if len(args) != 1 {
		a.render.Banner("usage: filter all|unread|read")
		return
	}
	status, err := inbox.ParseStatus(args[0])
	if err != nil {
		a.render.Banner(err.Error())
		return
	}
	a.SetStatus(status)
}

func (a *App) withID(args []string, fn func(uint)) {
	if len(args) != 1 {
		a.render.Banner("usage: read <id> | archive <id>")
		return
	}
	id, err := parseID(args[0])
	if err != nil {
		a.render.Banner(err.Error())
		return
	}
	fn(id)
}

func isKnownCommand(cmd string) bool {
	switch cmd {
	case "logout", "inbox", "archived", "filter", "search", "clear",
		"read", "archive", "refresh", "r", "progress", "dismiss":
		return true
	}
	return false
}
