package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/welldanyogia/inboxzero/internal/cli"
	"github.com/welldanyogia/inboxzero/internal/client"
	"github.com/welldanyogia/inboxzero/internal/config"
	"github.com/welldanyogia/inboxzero/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "inboxctl:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	server := flag.String("server", cfg.ServerURL, "Inbox Zero API base URL")
	session := flag.String("session", cfg.SessionPath, "session file path; empty keeps the session in memory only")
	logLevel := flag.String("log-level", "info", "log level for the client log file")
	noColor := flag.Bool("no-color", false, "disable coloured output")
	timeout := flag.Duration("timeout", client.DefaultTimeout, "per-request timeout")
	flag.Parse()

	var sessions client.SessionStore
	logDir := filepath.Dir(*session)
	if *session == "" {
		sessions = client.NewMemorySessionStore()
		logDir = filepath.Dir(cfg.SessionPath)
	} else {
		sessions = client.NewFileSessionStore(*session)
	}

	logFile, err := openLog(filepath.Join(logDir, "inboxctl.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logger.New(logFile, *logLevel, "text")

	api, err := client.New(*server, sessions,
		client.WithLogger(log),
		client.WithHTTPClient(&http.Client{Timeout: *timeout}),
	)
	if err != nil {
		return err
	}

	app := cli.NewApp(cli.Config{
		API:    api,
		In:     os.Stdin,
		Out:    os.Stdout,
		Color:  !*noColor && isatty.IsTerminal(os.Stdout.Fd()),
		Logger: log,
	})

	log.Info("inboxctl started", slog.String("server", *server))
	return app.Run(context.Background())
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
