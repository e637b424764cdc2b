// Package cli implements the interactive SalesPoint client: a small REPL
// that drives the session controller against a running backend.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/salespoint/salespoint/internal/client/api"
	"github.com/salespoint/salespoint/internal/client/config"
	"github.com/salespoint/salespoint/internal/client/repositories/profile"
	"github.com/salespoint/salespoint/internal/client/session"
	"github.com/salespoint/salespoint/internal/client/storage"
	"github.com/salespoint/salespoint/internal/logging"
)

type App struct {
	config     *config.Config
	apiClient  *api.Client
	controller *session.Controller
	reader     *bufio.Reader
	out        io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := api.New(cfg.ServerBaseURL, cfg.RequestTimeout, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:    cfg,
		apiClient: apiClient,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	app.controller = session.NewController(
		apiClient,
		profile.NewSQLiteRepository(db),
		func() { fmt.Fprintln(app.out, "Session expired, please log in again.") },
		logger,
	)

	return app, nil
}

// Run restores a previous session from the refresh cookie, if the jar has
// one, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	_ = a.controller.RestoreSession(ctx)
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.controller.IsAuthenticated()
}

func (a *App) status() string {
	if user := a.controller.User(); user != nil {
		return user.UserName
	}
	return "anonymous"
}
