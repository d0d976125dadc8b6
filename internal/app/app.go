// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/image-foundry/imgscrape/internal/browser"
	"github.com/image-foundry/imgscrape/internal/config"
	"github.com/image-foundry/imgscrape/internal/downloader"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config     *config.Config
	Logger     *zerolog.Logger
	HTTPClient *http.Client
	Downloader *downloader.Downloader

	sessionMu sync.Mutex
	session   *browser.Session
	startTime time.Time
}

// New creates and initializes a new Application.
//
// The browser session is not started here; it is built lazily the first
// time Session is called so commands that never touch a browser (help,
// version) stay cheap.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	logger := zerolog.New(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	logger.Debug().Dur("timeout", cfg.HTTPTimeout).Msg("HTTP client initialized")

	// Downloader shares the application's HTTP client and transport
	dl := downloader.NewDownloader(httpClient, cfg.UserAgent)

	app := &Application{
		Config:     cfg,
		Logger:     &logger,
		HTTPClient: httpClient,
		Downloader: dl,
		startTime:  time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return app, nil
}

// Session returns the browser session, creating it on first use.
func (a *Application) Session() (*browser.Session, error) {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	if a.session != nil {
		return a.session, nil
	}

	kind, err := browser.ParseKind(a.Config.Browser)
	if err != nil {
		return nil, err
	}

	sess, err := browser.NewSession(browser.Options{
		Kind:      kind,
		ExecPath:  a.Config.BrowserPath,
		Headless:  a.Config.Headless,
		UserAgent: a.Config.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	a.session = sess
	return sess, nil
}

// CloseSession shuts down the browser session if one was created. The next
// Session call builds a fresh one. Used to release the browser before the
// download phase, which has no use for it.
func (a *Application) CloseSession() error {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	if a.session == nil {
		return nil
	}
	err := a.session.Close()
	a.session = nil
	return err
}

// Close gracefully shuts down the application and all its resources.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Msg("Shutting down application")

	if err := a.CloseSession(); err != nil {
		a.Logger.Warn().Err(err).Msg("Error closing browser session")
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
