// If you are AI: This file implements the serve subcommand.
// It handles configuration loading, server startup, and graceful shutdown.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"

	"scriptvar/internal/config"
	"scriptvar/internal/logging"
	"scriptvar/internal/server"
)

// serveCommand runs the HTTP server.
type serveCommand struct {
	configPath *string
}

// run loads configuration, starts the server and waits for a shutdown signal.
func (cmd *serveCommand) run(_ *kingpin.ParseContext) error {
	cfg := config.Default()
	if *cmd.configPath != "" {
		loaded, err := config.Load(*cmd.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	shutdownHandler := server.NewShutdownHandler(context.Background(), srv)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "server error", "err", err)
			errCh <- err
		}
	}()

	// Wait for shutdown signal or a failed start
	waitCh := make(chan error, 1)
	go func() { waitCh <- shutdownHandler.Wait() }()

	select {
	case err := <-errCh:
		return err
	case err := <-waitCh:
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	level.Info(logger).Log("msg", "server shut down cleanly")
	return nil
}

// addServeCommand registers the serve subcommand.
func addServeCommand(app *kingpin.Application) {
	cmd := &serveCommand{}
	serve := app.Command("serve", "Serve documents and the rendering API over HTTP.").Action(cmd.run)
	cmd.configPath = serve.Flag("config", "Path to configuration file.").Short('c').Envar("SCRIPTVAR_CONFIG").String()
}
