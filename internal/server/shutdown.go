// If you are AI: This file handles graceful shutdown orchestration for the server process.

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log/level"
)

// ShutdownHandler manages graceful shutdown on SIGINT or SIGTERM.
type ShutdownHandler struct {
	server  *Server
	ctx     context.Context
	cancel  context.CancelFunc
	signals chan os.Signal
}

// NewShutdownHandler creates a handler that listens for termination signals.
// The provided context is used as the parent for shutdown operations.
func NewShutdownHandler(ctx context.Context, server *Server) *ShutdownHandler {
	shutdownCtx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	return &ShutdownHandler{
		server:  server,
		ctx:     shutdownCtx,
		cancel:  cancel,
		signals: sigChan,
	}
}

// Wait blocks until a termination signal arrives or the parent context ends,
// then shuts the server down within its configured timeout.
// This method should be called from the main goroutine.
func (h *ShutdownHandler) Wait() error {
	defer signal.Stop(h.signals)

	select {
	case sig := <-h.signals:
		level.Info(h.server.logger).Log("msg", "received signal, shutting down", "signal", sig)
	case <-h.ctx.Done():
		level.Info(h.server.logger).Log("msg", "context done, shutting down")
	}

	// Cancel context to signal shutdown
	h.cancel()

	return h.server.ShutdownWithTimeout()
}

// Context returns the shutdown context that is cancelled when shutdown begins.
func (h *ShutdownHandler) Context() context.Context {
	return h.ctx
}
