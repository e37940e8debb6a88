package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/llamaquill/quill/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog form as a web page and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address (default :8080)")
	flags.String("rate-limit", "", "per-client limit on submissions, e.g. 30-M")
	flags.String("cors-origins", "", "comma separated allowed origins for the JSON API")
	flags.Duration("shutdown-timeout", 0, "grace period for in-flight requests on shutdown")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	closeLog, err := a.configureLogging(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := NewServer(a.cfg)
	if err != nil {
		return err
	}

	// no write timeout: a generation takes as long as the server needs
	httpServer := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           srv.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)

	// start server in goroutine
	go func() {
		logger.Info("server listening",
			"addr", a.cfg.Addr,
			"provider", a.cfg.Provider,
			"endpoint", a.cfg.Endpoint,
			"version", version,
		)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")

	return nil
}
