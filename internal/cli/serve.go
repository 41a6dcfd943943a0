package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"portfolio/internal/handler"
	"portfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Select the storage backend, seed it if empty, then serve the API.

The listen address defaults to :$PORT (5000 when unset). SIGINT or SIGTERM
stops accepting requests, drains in-flight ones, and closes the store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, addr, cmd)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default :$PORT)")

	return cmd
}

func runServe(opts *RootOptions, addr string, cmd *cobra.Command) error {
	a, err := bootstrap(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	// The router is only armed after seeding completes.
	if _, err := a.seedStore(cmd); err != nil {
		return err
	}

	events := service.NewEventBus()
	notifications := make(chan service.Event, 64)
	events.Subscribe(notifications)
	notified := make(chan struct{})
	go func() {
		defer close(notified)
		for ev := range notifications {
			a.logger.Info("event", "type", ev.Type, "payload", ev.Payload)
		}
	}()

	svc := service.NewPortfolioService(a.store, events)

	gin.SetMode(a.cfg.Server.Mode)
	router := handler.NewRouter(svc, handler.Options{
		Logger:         a.logger,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
	})

	if addr == "" {
		addr = net.JoinHostPort("", a.cfg.Server.Port)
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr, "backend", a.store.Kind())
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return &ExitError{Code: ExitFailure, Message: "server error", Err: err}
		}
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", "error", err)
	}
	events.Unsubscribe(notifications)
	close(notifications)
	<-notified
	a.logger.Info("server stopped")
	return nil
}
