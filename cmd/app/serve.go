package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"trackersync/internal/scheduler"
	transport "trackersync/internal/transport/http"

	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Listen for GitHub webhooks and run the periodic sweep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := newApp(ctx, opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			return serve(ctx, cancel, a)
		},
	}
}

func serve(ctx context.Context, cancel context.CancelFunc, a *app) error {
	var journal transport.JournalReader
	if a.storage != nil {
		journal = a.storage
	}

	router := transport.NewHandler(a.log, a.service, journal, a.cfg.GitHub.WebhookSecret,
		transport.WithPassTimeout(a.cfg.HTTP.PassTimeout))

	srv := &http.Server{
		Addr:              a.cfg.ServerAddr(),
		Handler:           router.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// a webhook answers only after its push pass has finished; the pass
		// itself keeps running if the sender hangs up first
		WriteTimeout: a.cfg.HTTP.PassTimeout,
		IdleTimeout:  60 * time.Second,
	}

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		scheduler.New(a.service, a.cfg.Sweep.Interval, a.log).Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		a.log.Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Infow("signal received, shutting down")
	case err := <-serveErr:
		runErr = fmt.Errorf("listen: %w", err)
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Errorw("HTTP server shutdown", "error", err)
	} else {
		a.log.Infow("HTTP server gracefully stopped")
	}

	select {
	case <-sweepDone:
	case <-shutdownCtx.Done():
		a.log.Warnw("sweep still running at shutdown deadline")
	}

	return runErr
}
