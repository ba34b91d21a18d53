package main

import (
	"context"
	"fmt"

	"trackersync/internal/config"
	"trackersync/internal/github"
	"trackersync/internal/logger"
	"trackersync/internal/service"
	"trackersync/internal/storage/pgx"
	"trackersync/internal/tracker"

	"go.uber.org/zap"
)

type rootOptions struct {
	logLevel string
}

// app holds the dependencies shared by every subcommand.
type app struct {
	cfg     *config.Config
	log     *zap.SugaredLogger
	service *service.Service
	storage *pgx.Storage
}

// newApp loads configuration and wires the clients. When withJournal is set
// and a DSN is configured, the delivery journal is opened, migrated and
// attached to the service.
func newApp(ctx context.Context, opts *rootOptions, withJournal bool) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	trackerClient := tracker.New(cfg.Tracker.BaseURL, cfg.Tracker.ProjectID, cfg.Tracker.Token, cfg.HTTP.RequestTimeout)
	githubClient := github.New(cfg.GitHub.BaseURL, cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Token, cfg.HTTP.RequestTimeout)

	svcOpts := []service.Option{service.WithStoryTimeout(cfg.HTTP.StoryTimeout)}

	if withJournal && cfg.Postgres.Enabled() {
		st, err := openJournal(ctx, cfg.Postgres)
		if err != nil {
			_ = log.Sync()
			return nil, err
		}
		a.storage = st
		svcOpts = append(svcOpts, service.WithRecorder(st))
		log.Infow("delivery journal enabled")
	}

	a.service = service.NewService(trackerClient, githubClient, log, svcOpts...)

	log.Debugw("configured",
		"project", trackerClient.ProjectID(),
		"repository", githubClient.Repository(),
		"sweep_interval", cfg.Sweep.Interval,
	)
	return a, nil
}

func openJournal(ctx context.Context, cfg config.PostgresConfig) (*pgx.Storage, error) {
	st, err := pgx.NewPgxStorage(ctx, cfg.DSN, cfg.MaxConns, pgx.WithQueryTimeout(cfg.QueryTimeout))
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if err := st.Ping(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func (a *app) Close() {
	if a.storage != nil {
		a.storage.Close()
	}
	_ = a.log.Sync()
}
