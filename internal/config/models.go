package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Tracker  TrackerConfig  `mapstructure:"tracker"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

func (c Config) Validate() error {
	if c.Tracker.Token == "" {
		return errors.New("tracker.token is required (TRACKER_TOKEN); " +
			"the API token is on your profile page: https://www.pivotaltracker.com/profile")
	}
	if c.Tracker.ProjectID == "" {
		return errors.New("tracker.project_id is required")
	}
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return errors.New("github.owner and github.repo are required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required")
	}
	if c.Sweep.Interval < 0 {
		return errors.New("sweep.interval must not be negative")
	}
	return nil
}

func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type TrackerConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	ProjectID string `mapstructure:"project_id"`
	Token     string `mapstructure:"token"`
}

type GitHubConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	Owner         string `mapstructure:"owner"`
	Repo          string `mapstructure:"repo"`
	Token         string `mapstructure:"token"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// HTTPConfig holds outbound call limits.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	StoryTimeout   time.Duration `mapstructure:"story_timeout"`
	// PassTimeout bounds a pass triggered over HTTP, independent of the caller.
	PassTimeout time.Duration `mapstructure:"pass_timeout"`
}

// SweepConfig controls the periodic poll pass; zero disables it.
type SweepConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// PostgresConfig enables the delivery journal when DSN is set.
type PostgresConfig struct {
	DSN          string        `mapstructure:"dsn"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	MaxConns     int32         `mapstructure:"max_conns"`
}

func (p PostgresConfig) Enabled() bool {
	return p.DSN != ""
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
