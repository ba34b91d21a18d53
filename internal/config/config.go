// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

// NewConfig reads configuration from the environment (and an optional .env
// file that never overrides variables already set), applies defaults and
// validates the result.
func NewConfig() (*Config, error) {
	return load(envFile)
}

func load(path string) (*Config, error) {
	if envMap, err := godotenv.Read(path); err == nil {
		for k, v := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, v)
			}
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 23997)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("tracker.base_url", "https://www.pivotaltracker.com/services/v5")
	v.SetDefault("tracker.project_id", "1885757")

	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.owner", "OpenMDAO")
	v.SetDefault("github.repo", "OpenMDAO")

	v.SetDefault("http.request_timeout", 15*time.Second)
	v.SetDefault("http.story_timeout", 60*time.Second)
	v.SetDefault("http.pass_timeout", 10*time.Minute)

	v.SetDefault("sweep.interval", time.Duration(0))

	v.SetDefault("postgres.query_timeout", 5*time.Second)
	v.SetDefault("postgres.max_conns", 4)
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"server.host",
		"server.port",
		"server.shutdown_timeout",
		"tracker.base_url",
		"tracker.project_id",
		"github.base_url",
		"github.owner",
		"github.repo",
		"github.token",
		"github.webhook_secret",
		"http.request_timeout",
		"http.story_timeout",
		"http.pass_timeout",
		"sweep.interval",
		"postgres.dsn",
		"postgres.query_timeout",
		"postgres.max_conns",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	// PIVOTAL_TOKEN is the legacy name
	_ = v.BindEnv("tracker.token", "TRACKER_TOKEN", "PIVOTAL_TOKEN")
}
