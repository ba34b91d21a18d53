package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("TRACKER_TOKEN", "secret")
	t.Setenv("SWEEP_INTERVAL", "5m")
	t.Setenv("GITHUB_REPO", "demo")

	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Tracker.Token)
	assert.Equal(t, "1885757", cfg.Tracker.ProjectID)
	assert.Equal(t, "OpenMDAO", cfg.GitHub.Owner)
	assert.Equal(t, "demo", cfg.GitHub.Repo)
	assert.Equal(t, 5*time.Minute, cfg.Sweep.Interval)
	assert.Equal(t, 10*time.Minute, cfg.HTTP.PassTimeout)
	assert.Equal(t, "0.0.0.0:23997", cfg.ServerAddr())
	assert.False(t, cfg.Postgres.Enabled())
}

func TestLoad_LegacyTokenVariable(t *testing.T) {
	t.Setenv("TRACKER_TOKEN", "")
	t.Setenv("PIVOTAL_TOKEN", "legacy")

	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Tracker.Token)
}

func TestLoad_EnvFileDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRACKER_TOKEN=from-file\nPOSTGRES_DSN=postgres://x\n"), 0o600))

	t.Setenv("TRACKER_TOKEN", "from-env")
	t.Setenv("POSTGRES_DSN", "")
	require.NoError(t, os.Unsetenv("POSTGRES_DSN"))
	t.Cleanup(func() { _ = os.Unsetenv("POSTGRES_DSN") })

	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Tracker.Token)
	assert.Equal(t, "postgres://x", cfg.Postgres.DSN)
	assert.True(t, cfg.Postgres.Enabled())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:  ServerConfig{Port: 8080},
		Tracker: TrackerConfig{ProjectID: "1", Token: "t"},
		GitHub:  GitHubConfig{Owner: "o", Repo: "r"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing_token", mutate: func(c *Config) { c.Tracker.Token = "" }},
		{name: "missing_project", mutate: func(c *Config) { c.Tracker.ProjectID = "" }},
		{name: "missing_repo", mutate: func(c *Config) { c.GitHub.Repo = "" }},
		{name: "missing_port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "negative_interval", mutate: func(c *Config) { c.Sweep.Interval = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
