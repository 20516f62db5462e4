package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Server.Host != "0.0.0.0" {
			t.Errorf("expected server host 0.0.0.0, got %s", config.Server.Host)
		}

		if config.Credentials.LocalFile != "oauth.json" {
			t.Errorf("expected local credentials file oauth.json, got %s", config.Credentials.LocalFile)
		}

		if config.Database.Path != "" {
			t.Errorf("expected history to be disabled by default, got path %s", config.Database.Path)
		}

		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Server.Port != DefaultConfig().Server.Port {
			t.Errorf("created config port doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
host = "127.0.0.1"
port = 9090

[credentials]
local_file = "/etc/ytmusic/oauth.json"

[database]
path = "/var/lib/hrvxo/history.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Addr() != "127.0.0.1:9090" {
			t.Errorf("expected addr 127.0.0.1:9090, got %s", config.Server.Addr())
		}

		if config.Credentials.LocalFile != "/etc/ytmusic/oauth.json" {
			t.Errorf("expected custom local file, got %s", config.Credentials.LocalFile)
		}

		if config.Upstream.RequestsPerSecond != 5 {
			t.Errorf("expected unset values to keep defaults, got rps %v", config.Upstream.RequestsPerSecond)
		}
	})

	t.Run("LoadConfig with malformed TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("PORT", "3001")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("YTMUSIC_CLIENT_ID", "client-123")
		t.Setenv("DATABASE_PATH", "/tmp/history.db")

		config := DefaultConfig()
		if err := config.ApplyEnv(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.Server.Port != 3001 {
			t.Errorf("expected port 3001, got %d", config.Server.Port)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}
		if config.Credentials.ClientID != "client-123" {
			t.Errorf("expected client id override, got %s", config.Credentials.ClientID)
		}
		if config.Database.Path != "/tmp/history.db" {
			t.Errorf("expected database path override, got %s", config.Database.Path)
		}
		if config.Server.Host != "0.0.0.0" {
			t.Errorf("expected unset HOST to keep default, got %s", config.Server.Host)
		}
	})

	t.Run("ApplyEnv with invalid port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")

		err := DefaultConfig().ApplyEnv()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("Load without config file", func(t *testing.T) {
		config, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected defaults, got port %d", config.Server.Port)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
			want   error
		}{
			{name: "defaults are valid", mutate: func(*Config) {}},
			{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, want: ErrInvalidConfig},
			{name: "negative rate limit", mutate: func(c *Config) { c.Server.RateLimitRPS = -1 }, want: ErrInvalidConfig},
			{name: "limit without burst", mutate: func(c *Config) { c.Server.RateLimitRPS = 2; c.Server.RateLimitBurst = 0 }, want: ErrInvalidConfig},
			{name: "negative timeout", mutate: func(c *Config) { c.Upstream.TimeoutSeconds = -5 }, want: ErrInvalidConfig},
			{name: "missing local file", mutate: func(c *Config) { c.Credentials.LocalFile = "" }, want: ErrMissingConfig},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				err := config.Validate()
				if tt.want == nil && err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				if tt.want != nil && !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})
}
