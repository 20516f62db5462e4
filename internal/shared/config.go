package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Credentials CredentialsConfig `toml:"credentials"`
	Upstream    UpstreamConfig    `toml:"upstream"`
	Database    DatabaseConfig    `toml:"database"`
	Log         LogConfig         `toml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string  `toml:"host"`
	Port           int     `toml:"port"`
	RateLimitRPS   float64 `toml:"rate_limit_rps"`
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CredentialsConfig locates YouTube Music credentials.
//
// YTMUSIC_OAUTH_B64 and YTMUSIC_OAUTH_JSON are not part of the configuration; they are read when
// credentials are resolved.
type CredentialsConfig struct {
	LocalFile    string `toml:"local_file"`
	TempDir      string `toml:"temp_dir"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// UpstreamConfig tunes calls made to YouTube Music.
type UpstreamConfig struct {
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Language          string  `toml:"language"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig selects logger level and output format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// EnvOverrides are environment variables layered over the TOML configuration.
//
// Unset variables leave the loaded value untouched.
type EnvOverrides struct {
	Host         string `envconfig:"HOST"`
	Port         int    `envconfig:"PORT"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
	LogFormat    string `envconfig:"LOG_FORMAT"`
	ClientID     string `envconfig:"YTMUSIC_CLIENT_ID"`
	ClientSecret string `envconfig:"YTMUSIC_CLIENT_SECRET"`
	DatabasePath string `envconfig:"DATABASE_PATH"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Load builds the runtime configuration.
//
// A .env file in the working directory is loaded into the process environment when present,
// the TOML file at path is read when it exists (defaults otherwise), and [EnvOverrides] are applied last.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrInvalidConfig, err)
	}

	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

// ApplyEnv overlays [EnvOverrides] onto c.
func (c *Config) ApplyEnv() error {
	var env EnvOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if env.Host != "" {
		c.Server.Host = env.Host
	}
	if env.Port != 0 {
		c.Server.Port = env.Port
	}
	if env.LogLevel != "" {
		c.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		c.Log.Format = env.LogFormat
	}
	if env.ClientID != "" {
		c.Credentials.ClientID = env.ClientID
	}
	if env.ClientSecret != "" {
		c.Credentials.ClientSecret = env.ClientSecret
	}
	if env.DatabasePath != "" {
		c.Database.Path = env.DatabasePath
	}
	return nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port %d", ErrInvalidConfig, c.Server.Port)
	case c.Server.RateLimitRPS < 0:
		return fmt.Errorf("%w: server.rate_limit_rps must not be negative", ErrInvalidConfig)
	case c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst <= 0:
		return fmt.Errorf("%w: server.rate_limit_burst must be positive when limiting", ErrInvalidConfig)
	case c.Upstream.TimeoutSeconds < 0:
		return fmt.Errorf("%w: upstream.timeout_seconds must not be negative", ErrInvalidConfig)
	case c.Upstream.RequestsPerSecond < 0:
		return fmt.Errorf("%w: upstream.requests_per_second must not be negative", ErrInvalidConfig)
	case c.Credentials.LocalFile == "":
		return fmt.Errorf("%w: credentials.local_file is required", ErrMissingConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
