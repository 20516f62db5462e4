package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/hrvxo-music/internal/credentials"
	"github.com/desertthunder/hrvxo-music/internal/formatter"
	"github.com/desertthunder/hrvxo-music/internal/repositories"
	"github.com/desertthunder/hrvxo-music/internal/services"
	"github.com/desertthunder/hrvxo-music/internal/shared"
	"github.com/desertthunder/hrvxo-music/internal/ytmusic"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	resolver   *credentials.Resolver
	backend    services.Backend
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	palette    *formatter.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Config, when set, is used as-is and the config file is not read.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Resolver   *credentials.Resolver
	Backend    services.Backend
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		resolver:   opts.Resolver,
		backend:    opts.Backend,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    formatter.DefaultPalette,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, searchCommand, createCommand, authCommand, setupCommand, historyCommand, statusCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Load reads configuration before any command runs and applies the log settings.
func (r *Runner) Load(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		path := r.configPath
		if path == "" {
			path = cmd.String("config")
		}

		config, err := shared.Load(path)
		if err != nil {
			return ctx, err
		}
		r.config, r.configPath = config, path
	}

	if err := shared.ConfigureLogger(r.logger, r.config.Log); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func (r *Runner) cfg() *shared.Config {
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}
	return r.config
}

// clientOptions derives YouTube Music client settings from configuration.
func (r *Runner) clientOptions() ytmusic.Options {
	c := r.cfg()
	return ytmusic.Options{
		ClientID:          c.Credentials.ClientID,
		ClientSecret:      c.Credentials.ClientSecret,
		Timeout:           time.Duration(c.Upstream.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.Upstream.RequestsPerSecond,
		Language:          c.Upstream.Language,
	}
}

func (r *Runner) credentials() *credentials.Resolver {
	if r.resolver == nil {
		c := r.cfg()
		r.resolver = credentials.NewResolver(c.Credentials, credentials.NewFactory(r.clientOptions()), r.logger)
	}
	return r.resolver
}

// provider adapts the resolver to [services.MusicProvider].
func (r *Runner) provider() services.MusicProvider {
	resolver := r.credentials()
	return func(ctx context.Context) (services.Music, error) {
		client, err := resolver.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// history opens the playlist history store. The returned close func is never nil.
func (r *Runner) history() (*repositories.PlaylistHistoryRepository, func(), error) {
	db, err := shared.OpenHistoryDatabase(r.cfg().Database)
	if err != nil {
		return nil, func() {}, err
	}
	return repositories.NewPlaylistHistoryRepository(db), func() { db.Close() }, nil
}

// localBackend builds a [services.Facade], recording playlists when history is configured.
func (r *Runner) localBackend() (services.Backend, func()) {
	if r.backend != nil {
		return r.backend, func() {}
	}

	repo, closeDB, err := r.history()
	if err != nil {
		if r.cfg().Database.Path != "" {
			r.logger.Warn("playlist history unavailable", "error", err)
		}
		return services.NewFacade(r.provider(), nil, r.logger), closeDB
	}
	return services.NewFacade(r.provider(), repo, r.logger), closeDB
}

// backendFor returns a remote backend when --server is set and a local one otherwise.
func (r *Runner) backendFor(cmd *cli.Command) (services.Backend, func()) {
	if addr := cmd.String("server"); addr != "" {
		return services.NewAPIService(addr, r.httpClient), func() {}
	}
	return r.localBackend()
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
