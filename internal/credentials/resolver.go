package credentials

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"

	"github.com/desertthunder/hrvxo-music/internal/shared"
	"github.com/desertthunder/hrvxo-music/internal/ytmusic"
)

const (
	EnvB64  = "YTMUSIC_OAUTH_B64"
	EnvJSON = "YTMUSIC_OAUTH_JSON"

	DefaultLocalFile = "oauth.json"
	encodedFileName  = "ytmusic_oauth.json"
)

// SourceKind identifies where credentials came from.
type SourceKind string

const (
	SourceNone    SourceKind = ""
	SourceEncoded SourceKind = "encoded"
	SourceRaw     SourceKind = "raw"
	SourceFile    SourceKind = "file"
)

// Factory builds a client from a credentials file path.
type Factory func(path string) (*ytmusic.Client, error)

// NewFactory returns a [Factory] constructing clients with opts.
func NewFactory(opts ytmusic.Options) Factory {
	return func(path string) (*ytmusic.Client, error) {
		return ytmusic.NewClient(path, opts)
	}
}

type envSources struct {
	Encoded string `envconfig:"YTMUSIC_OAUTH_B64"`
	Raw     string `envconfig:"YTMUSIC_OAUTH_JSON"`
}

// Resolver lazily resolves credentials and holds the resulting client.
//
// It is safe for concurrent use. The first successful resolution is kept for the life of the
// Resolver; failed attempts leave it empty so later calls retry.
type Resolver struct {
	localFile string
	tempDir   string
	factory   Factory
	logger    *log.Logger

	mu     sync.Mutex
	client *ytmusic.Client
	source SourceKind
}

// NewResolver creates a [Resolver]. Empty config fields select the defaults: oauth.json in the
// working directory and [os.TempDir].
func NewResolver(c shared.CredentialsConfig, factory Factory, logger *log.Logger) *Resolver {
	if c.LocalFile == "" {
		c.LocalFile = DefaultLocalFile
	}
	if factory == nil {
		factory = NewFactory(ytmusic.Options{ClientID: c.ClientID, ClientSecret: c.ClientSecret})
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Resolver{localFile: c.LocalFile, tempDir: c.TempDir, factory: factory, logger: logger}
}

// Resolve returns the cached client, building it from the highest priority source on first use.
func (r *Resolver) Resolve(ctx context.Context) (*ytmusic.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	client, source, err := r.resolve()
	if err != nil {
		r.logger.Warn("credential resolution failed", "error", err)
		return nil, err
	}

	r.client, r.source = client, source
	r.logger.Info("youtube music client ready", "source", source, "file", client.AuthFile())
	return client, nil
}

// Resolved reports whether a client has been cached.
func (r *Resolver) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.client != nil
}

// Source reports which source produced the cached client, or [SourceNone].
func (r *Resolver) Source() SourceKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}

func (r *Resolver) resolve() (*ytmusic.Client, SourceKind, error) {
	var env envSources
	if err := envconfig.Process("", &env); err != nil {
		return nil, SourceNone, missing("reading environment: %v", err)
	}

	switch {
	case env.Encoded != "":
		client, err := r.fromEncoded(env.Encoded)
		return client, SourceEncoded, err
	case env.Raw != "":
		client, err := r.fromRaw(env.Raw)
		return client, SourceRaw, err
	}

	if _, err := os.Stat(r.localFile); err == nil {
		client, err := r.build(r.localFile)
		return client, SourceFile, err
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, SourceFile, newError(ReasonClientInit, shared.ErrInvalidCredentials, "%v", err)
	}

	return nil, SourceNone, missing("set %s or %s, or provide %s", EnvB64, EnvJSON, r.localFile)
}

func (r *Resolver) fromEncoded(value string) (*ytmusic.Client, error) {
	data, err := decodeBase64(value)
	if err != nil {
		return nil, newError(ReasonDecodeFailed, shared.ErrInvalidCredentials, "%s: %v", EnvB64, err)
	}
	if !utf8.Valid(data) {
		return nil, newError(ReasonDecodeFailed, shared.ErrInvalidCredentials, "%s: decoded value is not UTF-8 text", EnvB64)
	}
	if !json.Valid(data) {
		return nil, newError(ReasonInvalidJSON, shared.ErrInvalidCredentials, "%s: decoded value is not valid JSON", EnvB64)
	}

	path := filepath.Join(r.dir(), encodedFileName)
	if err := writeAtomic(path, data); err != nil {
		return nil, newError(ReasonTempFile, shared.ErrServiceUnavailable, "%v", err)
	}
	return r.build(path)
}

func (r *Resolver) fromRaw(value string) (*ytmusic.Client, error) {
	data := []byte(value)
	if !json.Valid(data) {
		return nil, newError(ReasonInvalidJSON, shared.ErrInvalidCredentials, "%s is not valid JSON", EnvJSON)
	}

	path := filepath.Join(r.dir(), "ytmusic_oauth_"+shared.GenerateID()+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, newError(ReasonTempFile, shared.ErrServiceUnavailable, "%v", err)
	}
	return r.build(path)
}

func (r *Resolver) build(path string) (*ytmusic.Client, error) {
	client, err := r.factory(path)
	if err != nil {
		return nil, newError(ReasonClientInit, shared.ErrInvalidCredentials, "%v", err)
	}
	return client, nil
}

func (r *Resolver) dir() string {
	if r.tempDir != "" {
		return r.tempDir
	}
	return os.TempDir()
}

// decodeBase64 accepts padded or unpadded standard base64 and ignores embedded whitespace.
func decodeBase64(value string) ([]byte, error) {
	value = strings.Join(strings.Fields(value), "")
	data, err := base64.StdEncoding.DecodeString(value)
	if err == nil {
		return data, nil
	}
	if data, rawErr := base64.RawStdEncoding.DecodeString(value); rawErr == nil {
		return data, nil
	}
	return nil, err
}

// writeAtomic replaces path with data via a rename so readers never see a partial file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ytmusic_oauth-*")
	if err != nil {
		return fmt.Errorf("failed to create temp credentials file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp credentials file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp credentials file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace credentials file: %w", err)
	}
	return nil
}
