package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/hrvxo-music/internal/server"
	"github.com/desertthunder/hrvxo-music/internal/shared"
)

// Serve runs the HTTP API until the command context is canceled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	c := r.cfg()
	if host := cmd.String("host"); host != "" {
		c.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		c.Server.Port = port
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if cmd.Bool("eager") {
		r.warmCredentials(ctx)
	}

	backend, closeDB := r.localBackend()
	defer closeDB()

	handler := server.NewHandler(server.Options{
		Backend:        backend,
		Logger:         r.logger,
		RateLimitRPS:   c.Server.RateLimitRPS,
		RateLimitBurst: c.Server.RateLimitBurst,
	})

	srv := server.New(c.Server.Addr(), handler, r.clientOptions().Timeout)
	if err := server.Serve(ctx, srv, r.logger); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	return nil
}

// warmCredentials attempts resolution once and reports whether a client is now cached.
//
// Failure is only logged; requests keep retrying lazily.
func (r *Runner) warmCredentials(ctx context.Context) bool {
	resolver := r.credentials()
	if _, err := resolver.Resolve(ctx); err != nil {
		r.logger.Warn("credentials unavailable, search and playlist creation will fail until they resolve", "error", err)
	}

	ready := resolver.Resolved()
	r.logger.Info("credential status", "resolved", ready, "source", resolver.Source())
	return ready
}
