package main

import (
	"context"
	"net"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/hrvxo-music/internal/services"
)

// Status calls /health on a running server.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("server")
	if addr == "" {
		c := r.cfg()
		host := c.Server.Host
		if host == "" || host == "0.0.0.0" || host == "::" {
			host = "localhost"
		}
		addr = "http://" + net.JoinHostPort(host, strconv.Itoa(c.Server.Port))
	}

	api := services.NewAPIService(addr, r.httpClient)
	status, err := api.Health(ctx)
	if err != nil {
		r.writePlain("%s %s\n", r.palette.Err("✗ Unreachable:"), api.BaseURL())
		return err
	}

	r.writePlain("%s %s\n", r.palette.OK("✓ Service is healthy:"), api.BaseURL())
	return r.writePlain("Status: %s\n", status)
}
