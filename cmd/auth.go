package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/desertthunder/hrvxo-music/internal/shared"
	"github.com/desertthunder/hrvxo-music/internal/ytmusic"
)

// AuthCheck resolves credentials the same way the server does and reports where they came from.
func (r *Runner) AuthCheck(ctx context.Context, cmd *cli.Command) error {
	resolver := r.credentials()

	client, err := resolver.Resolve(ctx)
	if err != nil {
		r.writePlain("%s\n", r.palette.Err("✗ No usable credentials"))
		return err
	}

	r.writePlain("%s\n", r.palette.OK("✓ Credentials resolved"))
	r.writePlain("Source: %s\n", resolver.Source())
	return r.writePlain("File: %s\n", client.AuthFile())
}

// AuthLogin runs the OAuth device flow and writes a credentials file the resolver can use.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	c := r.cfg()

	clientID := cmd.String("client-id")
	if clientID == "" {
		clientID = c.Credentials.ClientID
	}
	clientSecret := cmd.String("client-secret")
	if clientSecret == "" {
		clientSecret = c.Credentials.ClientSecret
	}
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("%w: set --client-id and --client-secret or credentials.client_id/client_secret", shared.ErrMissingConfig)
	}

	output := cmd.String("output")
	if output == "" {
		output = c.Credentials.LocalFile
	}
	openBrowser := !cmd.Bool("no-browser")

	prompt := func(auth *oauth2.DeviceAuthResponse) error {
		url := auth.VerificationURI
		if auth.VerificationURIComplete != "" {
			url = auth.VerificationURIComplete
		}

		r.writePlain("%s\n\n", r.palette.Title("YouTube Music sign-in"))
		r.writePlain("Visit:  %s\n", url)
		r.writePlain("Code:   %s\n\n", r.palette.OK(auth.UserCode))
		r.writePlain("%s\n", r.palette.Help("Waiting for authorization..."))

		if openBrowser {
			if err := shared.OpenBrowser(url); err != nil {
				r.logger.Warn("failed to open browser", "error", err)
			}
		}
		return nil
	}

	token, err := ytmusic.DeviceLogin(ctx, ytmusic.OAuthConfig(clientID, clientSecret), prompt)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}

	if err := token.Save(output); err != nil {
		return err
	}

	r.logger.Info("credentials saved", "path", output)
	return r.writePlain("%s\nSaved to %s\n", r.palette.OK("✓ Authentication successful"), output)
}
