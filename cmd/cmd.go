// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func serverFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "Base URL of a running hrvxo-music server; calls YouTube Music directly when empty",
		Sources: cli.EnvVars("HRVXO_SERVER"),
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format (text, json, csv)",
		Value:   "text",
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "eager",
				Usage: "Resolve credentials at startup and log the outcome",
			},
		},
		Action: r.Serve,
	}
}

// searchCommand searches YouTube Music for songs
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search YouTube Music for songs",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags:  []cli.Flag{serverFlag(), formatFlag()},
		Action: r.Search,
	}
}

// createCommand creates a private playlist
func createCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a private YouTube Music playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "title",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Playlist description",
			},
			&cli.StringSliceFlag{
				Name:     "song",
				Usage:    "Video ID to add (repeatable)",
				Required: true,
			},
			serverFlag(),
			formatFlag(),
		},
		Action: r.Create,
	}
}

// authCommand inspects and obtains YouTube Music credentials
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "YouTube Music credentials",
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Resolve credentials and report their source",
				Action: r.AuthCheck,
			},
			{
				Name:  "login",
				Usage: "Obtain credentials with the OAuth device flow",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "client-id",
						Usage:   "OAuth client ID (overrides config)",
						Sources: cli.EnvVars("YTMUSIC_CLIENT_ID"),
					},
					&cli.StringFlag{
						Name:    "client-secret",
						Usage:   "OAuth client secret (overrides config)",
						Sources: cli.EnvVars("YTMUSIC_CLIENT_SECRET"),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Where to write the credentials file (defaults to credentials.local_file)",
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the verification URL without opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
		},
	}
}

// setupCommand handles initial setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and storage",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write config.toml from the bundled template",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the playlist history database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// historyCommand reads the playlist history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Playlists created through hrvxo-music",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List recorded playlists, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of playlists to list (0 for all)",
						Value:   20,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Only playlists whose title contains this text",
					},
					formatFlag(),
				},
				Action: r.HistoryList,
			},
		},
	}
}

// statusCommand checks a running server
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Check the health of a running server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Base URL of the server (defaults to the configured listen address)",
				Sources: cli.EnvVars("HRVXO_SERVER"),
			},
		},
		Action: r.Status,
	}
}
