package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"playr/internal/app"
	"playr/internal/config"
)

func main() {
	root := &cli.Command{
		Name:    "playr",
		Usage:   "Local audio playback with a persistent music library",
		Version: app.GetVersionInfo().Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Commands: []*cli.Command{
			addCommand(),
			tracksCommand(),
			removeCommand(),
			playlistCommand(),
			playCommand(),
			configCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "playr: %v\n", err)
		os.Exit(1)
	}
}

// buildApplication wires the full application from the config file named by
// the --config flag. A missing file falls back to defaults.
func buildApplication(cmd *cli.Command) (*app.Application, error) {
	path := cmd.String("config")

	cfg := app.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		fileCfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %q: %w", path, err)
		}
		cfg = app.FromFile(*fileCfg)
	}

	return app.NewApplication(cfg)
}
