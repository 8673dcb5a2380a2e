package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/folio/internal"
	pkgconfig "github.com/starford/folio/pkg/config"
)

var version = "dev"

type runner func(ctx context.Context, opts ...internal.Option) error

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if root := cmd.String("content"); root != "" {
		cfg.Content.Root = root
	}
	return cfg, nil
}

func action(run runner, extra func(*cli.Command) []internal.Option) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithVersion(version),
		}
		if extra != nil {
			opts = append(opts, extra(cmd)...)
		}

		if err := run(ctx, opts...); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}
		return nil
	}
}

func main() {
	serve := &cli.Command{
		Name:   "serve",
		Usage:  "Serve the content tree and the read-only JSON API",
		Action: action(internal.RunServe, nil),
	}

	browse := &cli.Command{
		Name:  "browse",
		Usage: "Run the portfolio in the terminal; type 'help' for commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "route",
				Aliases: []string{"r"},
				Usage:   "Fragment to open first, e.g. #/gallery",
			},
		},
		Action: action(internal.RunBrowse, func(cmd *cli.Command) []internal.Option {
			return []internal.Option{internal.WithRoute(cmd.String("route"))}
		}),
	}

	mcp := &cli.Command{
		Name:   "mcp",
		Usage:  "Expose catalog tools over the Model Context Protocol (stdio)",
		Action: action(internal.RunMCP, nil),
	}

	cmd := &cli.Command{
		Name:     "folio",
		Usage:    "Portfolio content server, terminal browser and MCP tools",
		Version:  version,
		Commands: []*cli.Command{serve, browse, mcp},
		// Bare `folio` serves.
		Action: action(internal.RunServe, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "content",
				Usage:   "Override content.root from the config file",
				Sources: cli.EnvVars("FOLIO_CONTENT_ROOT"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
