// Package cli wires the command tree: interactive browse/starred
// sessions and the non-interactive list command.
package cli

import (
	"context"

	"github.com/urfave/cli/v2"

	"repodeck/internal/config"
	"repodeck/internal/github"
	"repodeck/internal/logging"
)

type CLI struct {
	cfg *config.Config
}

func New() *CLI {
	return &CLI{}
}

func (x *CLI) Run(argv []string) error {
	var (
		configPath string
		logLevel   string
		logFormat  string
		logOutput  string
		token      string
		baseURL    string
	)

	app := &cli.App{
		Name:  "repodeck",
		Usage: "Browse GitHub repositories from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Path to config file (TOML)",
				EnvVars:     []string{"REPODECK_CONFIG"},
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [debug|info|warn|error]",
				Aliases:     []string{"l"},
				EnvVars:     []string{"REPODECK_LOG_LEVEL"},
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json]",
				EnvVars:     []string{"REPODECK_LOG_FORMAT"},
				Destination: &logFormat,
			},
			&cli.StringFlag{
				Name:        "log-output",
				Usage:       "Log output [discard|stderr|<file>], defaults to a cache file",
				EnvVars:     []string{"REPODECK_LOG_OUTPUT"},
				Destination: &logOutput,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "GitHub token (falls back to GITHUB_TOKEN, GH_TOKEN, then `gh auth token`)",
				Destination: &token,
			},
			&cli.StringFlag{
				Name:        "base-url",
				Usage:       "GitHub API base URL (for GitHub Enterprise)",
				EnvVars:     []string{"REPODECK_BASE_URL"},
				Destination: &baseURL,
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if token != "" {
				cfg.Token = token
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if logFormat != "" {
				cfg.Log.Format = logFormat
			}
			if logOutput != "" {
				cfg.Log.Output = logOutput
			}
			x.cfg = cfg
			return logging.Configure(cfg.Log.Format, cfg.Log.Level, cfg.Log.Output)
		},
		Commands: []*cli.Command{
			x.browseCommand(),
			x.starredCommand(),
			x.listCommand(),
		},
	}

	if err := app.Run(argv); err != nil {
		logging.Default().Error("fatal error", "error", err)
		return err
	}
	return nil
}

func (x *CLI) newClient(ctx context.Context) (*github.Client, error) {
	var opts []github.Option
	if x.cfg.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(x.cfg.BaseURL))
	}
	return github.New(ctx, x.cfg.Token, opts...)
}
