package cli

import (
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"repodeck/internal/format"
	"repodeck/internal/model"
)

func (x *CLI) listCommand() *cli.Command {
	var (
		user        string
		language    string
		outFormat   string
		starredOnly bool
	)
	return &cli.Command{
		Name:  "list",
		Usage: "List repositories without the UI",
		Flags: []cli.Flag{
			userFlag(&user),
			&cli.BoolFlag{
				Name:        "starred",
				Usage:       "List starred repositories instead of owned ones",
				Destination: &starredOnly,
			},
			&cli.StringFlag{
				Name:        "language",
				Usage:       "Only show repositories with this primary language",
				Destination: &language,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Output format [table|json]",
				Value:       "table",
				Destination: &outFormat,
			},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context

			client, err := x.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			account := user
			if account == "" {
				if account, err = client.ResolveLogin(ctx); err != nil {
					return err
				}
			}

			var repos []model.Repo
			if starredOnly {
				repos, err = client.ListStarred(ctx, account)
			} else {
				repos, err = client.ListRepositories(ctx, account)
			}
			if err != nil {
				return err
			}

			if language != "" {
				kept := repos[:0]
				for _, r := range repos {
					if strings.EqualFold(r.Language, language) {
						kept = append(kept, r)
					}
				}
				repos = kept
			}

			return format.Repos(os.Stdout, repos, outFormat)
		},
	}
}
