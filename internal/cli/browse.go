package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v2"

	"repodeck/internal/browser"
)

func (x *CLI) browseCommand() *cli.Command {
	var user string
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"b"},
		Usage:   "Browse an account's repositories interactively",
		Flags: []cli.Flag{
			userFlag(&user),
		},
		Action: func(c *cli.Context) error {
			return x.runBrowser(c.Context, user, false)
		},
	}
}

func (x *CLI) starredCommand() *cli.Command {
	var user string
	return &cli.Command{
		Name:  "starred",
		Usage: "Browse an account's starred repositories interactively",
		Flags: []cli.Flag{
			userFlag(&user),
		},
		Action: func(c *cli.Context) error {
			return x.runBrowser(c.Context, user, true)
		},
	}
}

func (x *CLI) runBrowser(ctx context.Context, user string, starredOnly bool) error {
	client, err := x.newClient(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(browser.New(client, user, starredOnly), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return goerr.Wrap(err, "browser session failed")
	}
	return nil
}

func userFlag(dst *string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "user",
		Aliases:     []string{"u"},
		Usage:       "Target account (defaults to the authenticated user)",
		Destination: dst,
	}
}
