package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/domainguard/cmd/app/commands"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "refresher",
			Usage: "Run the background token refresher",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "domain",
					Aliases: []string{"d"},
					Value:   "",
					Usage:   "Domain to request tokens for (overrides REFRESHER_DOMAIN)",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "",
					Usage:   "File to write fresh tokens to (overrides REFRESHER_OUTPUT_PATH)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunRefresher(ctx, cmd.String("domain"), cmd.String("output"))
			},
		},
	}
}
