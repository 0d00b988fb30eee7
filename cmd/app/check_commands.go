package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/domainguard/cmd/app/commands"
	"github.com/allisson/domainguard/internal/app"
	checkService "github.com/allisson/domainguard/internal/check/service"
	"github.com/allisson/domainguard/internal/config"
)

func getCheckCommands() []*cli.Command {
	checkFlags := []cli.Flag{
		&cli.IntFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Value:   0,
			Usage:   "Per-domain check timeout in seconds (0 uses the configured default)",
		},
		&cli.BoolFlag{
			Name:  "skip-whitelist",
			Value: false,
			Usage: "Skip the whitelist membership check",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "Output format: 'text' or 'json'",
		},
	}

	return []*cli.Command{
		{
			Name:      "check-domain",
			Usage:     "Run the full security check against one or more domains",
			ArgsUsage: "DOMAIN [DOMAIN...]",
			Flags:     checkFlags,
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				checker, err := container.Checker()
				if err != nil {
					return err
				}

				opts := checkService.Options{
					Timeout:       time.Duration(cmd.Int("timeout")) * time.Second,
					SkipWhitelist: cmd.Bool("skip-whitelist"),
				}

				return commands.RunCheckDomains(
					ctx,
					checker,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Args().Slice(),
					opts,
					cmd.String("format"),
				)
			},
		},
	}
}
