// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/notebookd/internal/config"
)

var cfg config.Type

// InitApp builds the top-level notebookd application. The subcommand name
// doubles as the config namespace, so `serve` reads its defaults from the
// `serve:` block of notebookd.yaml.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ = config.Load(ns)

	app := &cli.Command{
		Name:  "notebookd",
		Usage: "Notebook chunk-output cache daemon",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "notebookd version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		ServeCommandBuilder(app),
	)

	return app, nil
}
