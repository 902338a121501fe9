package cli

import (
	"context"
	"fmt"

	"github.com/mendersoftware/autoversion/internal/commands/check"
	"github.com/mendersoftware/autoversion/internal/commands/initialize"
	"github.com/mendersoftware/autoversion/internal/commands/update"
	"github.com/mendersoftware/autoversion/internal/config"
	"github.com/mendersoftware/autoversion/internal/printer"
	"github.com/mendersoftware/autoversion/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command, configuring all subcommands
// and flags for the autoversion cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "autoversion",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Keep version references in Markdown documentation in sync",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"C"},
				Usage:       "Documentation tree root",
				Value:       cfg.Root,
				DefaultText: ".",
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			if dir := cmd.String("dir"); dir != "" {
				cfg.Root = dir
			}
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(),
			update.Run(cfg),
			check.Run(cfg),
		},
	}
}
