package initialize

import (
	"context"
	"fmt"
	"os"

	"github.com/mendersoftware/autoversion/internal/config"
	"github.com/mendersoftware/autoversion/internal/printer"
	"github.com/mendersoftware/autoversion/internal/tui"
	"github.com/urfave/cli/v3"
)

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a " + config.ConfigFileName + " configuration file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "Documentation tree root",
				Value: ".",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Directory name to skip during traversal (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(ctx, cmd)
		},
	}
}

func runInitCmd(_ context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(config.ConfigFileName); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite", config.ConfigFileName)
	}

	cfg := config.Default()
	cfg.Root = cmd.String("root")
	if exclude := cmd.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Exclude = exclude
	}

	if tui.IsInteractive() {
		root, err := tui.Input(
			"Documentation root",
			"Directory scanned for Markdown files.",
			cfg.Root,
		)
		if err != nil {
			return err
		}
		cfg.Root = root

		confirmed, err := tui.Confirm(
			"Write "+config.ConfigFileName+"?",
			fmt.Sprintf("root: %s, extensions: %v, exclude: %v", cfg.Root, cfg.Extensions, cfg.Exclude),
		)
		if err != nil {
			return err
		}
		if !confirmed {
			printer.PrintFaint("Aborted, no configuration written.")
			return nil
		}
	}

	if err := config.SaveConfigFn(cfg); err != nil {
		return err
	}
	printer.PrintSuccess("Created " + config.ConfigFileName)
	return nil
}
