package main

import (
	"context"
	"os"

	"github.com/mendersoftware/autoversion/internal/cli"
	"github.com/mendersoftware/autoversion/internal/config"
	"github.com/mendersoftware/autoversion/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI loads the configuration and runs the root command. Split from main
// for testability.
func runCLI(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return cli.New(cfg).Run(context.Background(), args)
}
