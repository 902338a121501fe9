package update

import (
	"context"
	"errors"
	"fmt"

	"github.com/mendersoftware/autoversion/internal/commands/check"
	"github.com/mendersoftware/autoversion/internal/config"
	"github.com/mendersoftware/autoversion/internal/core"
	"github.com/mendersoftware/autoversion/internal/engine"
	"github.com/mendersoftware/autoversion/internal/manifest"
	"github.com/mendersoftware/autoversion/internal/printer"
	"github.com/mendersoftware/autoversion/internal/runner"
	"github.com/urfave/cli/v3"
)

// pokyComponent is the component updated by the --poky-version special case.
const pokyComponent = "poky"

// Run returns the "update" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Update all version references for a component",
		UsageText: `autoversion update --component <name> --version <version>
autoversion update --component <name> --from-file <manifest> [--field <path>] [--format <fmt>]
autoversion update --poky-version <branch>

Examples:
   autoversion update --component mender-artifact --version 1.2.3
   autoversion update --component mender-connect --from-file ../mender-connect/package.json
   autoversion update --poky-version kirkstone`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "component",
				Usage: "Component to update, it matches the Git repository name",
			},
			&cli.StringFlag{
				Name:  "version",
				Usage: "Version to update to",
			},
			&cli.StringFlag{
				Name:  "from-file",
				Usage: "Read the version from a manifest file instead of --version",
			},
			&cli.StringFlag{
				Name:  "field",
				Usage: "Dot-notation path to the version field in the manifest",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Manifest format: json, yaml, toml, raw (inferred when omitted)",
			},
			&cli.StringFlag{
				Name:  "poky-version",
				Usage: "poky version to update to (usually a branch). This special case overrides --component and --version",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runUpdateCmd(ctx, cmd, cfg)
		},
	}
}

func runUpdateCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fs := core.NewOSFileSystem()

	component, version, err := resolveTarget(ctx, cmd, fs)
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx, fs, runner.Options{
		Root:       cfg.Root,
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
		Update:     &engine.Update{Component: component, Version: version},
	})
	if err != nil {
		return err
	}

	if !result.HasComponent(component) {
		return fmt.Errorf("component %q was not found anywhere in the docs content", component)
	}

	// Updating also surfaces untagged version strings, so a stale tree
	// cannot slip through a release.
	for _, f := range result.Findings {
		check.PrintFinding(f)
	}
	if len(result.Findings) > 0 {
		return check.ErrUntaggedVersions
	}

	printer.PrintSuccess(fmt.Sprintf("Updated version references for %s to %s in %d files.",
		component, version, result.FilesProcessed))
	return nil
}

// resolveTarget determines the component and target version from the flags:
// --poky-version overrides everything; otherwise --component plus either
// --version or --from-file.
func resolveTarget(ctx context.Context, cmd *cli.Command, fs core.FileSystem) (string, string, error) {
	if poky := cmd.String("poky-version"); poky != "" {
		return pokyComponent, poky, nil
	}

	component := cmd.String("component")
	version := cmd.String("version")
	fromFile := cmd.String("from-file")

	if component == "" {
		return "", "", errors.New("--component and --version are required to update something")
	}

	switch {
	case fromFile != "":
		reader := manifest.NewReader(fs)
		read, err := reader.ReadVersion(ctx, manifest.Source{
			Path:   fromFile,
			Format: manifest.Format(cmd.String("format")),
			Field:  cmd.String("field"),
		})
		if err != nil {
			return "", "", err
		}
		version = read
	case version == "":
		return "", "", errors.New("--component and --version are required to update something")
	}

	return component, version, nil
}
