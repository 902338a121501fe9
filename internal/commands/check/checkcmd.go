package check

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/mendersoftware/autoversion/internal/config"
	"github.com/mendersoftware/autoversion/internal/core"
	"github.com/mendersoftware/autoversion/internal/engine"
	"github.com/mendersoftware/autoversion/internal/printer"
	"github.com/mendersoftware/autoversion/internal/runner"
	"github.com/mendersoftware/autoversion/internal/tui"
	"github.com/mendersoftware/autoversion/internal/walker"
	"github.com/urfave/cli/v3"
)

// ErrUntaggedVersions fails the run when version-looking strings without an
// AUTOVERSION tag were found.
var ErrUntaggedVersions = errors.New("errors found, see printed messages")

// Run returns the "check" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify that no version reference is missing an AUTOVERSION tag",
		UsageText: `autoversion check [--quiet] [--watch]

Scans every documentation file under the configured root and reports any
version-looking string that is not covered by an AUTOVERSION expression.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only report errors, skip the component summary",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Re-run the check whenever documentation files change",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCheckCmd(ctx, cmd, cfg)
		},
	}
}

func runCheckCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	quiet := cmd.Bool("quiet")

	if cmd.Bool("watch") {
		return runWatch(ctx, cfg, quiet)
	}
	return runOnce(ctx, cfg, quiet)
}

// runOnce executes a single check pass and reports its outcome.
func runOnce(ctx context.Context, cfg *config.Config, quiet bool) error {
	fs := core.NewOSFileSystem()
	opts := runner.Options{
		Root:       cfg.Root,
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	}

	var (
		result *runner.Result
		runErr error
	)
	scan := func() {
		result, runErr = runner.Run(ctx, fs, opts)
	}

	if tui.IsInteractive() && !quiet {
		if err := spinner.New().Title("Scanning documentation...").Action(scan).Run(); err != nil {
			return err
		}
	} else {
		scan()
	}
	if runErr != nil {
		return runErr
	}

	for _, f := range result.Findings {
		PrintFinding(f)
	}
	if len(result.Findings) > 0 {
		return ErrUntaggedVersions
	}

	if !quiet {
		printer.PrintSuccess("All good. List of components found: " + strings.Join(result.Components, ", "))
	}
	return nil
}

// runWatch keeps re-running the check on documentation changes until the
// context is cancelled. Per-pass failures are reported, not fatal.
func runWatch(ctx context.Context, cfg *config.Config, quiet bool) error {
	pass := func() {
		if err := runOnce(ctx, cfg, quiet); err != nil && !errors.Is(err, ErrUntaggedVersions) {
			printer.PrintError(err.Error())
		}
	}

	pass()
	printer.PrintInfo(fmt.Sprintf("Watching %s for changes...", cfg.Root))

	w := walker.New(core.NewOSFileSystem(), cfg.Extensions, cfg.Exclude)
	err := w.Watch(ctx, cfg.Root, pass)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// PrintFinding prints the full diagnostic block for one untagged version
// string: location, offending substring, original line, the rules that were
// in effect, and the line after rule removal.
func PrintFinding(f engine.Finding) {
	sep := strings.Repeat("-", 79)
	end := strings.Repeat("=", 79)

	rules := "None"
	if len(f.Rules) > 0 {
		parts := make([]string, len(f.Rules))
		for i, r := range f.Rules {
			parts[i] = r.String()
		}
		rules = strings.Join(parts, "\n")
	}

	printer.PrintError(fmt.Sprintf(
		"ERROR: Found version-looking string %q in documentation line, not covered by any AUTOVERSION expression.",
		f.Match))
	printer.PrintBold(fmt.Sprintf("%s:%d", f.Path, f.Line))
	fmt.Printf("\nOriginal line:\n\n%s\n%s\n\n", f.Original, printer.Faint(sep))
	fmt.Printf("AUTOVERSION expressions in effect:\n%s\n\n", rules)
	fmt.Printf("Line after removing all AUTOVERSION matched sections:\n\n%s\n%s\n\n", f.Residue, printer.Faint(sep))
	fmt.Printf("See README-autoversion.markdown for more information.\n\n%s\n", printer.Faint(end))
}
