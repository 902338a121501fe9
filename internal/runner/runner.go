package runner

import (
	"context"
	"slices"

	"github.com/mendersoftware/autoversion/internal/core"
	"github.com/mendersoftware/autoversion/internal/engine"
	"github.com/mendersoftware/autoversion/internal/walker"
)

// Options configures one run over a documentation tree.
type Options struct {
	// Root is the documentation tree root.
	Root string

	// Extensions and Exclude configure the walker; empty slices mean the
	// defaults.
	Extensions []string
	Exclude    []string

	// Update selects update mode; nil runs in check mode.
	Update *engine.Update
}

// Result aggregates the outcome of a run.
type Result struct {
	// Findings are the untagged version strings discovered across all
	// documents, in traversal order.
	Findings []engine.Finding

	// Components are the component ids referenced by non-ignore rules, in
	// first-seen order.
	Components []string

	// FilesProcessed counts the documents traversed.
	FilesProcessed int
}

// HasComponent reports whether component was referenced anywhere in the run.
func (r *Result) HasComponent(component string) bool {
	return slices.Contains(r.Components, component)
}

// Run processes every documentation file under opts.Root, one document at a
// time. Findings accumulate across documents; a tag parse failure aborts the
// whole run immediately with the document already rolled back.
func Run(ctx context.Context, fs core.FileSystem, opts Options) (*Result, error) {
	registry := engine.NewRegistry()
	processor := engine.NewProcessor(fs, registry, opts.Update)
	w := walker.New(fs, opts.Extensions, opts.Exclude)

	result := &Result{}
	err := w.Walk(ctx, opts.Root, func(path string) error {
		findings, err := processor.ProcessFile(ctx, path)
		if err != nil {
			return err
		}
		result.Findings = append(result.Findings, findings...)
		result.FilesProcessed++
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Components = registry.Components()
	return result, nil
}
