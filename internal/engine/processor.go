package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/mendersoftware/autoversion/internal/autotag"
	"github.com/mendersoftware/autoversion/internal/core"
	"github.com/mendersoftware/autoversion/internal/pattern"
)

// Update selects the component whose version references are rewritten and
// the version to write. A nil *Update puts the Processor in check mode.
type Update struct {
	Component string
	Version   string
}

// Processor drives one document at a time through the scope tracker and the
// line rewriter/validator. The registry is shared across all documents of a
// run.
type Processor struct {
	fs       core.FileSystem
	registry *Registry
	update   *Update
}

// NewProcessor creates a Processor. Pass a nil update for check mode.
func NewProcessor(fs core.FileSystem, registry *Registry, update *Update) *Processor {
	return &Processor{fs: fs, registry: registry, update: update}
}

// ProcessFile processes a single document. In update mode the rewritten copy
// is written to a sibling temp file and atomically renamed over the original
// only on full success; any failure leaves the original untouched. Findings
// are non-fatal and returned for aggregation; a tag parse failure aborts the
// document with the error annotated as path:line.
func (p *Processor) ProcessFile(ctx context.Context, path string) ([]Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := p.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	output, findings, err := p.processLines(path, splitLines(string(data)))
	if err != nil {
		return nil, err
	}

	if p.update != nil {
		tmp := path + ".new"
		if err := p.fs.WriteFile(ctx, tmp, []byte(output), core.PermDocFile); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", tmp, err)
		}
		if err := p.fs.Rename(ctx, tmp, path); err != nil {
			_ = p.fs.Remove(ctx, tmp)
			return nil, fmt.Errorf("failed to replace %s: %w", path, err)
		}
	}

	return findings, nil
}

// bufLine is a page-header line held back until the active rule set is known.
type bufLine struct {
	no   int
	text string
}

// processLines runs the per-document state machine:
//
//   - a leading "---" line starts a page header block, buffered until its
//     closing "---" so a tag appearing after the header can retroactively
//     apply to it
//   - a tag line (outside code blocks) replaces the active rule set and
//     flushes any buffered header lines with the new rules
//   - code fences toggle code-block state; leaving a code block drops the
//     rule set, entering does not
//   - a blank line outside code blocks ends the rule scope (one paragraph)
func (p *Processor) processLines(path string, lines []string) (string, []Finding, error) {
	var (
		out          strings.Builder
		findings     []Finding
		rules        autotag.RuleSet
		inCodeBlock  bool
		inPageHeader bool
		pageHeader   []bufLine
	)

	processLine := func(lineno int, line string) {
		residue := stripAll(line, rules, p.registry)
		if match, ok := pattern.FindVersion(residue); ok {
			findings = append(findings, Finding{
				Path:     path,
				Line:     lineno,
				Match:    match,
				Original: strings.TrimRight(line, "\r\n"),
				Residue:  strings.TrimRight(residue, "\r\n"),
				Rules:    rules,
			})
		}
		if p.update != nil {
			out.WriteString(rewriteAll(line, rules, p.update.Component, p.update.Version, p.registry))
		}
	}

	flushHeader := func() {
		for _, h := range pageHeader {
			processLine(h.no, h.text)
		}
		pageHeader = nil
	}

	for i, line := range lines {
		lineno := i + 1

		// The page header may have a following tag instead of a preceding
		// one, so its lines are held back.
		if lineno == 1 && strings.TrimSpace(line) == "---" {
			inPageHeader = true
			pageHeader = append(pageHeader, bufLine{lineno, line})
			continue
		}
		if inPageHeader {
			pageHeader = append(pageHeader, bufLine{lineno, line})
			if strings.TrimSpace(line) == "---" {
				inPageHeader = false
			}
			continue
		}

		if !inCodeBlock && autotag.IsTag(line) {
			parsed, err := autotag.Parse(line)
			if err != nil {
				return "", nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
			}
			rules = parsed
			flushHeader()
			if p.update != nil {
				out.WriteString(line)
			}
			continue
		}

		if strings.HasPrefix(line, "```") {
			if inCodeBlock {
				inCodeBlock = false
				// Code examples must not leak stale rules into the prose
				// that follows.
				rules = nil
			} else {
				inCodeBlock = true
			}
		}

		flushHeader()
		processLine(lineno, line)

		if !inCodeBlock && strings.TrimSpace(line) == "" {
			// Outside code blocks a rule set only covers one paragraph.
			rules = nil
		}
	}

	// A document consisting solely of a page header still gets processed.
	flushHeader()

	return out.String(), findings, nil
}

// splitLines splits s into lines, keeping the line terminators so documents
// round-trip byte for byte.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}
