package engine

import (
	"github.com/mendersoftware/autoversion/internal/autotag"
)

// Finding describes a version-looking string that survived rule removal,
// meaning no AUTOVERSION expression covers it.
type Finding struct {
	// Path and Line locate the offending line in the documentation tree.
	Path string
	Line int

	// Match is the version-looking substring that triggered the finding.
	Match string

	// Original is the line as it appears in the document.
	Original string

	// Residue is the line after all rule matches were removed. The match was
	// found in the residue, which is why it counts as untagged.
	Residue string

	// Rules is the rule set that was active on the line.
	Rules autotag.RuleSet
}

// stripAll removes every rule match from line, ignore rules included, and
// records the non-ignore components into the registry. All rules apply
// cumulatively to the same line.
func stripAll(line string, rules autotag.RuleSet, reg *Registry) string {
	out := line
	for _, rule := range rules {
		if !rule.IsIgnore() {
			reg.Record(rule.Component)
		}
		out = rule.Strip(out)
	}
	return out
}

// rewriteAll substitutes the target version into every match of the rules
// bound to component. Rules for other components and ignore rules leave the
// line untouched, but their components are still recorded.
func rewriteAll(line string, rules autotag.RuleSet, component, version string, reg *Registry) string {
	out := line
	for _, rule := range rules {
		if !rule.IsIgnore() {
			reg.Record(rule.Component)
		}
		if rule.IsIgnore() || rule.Component != component {
			continue
		}
		out = rule.Substitute(out, version)
	}
	return out
}
