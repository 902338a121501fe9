package autotag

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/mendersoftware/autoversion/internal/pattern"
)

// IgnoreComponent marks a rule whose matches are exempt from the
// untagged-version check but never substituted (e.g. non-Mender tool
// versions mentioned in passing).
const IgnoreComponent = "ignore"

// ErrMalformedTag is wrapped by every tag grammar violation.
var ErrMalformedTag = errors.New("malformed AUTOVERSION tag")

var (
	// openRe recognizes a line that opens an AUTOVERSION tag.
	openRe = regexp.MustCompile(`^ *<!-- *AUTOVERSION *:`)

	// tagRe captures the pair list between the colon and the closing marker.
	tagRe = regexp.MustCompile(`^ *<!-- *AUTOVERSION *: *(.*)--> *$`)

	// pairRe matches one "template"/component pair at the current position.
	// Templates may contain escaped double quotes.
	pairRe = regexp.MustCompile(`^"((?:\\"|[^"])*)"/([-a-z]+) *`)
)

// IsTag reports whether line opens an AUTOVERSION tag. Lines inside fenced
// code blocks are never tags; that exemption is the caller's concern.
func IsTag(line string) bool {
	return openRe.MatchString(line)
}

// Rule binds a search template to the component whose version it tracks.
// The template contains at least one '%' placeholder standing in for a
// version-looking string.
type Rule struct {
	Search    string
	Component string

	matchRe *regexp2.Regexp
	stripRe *regexp2.Regexp
}

// NewRule validates and compiles a rule. The search template must contain a
// '%' placeholder plus some literal text around it, so templates matching
// nothing but a bare version are rejected up front.
func NewRule(search, component string) (Rule, error) {
	if !strings.Contains(search, "%") {
		return Rule{}, fmt.Errorf("%w: search string %q does not contain at least one '%%'", ErrMalformedTag, search)
	}
	if strings.TrimSpace(strings.ReplaceAll(search, "%", "")) == "" {
		return Rule{}, fmt.Errorf("%w: search string needs to be longer/more specific than just %q", ErrMalformedTag, search)
	}

	escaped := regexp2.Escape(search)
	return Rule{
		Search:    search,
		Component: component,
		matchRe:   regexp2.MustCompile(strings.ReplaceAll(escaped, "%", pattern.VersionExpr), regexp2.None),
		stripRe:   regexp2.MustCompile(strings.ReplaceAll(escaped, "%", pattern.StripExpr), regexp2.None),
	}, nil
}

// IsIgnore reports whether the rule targets the ignore sentinel.
func (r Rule) IsIgnore() bool {
	return r.Component == IgnoreComponent
}

// Strip removes every match of the rule from line, leaving the template's
// literal parts with the placeholder collapsed to nothing.
func (r Rule) Strip(line string) string {
	repl := strings.ReplaceAll(r.Search, "%", "")
	out, err := r.stripRe.Replace(line, escapeReplacement(repl), -1, -1)
	if err != nil {
		return line
	}
	return out
}

// Substitute replaces every match of the rule with the template's
// placeholder resolved to the literal version string.
func (r Rule) Substitute(line, version string) string {
	repl := strings.ReplaceAll(r.Search, "%", version)
	out, err := r.matchRe.Replace(line, escapeReplacement(repl), -1, -1)
	if err != nil {
		return line
	}
	return out
}

// String re-serializes the rule in tag syntax, re-escaping double quotes.
func (r Rule) String() string {
	return fmt.Sprintf(`"%s"/%s`, strings.ReplaceAll(r.Search, `"`, `\"`), r.Component)
}

// RuleSet is the ordered list of rules parsed from one tag, active until the
// next tag, the next paragraph break, or the closing code fence.
type RuleSet []Rule

// String renders the rule set in tag syntax, for diagnostics and round-trips.
func (rs RuleSet) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// Parse parses a full tag line into a RuleSet.
//
// A valid tag looks like:
//
//	<!--AUTOVERSION: "git clone -b %"/integration "Mender Client %"/mender "docker version %"/ignore-->
//
// Each pair must be immediately followed by the next pair or the closing
// marker; anything left over is a grammar violation.
func Parse(line string) (RuleSet, error) {
	m := tagRe.FindStringSubmatchIndex(line)
	if m == nil {
		return nil, fmt.Errorf("%w: missing closing marker:\n%s", ErrMalformedTag, line)
	}
	inner := line[m[2]:m[3]]
	if strings.TrimSpace(inner) == "" {
		return RuleSet{}, nil
	}

	rules := RuleSet{}
	pos := 0
	for pos < len(inner) {
		loc := pairRe.FindStringSubmatchIndex(inner[pos:])
		if loc == nil {
			break
		}
		search := strings.ReplaceAll(inner[pos+loc[2]:pos+loc[3]], `\"`, `"`)
		component := inner[pos+loc[4]:pos+loc[5]]
		pos += loc[1]

		rule, err := NewRule(search, component)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if pos != len(inner) {
		return nil, fmt.Errorf("%w: tag not parsed correctly:\n%s\nExample of valid tag:\n"+
			`<!--AUTOVERSION: "git clone -b %%"/integration "Mender Client %%"/mender "docker version %%"/ignore-->`,
			ErrMalformedTag, line)
	}
	return rules, nil
}

// escapeReplacement makes s safe to use as a regexp2 replacement string,
// where '$' introduces group references.
func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
