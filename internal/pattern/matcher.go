package pattern

import (
	"github.com/dlclark/regexp2"
)

// yoctoBranches is the closed set of Yocto release branch names that count
// as version-looking on their own.
const yoctoBranches = `(?:dora|daisy|dizzy|jethro|krogoth|morty|pyro|rocko|sumo|thud|warrior|zeus|dunfell|gatesgarth|kirkstone|langdale|mickledore|scarthgap)`

// exactVersion matches major.minor.patch with optional bN, -buildN and -rc.N
// suffixes. The lookbehind guards keep it from matching the tail of a longer
// numeric token, the lookaheads from matching a prefix of one.
const exactVersion = `(?<![0-9]\.)(?<![0-9])[1-9][0-9]*\.[0-9]+\.[x0-9]+` +
	`(?:b[0-9]+)?(?:-build[0-9]+)?(?![0-9])(?!\.[0-9])` +
	`(?:-rc\.[0-9]+)?(?![0-9])(?!\.[0-9])`

// VersionExpr matches any version-looking string: an exact version, an exact
// version with the "mender-" namespace prefix, or a bare branch alias
// (including "master") bounded so it is not part of a longer word.
const VersionExpr = `(?:` + exactVersion +
	`|(?:mender-` + exactVersion + `)` +
	`|(?<![a-z])(?:` + yoctoBranches + `|master)(?![a-z]))`

// MinorListExpr matches a run of comma or space separated minor version
// pairs such as "2.6, 2.7". It is only spliced into rule templates when
// stripping matches during validation, never used for detection.
const MinorListExpr = `(?:(?<!\.)\s*\d+\.\d+[, ]?(?!\.\d))+`

// StripExpr is the placeholder expansion used when removing rule matches
// before the untagged-version check.
const StripExpr = `(?:` + VersionExpr + `|` + MinorListExpr + `)`

var versionRe = regexp2.MustCompile(VersionExpr, regexp2.None)

// FindVersion returns the first version-looking substring of s.
func FindVersion(s string) (string, bool) {
	m, err := versionRe.FindStringMatch(s)
	if err != nil || m == nil {
		return "", false
	}
	return m.String(), true
}
