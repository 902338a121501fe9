// Package pattern defines the fixed regular expressions that decide whether
// a piece of documentation text "looks like" a version. The expressions rely
// on lookaround for boundary exclusion, so they are compiled with
// dlclark/regexp2 rather than the standard library's RE2 engine.
package pattern
