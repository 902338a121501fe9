// Package autotag parses AUTOVERSION annotation tags embedded in Markdown
// comments into ordered rule sets. A tag declares which substrings of the
// following paragraph are versions of which component, using '%' as the
// version placeholder inside quoted search templates.
package autotag
