// Package engine implements the tag-directed rewriting core: a line-oriented
// state machine that tracks scope boundaries (fenced code blocks, leading
// page headers, paragraph breaks) and applies the active AUTOVERSION rule set
// to each line, either substituting component versions (update) or flagging
// version-looking strings no rule covers (check).
package engine
