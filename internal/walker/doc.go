// Package walker discovers documentation files under a root directory,
// filtered by extension and pruned by excluded directory names. It also
// provides the fsnotify-backed watch loop used by check --watch.
package walker
