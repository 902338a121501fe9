// Package runner ties the walker and the rewriting engine together into a
// single run over a documentation tree, aggregating findings and the
// component registry for end-of-run reporting.
package runner
