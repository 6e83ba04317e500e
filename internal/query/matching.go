// Package query implements the read-side engine (spec.md §4.6): contracts,
// decisions, history, dependents, summary, staleness, and the composite
// lookup, all built from the same shape — enumerate candidate commits, read
// notes, parse via schema.Parse, filter, deduplicate keeping the newest, and
// order.
package query

import "strings"

// fileMatches normalizes a leading "./" on both sides before comparing for
// equality, so an annotation recorded against "./src/main.go" still matches
// a query for "src/main.go".
func fileMatches(annotationPath, queryPath string) bool {
	return normalizePath(annotationPath) == normalizePath(queryPath)
}

func normalizePath(p string) string {
	return strings.TrimPrefix(p, "./")
}

// anchorMatches accepts exact equality or a "::"-suffix relation: an
// annotation anchor of "Config::load" matches a query anchor of "load".
func anchorMatches(annotationAnchor, queryAnchor string) bool {
	if annotationAnchor == queryAnchor {
		return true
	}
	return strings.HasSuffix(annotationAnchor, "::"+queryAnchor)
}
