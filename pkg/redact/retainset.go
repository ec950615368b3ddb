// Package redact implements the redaction engine (spec.md §4.6): given
// a document, a target disclosure scope, and a producer-chosen set of
// nodes to keep identifiable, it emits a new document that satisfies
// the target scope's sensitivity invariants.
package redact

// RetainSet names the node ids a producer has chosen to keep
// identifiable in the output, regardless of scope. A node outside the
// set is replaced with an opaque boundary reference unless scope
// classification omits it outright. A small typed wrapper rather than a
// bare map or slice, so call sites read as intent (spec.md §4.6's
// Open Question 3 resolution).
type RetainSet map[string]struct{}

// NewRetainSet builds a RetainSet from the given node ids.
func NewRetainSet(ids ...string) RetainSet {
	rs := make(RetainSet, len(ids))
	for _, id := range ids {
		rs[id] = struct{}{}
	}
	return rs
}

// Contains reports whether id is in the retain set.
func (rs RetainSet) Contains(id string) bool {
	_, ok := rs[id]
	return ok
}
