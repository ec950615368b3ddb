// Package diff implements the diff engine (spec.md §4.8): given two
// OMTSF documents, it matches entities using the same identity
// machinery the merge engine uses, then reports additions, deletions,
// modifications, and unchanged pairs.
package diff

import "omtsf/pkg/model"

// FieldDiff is one field's before/after values on a matched pair.
type FieldDiff struct {
	Field  string
	Before any
	After  any
}

// NodeModification is a matched node pair with at least one field
// difference.
type NodeModification struct {
	A, B       model.Node
	FieldDiffs []FieldDiff
}

// EdgeModification is a matched edge pair with at least one field
// difference.
type EdgeModification struct {
	A, B       model.Edge
	FieldDiffs []FieldDiff
}

// WarningKind enumerates non-fatal conditions the diff engine surfaces.
type WarningKind string

const (
	// WarningAmbiguousMatch marks a merge-group spanning more than one
	// node from the same input file, which is Cartesian-paired instead
	// of uniquely matched.
	WarningAmbiguousMatch WarningKind = "ambiguous_match"
)

// Warning is a single non-fatal condition raised during diff.
type Warning struct {
	Kind    WarningKind
	Message string
}

// HeaderDiff reports differences between the two documents' header
// fields (spec.md §4.8's Open Question 6 resolution): a separate,
// optional value a caller may ignore, never folded into the
// entity-scoped addition/removal/modification lists.
type HeaderDiff struct {
	OMTSFVersion    *FieldDiff
	SnapshotDate    *FieldDiff
	DisclosureScope *FieldDiff
	ReportingEntity *FieldDiff
}

// IsEmpty reports whether no header field differed.
func (h *HeaderDiff) IsEmpty() bool {
	return h == nil || (h.OMTSFVersion == nil && h.SnapshotDate == nil &&
		h.DisclosureScope == nil && h.ReportingEntity == nil)
}

// Result is the full outcome of a Diff call.
type Result struct {
	NodeAdditions     []model.Node
	NodeDeletions     []model.Node
	NodeModifications []NodeModification
	NodeUnchanged     []model.Node // the A-side record of each unchanged pair

	EdgeAdditions     []model.Edge
	EdgeDeletions     []model.Edge
	EdgeModifications []EdgeModification
	EdgeUnchanged     []model.Edge

	Warnings   []Warning
	HeaderDiff *HeaderDiff
}

// Filter restricts a diff by node type, edge type, or ignored field
// names (spec.md §4.8). When NodeTypes is non-empty, edges whose
// endpoints (on either side) have an excluded type are excluded
// cascadingly.
type Filter struct {
	NodeTypes    []model.NodeType
	EdgeTypes    []model.EdgeType
	IgnoreFields []string
}

func (f Filter) nodeTypeAllowed(t model.NodeType) bool {
	if len(f.NodeTypes) == 0 {
		return true
	}
	for _, x := range f.NodeTypes {
		if x == t {
			return true
		}
	}
	return false
}

func (f Filter) edgeTypeAllowed(t model.EdgeType) bool {
	if len(f.EdgeTypes) == 0 {
		return true
	}
	for _, x := range f.EdgeTypes {
		if x == t {
			return true
		}
	}
	return false
}

func (f Filter) fieldIgnored(field string) bool {
	for _, x := range f.IgnoreFields {
		if x == field {
			return true
		}
	}
	return false
}
