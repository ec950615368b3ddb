package diff

import (
	"omtsf/pkg/identity"
	"omtsf/pkg/model"
)

// Diff implements spec.md §4.8's diff engine: match a's and b's nodes
// and edges by identity, then classify each pair as an addition,
// deletion, modification, or unchanged match. filter restricts which
// node/edge types and fields participate; checker is the same GLEIF
// annulled-LEI lookup the merge and validate engines use.
func Diff(a, b *model.Document, filter Filter, checker identity.LEIStatusChecker) (Result, error) {
	aNodes := filterNodes(a.Nodes, filter)
	bNodes := filterNodes(b.Nodes, filter)

	aNodeType := nodeTypeByID(a.Nodes)
	bNodeType := nodeTypeByID(b.Nodes)
	aEdges := filterEdges(a.Edges, filter, aNodeType)
	bEdges := filterEdges(b.Edges, filter, bNodeType)

	nm := matchNodes(aNodes, bNodes, checker)
	em := matchEdges(aEdges, bEdges, nm, aNodes, bNodes)

	result := Result{
		HeaderDiff: compareHeaders(a, b),
	}

	for _, i := range nm.Deletions {
		result.NodeDeletions = append(result.NodeDeletions, aNodes[i])
	}
	for _, i := range nm.Additions {
		result.NodeAdditions = append(result.NodeAdditions, bNodes[i])
	}
	for _, pair := range nm.Matches {
		an, bn := aNodes[pair.aIndex], bNodes[pair.bIndex]
		if fds := CompareNodes(an, bn, filter); len(fds) > 0 {
			result.NodeModifications = append(result.NodeModifications, NodeModification{A: an, B: bn, FieldDiffs: fds})
		} else {
			result.NodeUnchanged = append(result.NodeUnchanged, an)
		}
	}
	result.Warnings = append(result.Warnings, nm.Warnings...)

	for _, i := range em.Deletions {
		result.EdgeDeletions = append(result.EdgeDeletions, aEdges[i])
	}
	for _, i := range em.Additions {
		result.EdgeAdditions = append(result.EdgeAdditions, bEdges[i])
	}
	for _, pair := range em.Matches {
		ae, be := aEdges[pair.aIndex], bEdges[pair.bIndex]
		if fds := CompareEdges(ae, be, filter); len(fds) > 0 {
			result.EdgeModifications = append(result.EdgeModifications, EdgeModification{A: ae, B: be, FieldDiffs: fds})
		} else {
			result.EdgeUnchanged = append(result.EdgeUnchanged, ae)
		}
	}

	return result, nil
}

func filterNodes(nodes []model.Node, filter Filter) []model.Node {
	var out []model.Node
	for _, n := range nodes {
		if filter.nodeTypeAllowed(n.Type) {
			out = append(out, n)
		}
	}
	return out
}

func nodeTypeByID(nodes []model.Node) map[string]model.NodeType {
	m := make(map[string]model.NodeType, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n.Type
	}
	return m
}

// filterEdges drops edges whose type is excluded by filter, and
// cascadingly drops any edge whose endpoint resolves to a node type
// filter excludes.
func filterEdges(edges []model.Edge, filter Filter, nodeType map[string]model.NodeType) []model.Edge {
	var out []model.Edge
	for _, e := range edges {
		if !filter.edgeTypeAllowed(e.Type) {
			continue
		}
		if st, ok := nodeType[e.Source]; ok && !filter.nodeTypeAllowed(st) {
			continue
		}
		if tt, ok := nodeType[e.Target]; ok && !filter.nodeTypeAllowed(tt) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// compareHeaders computes HeaderDiff per spec.md §4.8's Open Question 6
// resolution (documented in SPEC_FULL.md): header fields diff
// independently of entity matching and are reported as a separate,
// optional value.
func compareHeaders(a, b *model.Document) *HeaderDiff {
	h := &HeaderDiff{}
	if a.OMTSFVersion != b.OMTSFVersion {
		h.OMTSFVersion = &FieldDiff{Field: "omtsf_version", Before: a.OMTSFVersion, After: b.OMTSFVersion}
	}
	if a.SnapshotDate != b.SnapshotDate {
		h.SnapshotDate = &FieldDiff{Field: "snapshot_date", Before: a.SnapshotDate, After: b.SnapshotDate}
	}
	if a.DisclosureScope != b.DisclosureScope {
		h.DisclosureScope = &FieldDiff{Field: "disclosure_scope", Before: a.DisclosureScope, After: b.DisclosureScope}
	}
	if !reportingEntityEqual(a.ReportingEntity, b.ReportingEntity) {
		h.ReportingEntity = &FieldDiff{Field: "reporting_entity", Before: a.ReportingEntity, After: b.ReportingEntity}
	}
	if h.IsEmpty() {
		return nil
	}
	return h
}

func reportingEntityEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
