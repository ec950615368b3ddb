package redact

import "omtsf/pkg/model"

// nodeDisposition is the outcome of classifying one node (spec.md
// §4.6's node classification table).
type nodeDisposition int

const (
	dispositionRetain nodeDisposition = iota
	dispositionReplace
	dispositionOmit
)

func classifyNode(n model.Node, scope model.DisclosureScope, retain RetainSet) nodeDisposition {
	if scope == model.ScopePublic && n.Type == model.NodeTypePerson {
		return dispositionOmit
	}
	if n.Type == model.NodeTypeBoundaryRef {
		return dispositionRetain
	}
	if retain.Contains(n.ID) {
		return dispositionRetain
	}
	return dispositionReplace
}

// classifyEdge implements spec.md §4.6's edge classification, given the
// already-resolved dispositions of its two endpoints.
func classifyEdge(e model.Edge, scope model.DisclosureScope, source, target nodeDisposition) nodeDisposition {
	if scope == model.ScopePublic && e.Type == model.EdgeTypeBeneficialOwnership {
		return dispositionOmit
	}
	if source == dispositionOmit || target == dispositionOmit {
		return dispositionOmit
	}
	if source == dispositionReplace && target == dispositionReplace {
		return dispositionOmit
	}
	return dispositionRetain
}
