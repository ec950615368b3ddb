package validate

import (
	"fmt"

	"omtsf/pkg/model"
)

func structuralRules() []Rule {
	return []Rule{
		newRule("reporting-entity-resolves", LevelError, ruleReportingEntityResolves),
		newRule("edge-endpoint-types-permitted", LevelError, ruleEdgeEndpointTypesPermitted),
	}
}

func ruleReportingEntityResolves(doc *model.Document, ds DataSource) []Diagnostic {
	if doc.ReportingEntity == nil {
		return nil
	}
	n, ok := doc.NodeByID(*doc.ReportingEntity)
	if !ok || n.Type != model.NodeTypeOrganization {
		return []Diagnostic{{
			RuleID:   "reporting-entity-resolves",
			Severity: LevelError,
			Location: Location{HeaderField: "reporting_entity"},
			Message:  fmt.Sprintf("reporting_entity %q does not resolve to an organization node", *doc.ReportingEntity),
		}}
	}
	return nil
}

// endpointRule names the node types permitted as an edge type's source
// and target. A nil slice means "no constraint" (every extension type,
// plus any edge touching a boundary_ref node, which bypasses this rule
// entirely per spec.md §4.2).
type endpointRule struct {
	sources []model.NodeType
	targets []model.NodeType
}

// permittedEndpoints is the fixed table spec.md §4.2 refers to by name
// without spelling out; it follows the edge-type semantics described
// in spec.md §1/§3 (an ownership edge runs between organizations, a
// produces edge from a facility to a good, and so on).
var permittedEndpoints = map[model.EdgeType]endpointRule{
	model.EdgeTypeOwnership: {
		sources: []model.NodeType{model.NodeTypeOrganization, model.NodeTypePerson},
		targets: []model.NodeType{model.NodeTypeOrganization},
	},
	model.EdgeTypeOperationalControl: {
		sources: []model.NodeType{model.NodeTypeOrganization},
		targets: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
	},
	model.EdgeTypeLegalParentage: {
		sources: []model.NodeType{model.NodeTypeOrganization},
		targets: []model.NodeType{model.NodeTypeOrganization},
	},
	model.EdgeTypeFormerIdentity: {
		sources: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility, model.NodeTypePerson},
		targets: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility, model.NodeTypePerson},
	},
	model.EdgeTypeBeneficialOwnership: {
		sources: []model.NodeType{model.NodeTypePerson},
		targets: []model.NodeType{model.NodeTypeOrganization},
	},
	model.EdgeTypeSupplies: {
		sources: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
		targets: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
	},
	model.EdgeTypeSubcontracts: {
		sources: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
		targets: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
	},
	model.EdgeTypeSellsTo: {
		sources: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
		targets: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
	},
	model.EdgeTypeTolls: {
		sources: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
		targets: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
	},
	model.EdgeTypeBrokers: {
		sources: []model.NodeType{model.NodeTypeOrganization},
		targets: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
	},
	model.EdgeTypeDistributes: {
		sources: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
		targets: []model.NodeType{model.NodeTypeOrganization, model.NodeTypeFacility},
	},
	model.EdgeTypeAttestedBy: {
		targets: []model.NodeType{model.NodeTypeAttestation},
	},
	model.EdgeTypeOperates: {
		sources: []model.NodeType{model.NodeTypeOrganization},
		targets: []model.NodeType{model.NodeTypeFacility},
	},
	model.EdgeTypeProduces: {
		sources: []model.NodeType{model.NodeTypeFacility},
		targets: []model.NodeType{model.NodeTypeGood},
	},
	model.EdgeTypeComposedOf: {
		sources: []model.NodeType{model.NodeTypeGood},
		targets: []model.NodeType{model.NodeTypeGood},
	},
	// same_as intentionally carries no endpoint-type constraint: it
	// links any two nodes asserted to denote the same entity.
}

func typeAllowed(t model.NodeType, allowed []model.NodeType) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == t {
			return true
		}
	}
	return false
}

func ruleEdgeEndpointTypesPermitted(doc *model.Document, ds DataSource) []Diagnostic {
	nodes := doc.NodeIndex()
	var diags []Diagnostic
	for _, e := range doc.Edges {
		if e.Type.IsExtension() {
			continue
		}
		rule, ok := permittedEndpoints[e.Type]
		if !ok {
			continue
		}
		srcIdx, srcOK := nodes[e.Source]
		tgtIdx, tgtOK := nodes[e.Target]
		if !srcOK || !tgtOK {
			continue // edge-endpoints-resolve already reports this
		}
		src, tgt := doc.Nodes[srcIdx], doc.Nodes[tgtIdx]
		if src.Type == model.NodeTypeBoundaryRef || tgt.Type == model.NodeTypeBoundaryRef {
			continue
		}
		if !typeAllowed(src.Type, rule.sources) {
			diags = append(diags, Diagnostic{
				RuleID: "edge-endpoint-types-permitted", Severity: LevelError,
				Location: Location{EdgeID: e.ID, EdgeField: "source"},
				Message:  fmt.Sprintf("edge type %q does not permit source node type %q", e.Type, src.Type),
			})
		}
		if !typeAllowed(tgt.Type, rule.targets) {
			diags = append(diags, Diagnostic{
				RuleID: "edge-endpoint-types-permitted", Severity: LevelError,
				Location: Location{EdgeID: e.ID, EdgeField: "target"},
				Message:  fmt.Sprintf("edge type %q does not permit target node type %q", e.Type, tgt.Type),
			})
		}
	}
	return diags
}
