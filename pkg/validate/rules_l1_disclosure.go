package validate

import (
	"fmt"

	"omtsf/pkg/model"
)

func disclosureRules() []Rule {
	return []Rule{
		newRule("boundary-ref-single-opaque", LevelError, ruleBoundaryRefSingleOpaque),
		newRule("disclosure-scope-consistent", LevelError, ruleDisclosureScopeConsistent),
	}
}

func ruleBoundaryRefSingleOpaque(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	for _, n := range doc.Nodes {
		if n.Type != model.NodeTypeBoundaryRef {
			continue
		}
		opaqueCount := 0
		for _, id := range n.Identifiers {
			if id.Scheme == "opaque" {
				opaqueCount++
			}
		}
		if opaqueCount != 1 || len(n.Identifiers) != 1 {
			diags = append(diags, Diagnostic{
				RuleID: "boundary-ref-single-opaque", Severity: LevelError,
				Location: Location{NodeID: n.ID},
				Message:  fmt.Sprintf("boundary_ref node %q must carry exactly one opaque identifier and nothing else", n.ID),
			})
		}
	}
	return diags
}

// maxAllowedSensitivity is the per-scope ceiling spec.md §4.2/§4.6
// imposes: a public document cannot declare identifiers or node types
// that only make sense in a narrower-disclosure context.
func maxAllowedSensitivity(scope model.DisclosureScope) model.Sensitivity {
	switch scope {
	case model.ScopePublic:
		return model.SensitivityPublic
	case model.ScopePartner:
		return model.SensitivityRestricted
	default: // internal, or unset
		return model.SensitivityConfidential
	}
}

// ruleDisclosureScopeConsistent flags a document whose declared scope
// is narrower than the sensitivity of the identifiers it actually
// carries, or that contains a person node in a public-scope file
// (persons are the most disclosure-sensitive node type named in
// spec.md §1).
func ruleDisclosureScopeConsistent(doc *model.Document, ds DataSource) []Diagnostic {
	if doc.DisclosureScope == "" {
		return nil
	}
	ceiling := maxAllowedSensitivity(doc.DisclosureScope)
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if id.Sensitivity != nil && id.Sensitivity.Exceeds(ceiling) {
			diags = append(diags, Diagnostic{
				RuleID: "disclosure-scope-consistent", Severity: LevelError,
				Location: loc,
				Message:  fmt.Sprintf("identifier sensitivity %q exceeds what disclosure_scope %q permits", *id.Sensitivity, doc.DisclosureScope),
			})
		}
	})
	if doc.DisclosureScope == model.ScopePublic {
		for _, n := range doc.Nodes {
			if n.Type == model.NodeTypePerson {
				diags = append(diags, Diagnostic{
					RuleID: "disclosure-scope-consistent", Severity: LevelError,
					Location: Location{NodeID: n.ID},
					Message:  fmt.Sprintf("person node %q is not permitted in a public-scope document", n.ID),
				})
			}
		}
	}
	return diags
}
