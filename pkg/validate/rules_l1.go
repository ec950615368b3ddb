package validate

import (
	"fmt"

	"omtsf/pkg/checkdigit"
	"omtsf/pkg/model"
)

func l1Rules() []Rule {
	rules := []Rule{
		newRule("struct-shape", LevelError, ruleStructShape),
		newRule("node-id-unique", LevelError, ruleNodeIDUnique),
		newRule("node-type-valid", LevelError, ruleNodeTypeValid),
		newRule("edge-id-unique", LevelError, ruleEdgeIDUnique),
		newRule("edge-type-valid", LevelError, ruleEdgeTypeValid),
		newRule("edge-endpoints-resolve", LevelError, ruleEdgeEndpointsResolve),
		newRule("disclosure-scope-valid", LevelError, ruleDisclosureScopeValid),
		newRule("identifier-check-digit", LevelError, ruleIdentifierCheckDigit),
	}
	rules = append(rules, identifierRules()...)
	rules = append(rules, structuralRules()...)
	rules = append(rules, disclosureRules()...)
	rules = append(rules, schemaRules()...)
	return rules
}

// ruleStructShape delegates to pkg/model.ValidateShape so a struct-level
// defect (missing required field, malformed salt, bad jurisdiction
// code) surfaces through the same diagnostic channel as every other
// rule, instead of as a bare Go error the caller has to handle
// separately.
func ruleStructShape(doc *model.Document, ds DataSource) []Diagnostic {
	if err := model.ValidateShape(doc); err != nil {
		return []Diagnostic{{
			RuleID:   "struct-shape",
			Severity: LevelError,
			Location: Location{Global: true},
			Message:  err.Error(),
		}}
	}
	return nil
}

func ruleNodeIDUnique(doc *model.Document, ds DataSource) []Diagnostic {
	seen := make(map[string]int, len(doc.Nodes))
	var diags []Diagnostic
	for _, n := range doc.Nodes {
		seen[n.ID]++
		if seen[n.ID] == 2 {
			diags = append(diags, Diagnostic{
				RuleID:   "node-id-unique",
				Severity: LevelError,
				Location: Location{NodeID: n.ID},
				Message:  fmt.Sprintf("duplicate node id %q", n.ID),
			})
		}
	}
	return diags
}

func ruleNodeTypeValid(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	for _, n := range doc.Nodes {
		if !n.Type.Valid() {
			diags = append(diags, Diagnostic{
				RuleID:   "node-type-valid",
				Severity: LevelError,
				Location: Location{NodeID: n.ID, NodeField: "type"},
				Message:  fmt.Sprintf("node %q has invalid type %q", n.ID, n.Type),
			})
		}
	}
	return diags
}

func ruleEdgeIDUnique(doc *model.Document, ds DataSource) []Diagnostic {
	seen := make(map[string]int, len(doc.Edges))
	var diags []Diagnostic
	for _, e := range doc.Edges {
		seen[e.ID]++
		if seen[e.ID] == 2 {
			diags = append(diags, Diagnostic{
				RuleID:   "edge-id-unique",
				Severity: LevelError,
				Location: Location{EdgeID: e.ID},
				Message:  fmt.Sprintf("duplicate edge id %q", e.ID),
			})
		}
	}
	return diags
}

func ruleEdgeTypeValid(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	for _, e := range doc.Edges {
		if !e.Type.Valid() {
			diags = append(diags, Diagnostic{
				RuleID:   "edge-type-valid",
				Severity: LevelError,
				Location: Location{EdgeID: e.ID, EdgeField: "type"},
				Message:  fmt.Sprintf("edge %q has invalid type %q", e.ID, e.Type),
			})
		}
	}
	return diags
}

func ruleEdgeEndpointsResolve(doc *model.Document, ds DataSource) []Diagnostic {
	nodeIDs := make(map[string]struct{}, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodeIDs[n.ID] = struct{}{}
	}
	var diags []Diagnostic
	for _, e := range doc.Edges {
		if _, ok := nodeIDs[e.Source]; !ok {
			diags = append(diags, Diagnostic{
				RuleID:   "edge-endpoints-resolve",
				Severity: LevelError,
				Location: Location{EdgeID: e.ID, EdgeField: "source"},
				Message:  fmt.Sprintf("edge %q references unknown source node %q", e.ID, e.Source),
			})
		}
		if _, ok := nodeIDs[e.Target]; !ok {
			diags = append(diags, Diagnostic{
				RuleID:   "edge-endpoints-resolve",
				Severity: LevelError,
				Location: Location{EdgeID: e.ID, EdgeField: "target"},
				Message:  fmt.Sprintf("edge %q references unknown target node %q", e.ID, e.Target),
			})
		}
	}
	return diags
}

func ruleDisclosureScopeValid(doc *model.Document, ds DataSource) []Diagnostic {
	if !doc.DisclosureScope.Valid() {
		return []Diagnostic{{
			RuleID:   "disclosure-scope-valid",
			Severity: LevelError,
			Location: Location{HeaderField: "disclosure_scope"},
			Message:  fmt.Sprintf("unrecognized disclosure scope %q", doc.DisclosureScope),
		}}
	}
	return nil
}

// ruleIdentifierCheckDigit validates the check digit of every lei and
// gln identifier across nodes and edges. A syntactically malformed
// value (wrong length, bad character set, wrong check digit) is a
// level-1 structural error — the producer asserted a specific scheme
// and the value does not satisfy that scheme's own format.
func ruleIdentifierCheckDigit(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	check := func(loc Location, id model.Identifier) {
		switch id.Scheme {
		case "lei":
			if !checkdigit.ValidLEI(id.Value) {
				diags = append(diags, Diagnostic{
					RuleID:   "identifier-check-digit",
					Severity: LevelError,
					Location: loc,
					Message:  fmt.Sprintf("identifier %q fails the LEI check digit", id.Value),
				})
			}
		case "gln":
			if !checkdigit.ValidGLN(id.Value) {
				diags = append(diags, Diagnostic{
					RuleID:   "identifier-check-digit",
					Severity: LevelError,
					Location: loc,
					Message:  fmt.Sprintf("identifier %q fails the GLN check digit", id.Value),
				})
			}
		}
	}
	for _, n := range doc.Nodes {
		for i, id := range n.Identifiers {
			check(Location{NodeID: n.ID, IdentifierIndex: i}, id)
		}
	}
	for _, e := range doc.Edges {
		for i, id := range e.Identifiers {
			check(Location{EdgeID: e.ID, IdentifierIndex: i}, id)
		}
	}
	return diags
}
