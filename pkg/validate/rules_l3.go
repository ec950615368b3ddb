package validate

import (
	"fmt"

	"omtsf/pkg/model"
)

func l3Rules() []Rule {
	return []Rule{
		newRule("lei-status-enrichment", LevelInfo, ruleLEIStatusEnrichment),
		newRule("nat-reg-enrichment", LevelInfo, ruleNatRegEnrichment),
		newRule("ownership-percentage-sum", LevelInfo, ruleOwnershipPercentageSum),
		newRule("legal-parentage-acyclic", LevelInfo, ruleLegalParentageAcyclic),
	}
}

// ruleLEIStatusEnrichment consults ds for every lei identifier's
// registration status, flagging one ds reports inactive/annulled. A
// ds with no answer (ok=false) is silently skipped, per DataSource's
// documented contract.
func ruleLEIStatusEnrichment(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if id.Scheme != "lei" {
			return
		}
		res, ok := ds.LEIStatus(id.Value)
		if ok && !res.Active {
			diags = append(diags, Diagnostic{
				RuleID: "lei-status-enrichment", Severity: LevelInfo,
				Location: loc, Message: fmt.Sprintf("LEI %q has registration status %q", id.Value, res.Status),
			})
		}
	})
	return diags
}

func ruleNatRegEnrichment(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if id.Scheme != "nat-reg" || id.Authority == nil {
			return
		}
		res, ok := ds.NatRegLookup(*id.Authority, id.Value)
		if ok && !res.Active {
			diags = append(diags, Diagnostic{
				RuleID: "nat-reg-enrichment", Severity: LevelInfo,
				Location: loc, Message: fmt.Sprintf("national registry entry %q:%q is not active", *id.Authority, id.Value),
			})
		}
	})
	return diags
}

// ruleOwnershipPercentageSum flags a target node whose incoming
// ownership edges sum to more than 100%.
func ruleOwnershipPercentageSum(doc *model.Document, ds DataSource) []Diagnostic {
	sums := make(map[string]float64)
	for _, e := range doc.Edges {
		if e.Type != model.EdgeTypeOwnership || e.Properties.Percentage == nil {
			continue
		}
		sums[e.Target] += *e.Properties.Percentage
	}
	var diags []Diagnostic
	for target, sum := range sums {
		if sum > 100 {
			diags = append(diags, Diagnostic{
				RuleID: "ownership-percentage-sum", Severity: LevelInfo,
				Location: Location{NodeID: target},
				Message:  fmt.Sprintf("incoming ownership percentages for %q sum to %.2f, exceeding 100", target, sum),
			})
		}
	}
	return diags
}

// ruleLegalParentageAcyclic walks the legal_parentage subgraph with an
// iterative, explicit-stack DFS (no recursion, so a pathological input
// cannot blow the Go call stack) and reports one diagnostic per back
// edge it finds, located at the node that back edge returns to;
// legal_parentage must form a forest.
func ruleLegalParentageAcyclic(doc *model.Document, ds DataSource) []Diagnostic {
	adj := make(map[string][]string)
	for _, e := range doc.Edges {
		if e.Type == model.EdgeTypeLegalParentage {
			adj[e.Source] = append(adj[e.Source], e.Target)
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)
	var diags []Diagnostic

	type frame struct {
		node string
		next int
	}
	for _, n := range doc.Nodes {
		if color[n.ID] != white {
			continue
		}
		stack := []frame{{node: n.ID}}
		color[n.ID] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(adj[top.node]) {
				child := adj[top.node][top.next]
				top.next++
				switch color[child] {
				case white:
					color[child] = gray
					stack = append(stack, frame{node: child})
				case gray:
					diags = append(diags, Diagnostic{
						RuleID: "legal-parentage-acyclic", Severity: LevelInfo,
						Location: Location{NodeID: child},
						Message:  fmt.Sprintf("legal_parentage edges form a cycle through node %q", child),
					})
				}
			} else {
				color[top.node] = black
				stack = stack[:len(stack)-1]
			}
		}
	}
	return diags
}
