package validate

import (
	"fmt"

	"omtsf/pkg/model"
)

// reassignableSchemes names identifier schemes whose value is
// periodically reassigned to a different entity by the issuing
// registry (unlike lei, which is permanently retired, never
// reassigned). Spec.md §4.2's L2 completeness rule expects these to
// carry temporal bounds so a reader can tell which entity held the
// value at a given point in time.
var reassignableSchemes = map[string]bool{
	"duns": true,
	"gln":  true,
}

func l2Rules() []Rule {
	return []Rule{
		newRule("org-has-external-identifier", LevelWarning, ruleOrgHasExternalIdentifier),
		newRule("ownership-has-valid-from", LevelWarning, ruleOwnershipHasValidFrom),
		newRule("jurisdiction-iso3166", LevelWarning, ruleJurisdictionISO3166),
		newRule("reassignable-identifier-temporal", LevelWarning, ruleReassignableIdentifierTemporal),
		newRule("verified-identifier-has-date", LevelWarning, ruleVerifiedIdentifierHasDate),
		newRule("identifier-authority-gleif-ra", LevelWarning, ruleIdentifierAuthorityGLEIFRA),
	}
}

func ruleOrgHasExternalIdentifier(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	for _, n := range doc.Nodes {
		if n.Type != model.NodeTypeOrganization {
			continue
		}
		has := false
		for _, id := range n.Identifiers {
			if id.Scheme != "internal" {
				has = true
				break
			}
		}
		if !has {
			diags = append(diags, Diagnostic{
				RuleID: "org-has-external-identifier", Severity: LevelWarning,
				Location: Location{NodeID: n.ID},
				Message:  fmt.Sprintf("organization %q carries no non-internal identifier", n.ID),
			})
		}
	}
	return diags
}

func ruleOwnershipHasValidFrom(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	for _, e := range doc.Edges {
		if e.Type == model.EdgeTypeOwnership && e.Properties.ValidFrom == nil {
			diags = append(diags, Diagnostic{
				RuleID: "ownership-has-valid-from", Severity: LevelWarning,
				Location: Location{EdgeID: e.ID, EdgeField: "valid_from"},
				Message:  fmt.Sprintf("ownership edge %q has no valid_from", e.ID),
			})
		}
	}
	return diags
}

func ruleJurisdictionISO3166(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	for _, n := range doc.Nodes {
		if n.Jurisdiction == nil {
			continue
		}
		if !validISO3166Alpha2(*n.Jurisdiction) {
			diags = append(diags, Diagnostic{
				RuleID: "jurisdiction-iso3166", Severity: LevelWarning,
				Location: Location{NodeID: n.ID, NodeField: "jurisdiction"},
				Message:  fmt.Sprintf("jurisdiction %q is not a recognized ISO 3166-1 alpha-2 code", *n.Jurisdiction),
			})
		}
	}
	return diags
}

func ruleReassignableIdentifierTemporal(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if !reassignableSchemes[id.Scheme] {
			return
		}
		if id.ValidFrom == nil && id.ValidTo.IsAbsent() {
			diags = append(diags, Diagnostic{
				RuleID: "reassignable-identifier-temporal", Severity: LevelWarning,
				Location: loc, Message: fmt.Sprintf("reassignable identifier %q:%q carries no temporal bounds", id.Scheme, id.Value),
			})
		}
	})
	return diags
}

func ruleVerifiedIdentifierHasDate(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if id.VerificationStatus != nil && *id.VerificationStatus == model.VerificationVerified && id.VerificationDate == nil {
			diags = append(diags, Diagnostic{
				RuleID: "verified-identifier-has-date", Severity: LevelWarning,
				Location: loc, Message: fmt.Sprintf("verified identifier %q:%q carries no verification_date", id.Scheme, id.Value),
			})
		}
	})
	return diags
}

func ruleIdentifierAuthorityGLEIFRA(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if id.Scheme != "lei" || id.Authority == nil {
			return
		}
		if !validGLEIFRegistrationAuthority(*id.Authority) {
			diags = append(diags, Diagnostic{
				RuleID: "identifier-authority-gleif-ra", Severity: LevelWarning,
				Location: loc, Message: fmt.Sprintf("authority %q is not a recognized GLEIF registration authority code", *id.Authority),
			})
		}
	})
	return diags
}
