package validate

import (
	"fmt"
	"time"

	"omtsf/pkg/model"
)

const dateLayout = "2006-01-02"

// identifierRules returns the level-1 checks applied to every
// identifier on every node and edge. The shape pre-check does not
// descend into identifiers, so identifier defects are reported by these
// rules (and the check-digit rule), each at the identifier's location.
func identifierRules() []Rule {
	return []Rule{
		newRule("identifier-scheme-value-nonempty", LevelError, ruleIdentifierSchemeValueNonempty),
		newRule("identifier-authority-required", LevelError, ruleIdentifierAuthorityRequired),
		newRule("identifier-duns-format", LevelError, ruleIdentifierDUNSFormat),
		newRule("identifier-date-shape-order", LevelError, ruleIdentifierDateShapeOrder),
		newRule("identifier-sensitivity-valid", LevelError, ruleIdentifierSensitivityValid),
		newRule("identifier-no-duplicate-tuple", LevelError, ruleIdentifierNoDuplicateTuple),
	}
}

// forEachIdentifier walks every identifier on every node and edge,
// invoking fn with the location it should be reported at.
func forEachIdentifier(doc *model.Document, fn func(loc Location, id model.Identifier)) {
	for _, n := range doc.Nodes {
		for i, id := range n.Identifiers {
			fn(Location{NodeID: n.ID, IdentifierIndex: i}, id)
		}
	}
	for _, e := range doc.Edges {
		for i, id := range e.Identifiers {
			fn(Location{EdgeID: e.ID, IdentifierIndex: i}, id)
		}
	}
}

func ruleIdentifierSchemeValueNonempty(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if id.Scheme == "" {
			diags = append(diags, Diagnostic{
				RuleID: "identifier-scheme-value-nonempty", Severity: LevelError,
				Location: loc, Message: "identifier scheme is empty",
			})
		}
		if id.Value == "" {
			diags = append(diags, Diagnostic{
				RuleID: "identifier-scheme-value-nonempty", Severity: LevelError,
				Location: loc, Message: "identifier value is empty",
			})
		}
	})
	return diags
}

// schemeRequiresAuthority names the schemes whose value is only unique within
// a jurisdiction and therefore must carry an authority, mirroring
// pkg/identity's canonical-form rule.
func schemeRequiresAuthority(scheme string) bool {
	return scheme == "nat-reg" || scheme == "vat"
}

func ruleIdentifierAuthorityRequired(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if schemeRequiresAuthority(id.Scheme) && (id.Authority == nil || *id.Authority == "") {
			diags = append(diags, Diagnostic{
				RuleID: "identifier-authority-required", Severity: LevelError,
				Location: loc,
				Message:  fmt.Sprintf("scheme %q requires an authority", id.Scheme),
			})
		}
	})
	return diags
}

func ruleIdentifierDUNSFormat(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if id.Scheme != "duns" {
			return
		}
		if !isNineDigits(id.Value) {
			diags = append(diags, Diagnostic{
				RuleID: "identifier-duns-format", Severity: LevelError,
				Location: loc,
				Message:  fmt.Sprintf("DUNS value %q does not match ^[0-9]{9}$", id.Value),
			})
		}
	})
	return diags
}

func isNineDigits(s string) bool {
	if len(s) != 9 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func ruleIdentifierDateShapeOrder(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		var from, to time.Time
		var haveFrom, haveTo bool
		if id.ValidFrom != nil {
			t, err := time.Parse(dateLayout, *id.ValidFrom)
			if err != nil {
				diags = append(diags, Diagnostic{
					RuleID: "identifier-date-shape-order", Severity: LevelError,
					Location: loc, Message: fmt.Sprintf("valid_from %q is not a YYYY-MM-DD date", *id.ValidFrom),
				})
			} else {
				from, haveFrom = t, true
			}
		}
		if v, ok := id.ValidTo.Get(); ok {
			t, err := time.Parse(dateLayout, v)
			if err != nil {
				diags = append(diags, Diagnostic{
					RuleID: "identifier-date-shape-order", Severity: LevelError,
					Location: loc, Message: fmt.Sprintf("valid_to %q is not a YYYY-MM-DD date", v),
				})
			} else {
				to, haveTo = t, true
			}
		}
		if id.VerificationDate != nil {
			if _, err := time.Parse(dateLayout, *id.VerificationDate); err != nil {
				diags = append(diags, Diagnostic{
					RuleID: "identifier-date-shape-order", Severity: LevelError,
					Location: loc, Message: fmt.Sprintf("verification_date %q is not a YYYY-MM-DD date", *id.VerificationDate),
				})
			}
		}
		if haveFrom && haveTo && to.Before(from) {
			diags = append(diags, Diagnostic{
				RuleID: "identifier-date-shape-order", Severity: LevelError,
				Location: loc, Message: fmt.Sprintf("valid_to %s precedes valid_from %s", to.Format(dateLayout), from.Format(dateLayout)),
			})
		}
	})
	return diags
}

func ruleIdentifierSensitivityValid(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	forEachIdentifier(doc, func(loc Location, id model.Identifier) {
		if id.Sensitivity != nil && !id.Sensitivity.Valid() {
			diags = append(diags, Diagnostic{
				RuleID: "identifier-sensitivity-valid", Severity: LevelError,
				Location: loc, Message: fmt.Sprintf("sensitivity %q is not recognized", *id.Sensitivity),
			})
		}
	})
	return diags
}

// ruleIdentifierNoDuplicateTuple rejects two identifiers on the same
// node sharing {scheme, value, authority} verbatim (spec.md §4.2). This
// is a stricter, exact-tuple check than the canonical-form matching
// pkg/identity performs for cross-document entity resolution — it only
// catches a single node literally repeating itself.
func ruleIdentifierNoDuplicateTuple(doc *model.Document, ds DataSource) []Diagnostic {
	var diags []Diagnostic
	check := func(loc func(i int) Location, ids []model.Identifier) {
		seen := make(map[string]int, len(ids))
		for i, id := range ids {
			auth := ""
			if id.Authority != nil {
				auth = *id.Authority
			}
			key := id.Scheme + "\x00" + id.Value + "\x00" + auth
			seen[key]++
			if seen[key] == 2 {
				diags = append(diags, Diagnostic{
					RuleID: "identifier-no-duplicate-tuple", Severity: LevelError,
					Location: loc(i), Message: fmt.Sprintf("duplicate identifier {%s, %s, %s}", id.Scheme, id.Value, auth),
				})
			}
		}
	}
	for _, n := range doc.Nodes {
		n := n
		check(func(i int) Location { return Location{NodeID: n.ID, IdentifierIndex: i} }, n.Identifiers)
	}
	for _, e := range doc.Edges {
		e := e
		check(func(i int) Location { return Location{EdgeID: e.ID, IdentifierIndex: i} }, e.Identifiers)
	}
	return diags
}
