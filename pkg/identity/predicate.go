package identity

import (
	"math"
	"strings"

	"omtsf/pkg/model"
)

// IdentifiersMatch implements the node identity predicate (spec.md
// §4.5): two identifier records denote the same real-world entity when
// neither scheme is internal, the schemes are equal (case-sensitive),
// the trimmed values are equal (case-sensitive), any authorities
// present agree case-insensitively, and their validity intervals
// overlap (or either is open-ended). The predicate is symmetric by
// construction — swapping a and b cannot change the result.
func IdentifiersMatch(a, b model.Identifier) bool {
	if strings.EqualFold(a.Scheme, schemeInternal) || strings.EqualFold(b.Scheme, schemeInternal) {
		return false
	}
	if a.Scheme != b.Scheme {
		return false
	}
	if strings.TrimSpace(a.Value) != strings.TrimSpace(b.Value) {
		return false
	}
	if a.Authority != nil && b.Authority != nil && !strings.EqualFold(*a.Authority, *b.Authority) {
		return false
	}
	return TemporalOverlap(a.ValidFrom, a.ValidTo, b.ValidFrom, b.ValidTo)
}

// TemporalOverlap reports whether two inclusive validity intervals
// overlap; an interval ending on the date another begins overlaps it. A nil from bound is treated as unbounded in the past; an
// absent or explicitly null to bound is treated as unbounded in the
// future (an explicit null is an asserted "no expiration", which for
// overlap purposes behaves identically to never having recorded one).
// Dates are compared as ISO-8601 strings, which sort correctly in
// plain byte order.
func TemporalOverlap(aFrom *string, aTo model.Optional[string], bFrom *string, bTo model.Optional[string]) bool {
	aEnd, aOK := aTo.Get()
	bEnd, bOK := bTo.Get()

	if bFrom != nil && aOK && aEnd < *bFrom {
		return false
	}
	if aFrom != nil && bOK && bEnd < *aFrom {
		return false
	}
	return true
}

// EdgePropertiesMatch implements the type-specific slice of the edge
// identity predicate (spec.md §4.5's table): given two edges already
// known to share type t and to have endpoints in the same union-find
// groups, and known to carry no shared external identifier, it reports
// whether their type-specific identity properties agree. same_as is
// never passed here — callers must reject same_as before calling.
func EdgePropertiesMatch(t model.EdgeType, a, b model.EdgeProperties) bool {
	switch t {
	case model.EdgeTypeOwnership:
		return floatPtrEqual(a.Percentage, b.Percentage) && boolPtrEqual(a.Direct, b.Direct)
	case model.EdgeTypeOperationalControl:
		return strPtrEqual(a.ControlType, b.ControlType)
	case model.EdgeTypeLegalParentage:
		return strPtrEqual(a.ConsolidationBasis, b.ConsolidationBasis)
	case model.EdgeTypeFormerIdentity:
		return strPtrEqual(a.EventType, b.EventType) && strPtrEqual(a.EffectiveDate, b.EffectiveDate)
	case model.EdgeTypeBeneficialOwnership:
		return strPtrEqual(a.ControlType, b.ControlType) && floatPtrEqual(a.Percentage, b.Percentage)
	case model.EdgeTypeSupplies, model.EdgeTypeSubcontracts, model.EdgeTypeSellsTo:
		return strPtrEqual(a.Commodity, b.Commodity) && strPtrEqual(a.ContractRef, b.ContractRef)
	case model.EdgeTypeTolls, model.EdgeTypeBrokers:
		return strPtrEqual(a.Commodity, b.Commodity)
	case model.EdgeTypeDistributes:
		return strPtrEqual(a.ServiceType, b.ServiceType)
	case model.EdgeTypeAttestedBy:
		return strPtrEqual(a.Scope, b.Scope)
	case model.EdgeTypeOperates, model.EdgeTypeProduces, model.EdgeTypeComposedOf:
		// Endpoints and type alone carry identity for these types.
		return true
	default:
		// Extension types carry no known identity-property table;
		// endpoints and type alone decide identity, same as the
		// no-property core types above.
		return true
	}
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// floatPtrEqual compares by IEEE bit pattern, per spec.md §4.5's
// floating-point equality rule for merge/diff identity checks.
func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return math.Float64bits(*a) == math.Float64bits(*b)
}

// SharedIdentifier reports whether a and b share at least one
// identifier by canonical form, using IdentifiersMatch's stricter
// per-pair rules rather than bare canonical-string equality so that
// trimmed values and open-ended intervals are honored.
func SharedIdentifier(a, b []model.Identifier) bool {
	for _, x := range a {
		for _, y := range b {
			if IdentifiersMatch(x, y) {
				return true
			}
		}
	}
	return false
}

// EdgesMatch implements the full edge identity predicate: same_as
// edges never match; otherwise two edges (already known to resolve to
// the same (source group, target group, type) bucket) match when they
// share an external identifier, or neither carries one and their
// type-specific identity properties agree.
func EdgesMatch(t model.EdgeType, aIdentifiers, bIdentifiers []model.Identifier, aProps, bProps model.EdgeProperties) bool {
	if t == model.EdgeTypeSameAs {
		return false
	}
	if len(aIdentifiers) > 0 || len(bIdentifiers) > 0 {
		return SharedIdentifier(aIdentifiers, bIdentifiers)
	}
	return EdgePropertiesMatch(t, aProps, bProps)
}
