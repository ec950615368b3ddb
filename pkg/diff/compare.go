package diff

import (
	"sort"

	"github.com/google/go-cmp/cmp"

	"omtsf/pkg/identity"
	"omtsf/pkg/model"
)

func authorityOf(id model.Identifier) string {
	if id.Authority == nil {
		return ""
	}
	return *id.Authority
}

// diffIdentifiers implements spec.md §4.8's identifier set diff: set
// diff by canonical key, with field-level diffs for identifiers
// present on both sides under the same key.
func diffIdentifiers(a, b []model.Identifier) []FieldDiff {
	byCanonA := map[string]model.Identifier{}
	for _, id := range a {
		byCanonA[identity.Canonical(id.Scheme, id.Value, authorityOf(id))] = id
	}
	byCanonB := map[string]model.Identifier{}
	for _, id := range b {
		byCanonB[identity.Canonical(id.Scheme, id.Value, authorityOf(id))] = id
	}

	var diffs []FieldDiff
	keys := unionKeys(byCanonA, byCanonB)
	for _, k := range keys {
		aid, inA := byCanonA[k]
		bid, inB := byCanonB[k]
		switch {
		case inA && !inB:
			diffs = append(diffs, FieldDiff{Field: "identifiers[" + k + "]", Before: aid, After: nil})
		case !inA && inB:
			diffs = append(diffs, FieldDiff{Field: "identifiers[" + k + "]", Before: nil, After: bid})
		default:
			if !cmp.Equal(aid, bid) {
				diffs = append(diffs, FieldDiff{Field: "identifiers[" + k + "]", Before: aid, After: bid})
			}
		}
	}
	return diffs
}

func unionKeys[V any](a, b map[string]V) []string {
	seen := map[string]bool{}
	var keys []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// diffLabels implements spec.md §4.8's label set diff: a {key,value}
// tuple set, where a value change is a removal paired with an
// addition rather than a modification in place.
func diffLabels(a, b []model.Label) []FieldDiff {
	inB := make([]bool, len(b))
	var diffs []FieldDiff
	for _, la := range a {
		matched := false
		for i, lb := range b {
			if !inB[i] && la.Equal(lb) {
				inB[i] = true
				matched = true
				break
			}
		}
		if !matched {
			diffs = append(diffs, FieldDiff{Field: "labels[" + la.Key + "]", Before: la, After: nil})
		}
	}
	for i, lb := range b {
		if !inB[i] {
			diffs = append(diffs, FieldDiff{Field: "labels[" + lb.Key + "]", Before: nil, After: lb})
		}
	}
	return diffs
}

func diffOptionalString(field string, a, b model.Optional[string]) []FieldDiff {
	if a.IsAbsent() && b.IsAbsent() {
		return nil
	}
	if a.IsNull() && b.IsNull() {
		return nil
	}
	if av, aok := a.Get(); aok {
		if bv, bok := b.Get(); bok && av == bv {
			return nil
		}
	}
	return []FieldDiff{{Field: field, Before: optionalRepr(a), After: optionalRepr(b)}}
}

func optionalRepr(o model.Optional[string]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	if o.IsNull() {
		return "null"
	}
	return nil
}

func diffScalarPtr(field string, a, b *string) []FieldDiff {
	var av, bv any
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	if scalarEqual(field, av, bv) {
		return nil
	}
	return []FieldDiff{{Field: field, Before: av, After: bv}}
}

func diffFloatPtr(field string, a, b *float64) []FieldDiff {
	var av, bv any
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	if scalarEqual(field, av, bv) {
		return nil
	}
	return []FieldDiff{{Field: field, Before: av, After: bv}}
}

func diffBoolPtr(field string, a, b *bool) []FieldDiff {
	if (a == nil) != (b == nil) || (a != nil && *a != *b) {
		var av, bv any
		if a != nil {
			av = *a
		}
		if b != nil {
			bv = *b
		}
		return []FieldDiff{{Field: field, Before: av, After: bv}}
	}
	return nil
}

// diffNested compares a nested structured value (data_quality, geo) as
// a whole: presence-vs-absence is reported as a whole-object delta,
// and otherwise a structural comparison decides equality.
func diffNested(field string, a, b any) []FieldDiff {
	if a == nil && b == nil {
		return nil
	}
	if (a == nil) != (b == nil) {
		return []FieldDiff{{Field: field, Before: a, After: b}}
	}
	if cmp.Equal(a, b) {
		return nil
	}
	return []FieldDiff{{Field: field, Before: a, After: b}}
}

// diffExtra compares unknown fields key by key using the scalar rules.
func diffExtra(field string, a, b map[string]any) []FieldDiff {
	var diffs []FieldDiff
	for _, k := range unionKeys(a, b) {
		av, aok := a[k]
		bv, bok := b[k]
		if aok && bok && scalarEqual(k, av, bv) {
			continue
		}
		var before, after any
		if aok {
			before = av
		}
		if bok {
			after = bv
		}
		diffs = append(diffs, FieldDiff{Field: field + "." + k, Before: before, After: after})
	}
	return diffs
}

// CompareNodes returns every field-level difference between a and b,
// honoring filter's ignored-field list.
func CompareNodes(a, b model.Node, filter Filter) []FieldDiff {
	var diffs []FieldDiff
	add := func(field string, ds []FieldDiff) {
		if filter.fieldIgnored(field) {
			return
		}
		diffs = append(diffs, ds...)
	}

	if a.Type != b.Type {
		add("type", []FieldDiff{{Field: "type", Before: a.Type, After: b.Type}})
	}
	add("identifiers", diffIdentifiers(a.Identifiers, b.Identifiers))
	add("labels", diffLabels(a.Labels, b.Labels))
	add("name", diffScalarPtr("name", a.Name, b.Name))
	add("jurisdiction", diffScalarPtr("jurisdiction", a.Jurisdiction, b.Jurisdiction))
	add("status", diffScalarPtr("status", a.Status, b.Status))
	add("operator_ref", diffScalarPtr("operator_ref", a.OperatorRef, b.OperatorRef))
	add("address", diffScalarPtr("address", a.Address, b.Address))
	add("commodity_code", diffScalarPtr("commodity_code", a.CommodityCode, b.CommodityCode))
	add("attestation_issuer", diffScalarPtr("attestation_issuer", a.AttestationIssuer, b.AttestationIssuer))
	add("attestation_method", diffScalarPtr("attestation_method", a.AttestationMethod, b.AttestationMethod))
	add("attestation_scope", diffScalarPtr("attestation_scope", a.AttestationScope, b.AttestationScope))
	add("consignment_ref", diffScalarPtr("consignment_ref", a.ConsignmentRef, b.ConsignmentRef))
	add("consignment_unit", diffScalarPtr("consignment_unit", a.ConsignmentUnit, b.ConsignmentUnit))
	add("consignment_description", diffScalarPtr("consignment_description", a.ConsignmentDescription, b.ConsignmentDescription))
	add("consignment_quantity", diffFloatPtr("consignment_quantity", a.ConsignmentQuantity, b.ConsignmentQuantity))
	add("valid_to", diffOptionalString("valid_to", a.ValidTo, b.ValidTo))
	add("geo", diffNested("geo", a.Geo, b.Geo))
	add("data_quality", diffNested("data_quality", derefDQ(a.DataQuality), derefDQ(b.DataQuality)))
	add("extra", diffExtra("extra", a.Extra, b.Extra))

	return diffs
}

// CompareEdges returns every field-level difference between a and b's
// properties, honoring filter's ignored-field list.
func CompareEdges(a, b model.Edge, filter Filter) []FieldDiff {
	var diffs []FieldDiff
	add := func(field string, ds []FieldDiff) {
		if filter.fieldIgnored(field) {
			return
		}
		diffs = append(diffs, ds...)
	}

	add("identifiers", diffIdentifiers(a.Identifiers, b.Identifiers))
	pa, pb := a.Properties, b.Properties
	add("labels", diffLabels(pa.Labels, pb.Labels))
	add("percentage", diffFloatPtr("percentage", pa.Percentage, pb.Percentage))
	add("direct", diffBoolPtr("direct", pa.Direct, pb.Direct))
	add("control_type", diffScalarPtr("control_type", pa.ControlType, pb.ControlType))
	add("consolidation_basis", diffScalarPtr("consolidation_basis", pa.ConsolidationBasis, pb.ConsolidationBasis))
	add("event_type", diffScalarPtr("event_type", pa.EventType, pb.EventType))
	add("effective_date", diffScalarPtr("effective_date", pa.EffectiveDate, pb.EffectiveDate))
	add("commodity", diffScalarPtr("commodity", pa.Commodity, pb.Commodity))
	add("contract_ref", diffScalarPtr("contract_ref", pa.ContractRef, pb.ContractRef))
	add("service_type", diffScalarPtr("service_type", pa.ServiceType, pb.ServiceType))
	add("scope", diffScalarPtr("scope", pa.Scope, pb.Scope))
	add("valid_from", diffScalarPtr("valid_from", pa.ValidFrom, pb.ValidFrom))
	add("valid_to", diffOptionalString("valid_to", pa.ValidTo, pb.ValidTo))
	add("confidence", diffConfidence(pa.Confidence, pb.Confidence))
	add("annual_value", diffFloatPtr("annual_value", pa.AnnualValue, pb.AnnualValue))
	add("value_currency", diffScalarPtr("value_currency", pa.ValueCurrency, pb.ValueCurrency))
	add("volume", diffFloatPtr("volume", pa.Volume, pb.Volume))
	add("data_quality", diffNested("data_quality", derefDQ(pa.DataQuality), derefDQ(pb.DataQuality)))
	add("extra", diffExtra("extra", pa.Extra, pb.Extra))

	return diffs
}

func derefDQ(d *model.DataQuality) any {
	if d == nil {
		return nil
	}
	return *d
}

func diffConfidence(a, b *model.Confidence) []FieldDiff {
	var av, bv any
	if a != nil {
		av = string(*a)
	}
	if b != nil {
		bv = string(*b)
	}
	if scalarEqual("confidence", av, bv) {
		return nil
	}
	return []FieldDiff{{Field: "confidence", Before: av, After: bv}}
}
