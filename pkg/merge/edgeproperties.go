package merge

import (
	"sort"

	"omtsf/pkg/model"
)

// mergeEdgeProperties applies the same scalar/set merge rules used for
// nodes to an edge group's properties (spec.md §4.5 step 7).
func mergeEdgeProperties(bucket []rewrittenEdge, memberIdx []int) model.EdgeProperties {
	get := func(fn func(model.EdgeProperties) any) []scalarSource {
		out := make([]scalarSource, 0, len(memberIdx))
		for _, idx := range memberIdx {
			re := bucket[idx]
			out = append(out, scalarSource{file: re.file, value: fn(re.edge.Properties)})
		}
		return out
	}

	conflicts := map[string]any{}
	var props model.EdgeProperties

	for _, idx := range memberIdx {
		for _, l := range bucket[idx].edge.Properties.Labels {
			dup := false
			for _, existing := range props.Labels {
				if existing.Equal(l) {
					dup = true
					break
				}
			}
			if !dup {
				props.Labels = append(props.Labels, l)
			}
		}
	}
	sort.Slice(props.Labels, func(i, j int) bool { return props.Labels[i].Less(props.Labels[j]) })

	if v, c := mergeScalar(get(func(p model.EdgeProperties) any {
		if p.DataQuality == nil {
			return nil
		}
		return *p.DataQuality
	})); v != nil {
		dq := v.(model.DataQuality)
		props.DataQuality = &dq
	} else {
		recordConflict(conflicts, "data_quality", c)
	}

	strField := func(name string, getter func(model.EdgeProperties) *string, setter func(*string)) {
		v, c := mergeScalar(get(func(p model.EdgeProperties) any { return derefStr(getter(p)) }))
		if v != nil {
			s := v.(string)
			setter(&s)
		} else {
			recordConflict(conflicts, name, c)
		}
	}
	strField("control_type", func(p model.EdgeProperties) *string { return p.ControlType }, func(s *string) { props.ControlType = s })
	strField("consolidation_basis", func(p model.EdgeProperties) *string { return p.ConsolidationBasis }, func(s *string) { props.ConsolidationBasis = s })
	strField("event_type", func(p model.EdgeProperties) *string { return p.EventType }, func(s *string) { props.EventType = s })
	strField("effective_date", func(p model.EdgeProperties) *string { return p.EffectiveDate }, func(s *string) { props.EffectiveDate = s })
	strField("commodity", func(p model.EdgeProperties) *string { return p.Commodity }, func(s *string) { props.Commodity = s })
	strField("contract_ref", func(p model.EdgeProperties) *string { return p.ContractRef }, func(s *string) { props.ContractRef = s })
	strField("service_type", func(p model.EdgeProperties) *string { return p.ServiceType }, func(s *string) { props.ServiceType = s })
	strField("scope", func(p model.EdgeProperties) *string { return p.Scope }, func(s *string) { props.Scope = s })
	strField("valid_from", func(p model.EdgeProperties) *string { return p.ValidFrom }, func(s *string) { props.ValidFrom = s })
	strField("value_currency", func(p model.EdgeProperties) *string { return p.ValueCurrency }, func(s *string) { props.ValueCurrency = s })

	floatField := func(name string, getter func(model.EdgeProperties) *float64, setter func(*float64)) {
		v, c := mergeScalar(get(func(p model.EdgeProperties) any { return derefFloat(getter(p)) }))
		if v != nil {
			f := v.(float64)
			setter(&f)
		} else {
			recordConflict(conflicts, name, c)
		}
	}
	floatField("percentage", func(p model.EdgeProperties) *float64 { return p.Percentage }, func(f *float64) { props.Percentage = f })
	floatField("annual_value", func(p model.EdgeProperties) *float64 { return p.AnnualValue }, func(f *float64) { props.AnnualValue = f })
	floatField("volume", func(p model.EdgeProperties) *float64 { return p.Volume }, func(f *float64) { props.Volume = f })

	if v, c := mergeScalar(get(func(p model.EdgeProperties) any { return derefBool(p.Direct) })); v != nil {
		bv := v.(bool)
		props.Direct = &bv
	} else {
		recordConflict(conflicts, "direct", c)
	}

	if v, c := mergeScalar(get(func(p model.EdgeProperties) any {
		if p.Confidence == nil {
			return nil
		}
		return string(*p.Confidence)
	})); v != nil {
		cv := model.Confidence(v.(string))
		props.Confidence = &cv
	} else {
		recordConflict(conflicts, "confidence", c)
	}

	validTo, vtConflict := mergeOptional(get(func(p model.EdgeProperties) any { return optionalValue(p.ValidTo) }))
	props.ValidTo = validTo
	recordConflict(conflicts, "valid_to", vtConflict)

	if len(conflicts) > 0 {
		props.Extra = map[string]any{"_conflicts": conflicts}
	}
	return props
}
