package redact

import "omtsf/pkg/model"

// namedEdgeProperties are the keys property stripping considers, in the
// same order spec.md §3 lists EdgeProperties' fields.
var namedEdgeProperties = []string{
	"percentage", "direct", "control_type", "consolidation_basis",
	"event_type", "effective_date", "commodity", "contract_ref",
	"service_type", "scope", "valid_from", "valid_to", "confidence",
	"annual_value", "value_currency", "volume",
}

// stripEdgeProperties removes every named and unknown property whose
// effective sensitivity exceeds scope's threshold (spec.md §4.6). At
// public scope the override map itself is also dropped.
func stripEdgeProperties(props model.EdgeProperties, edgeType model.EdgeType, scope model.DisclosureScope) model.EdgeProperties {
	out := props

	for _, name := range namedEdgeProperties {
		if scopeAllows(scope, effectivePropertySensitivity(props, edgeType, name)) {
			continue
		}
		clearNamedProperty(&out, name)
	}

	if len(props.Extra) > 0 {
		extra := make(map[string]any, len(props.Extra))
		for k, v := range props.Extra {
			if s, ok := props.PropertySensitivity[k]; ok && !scopeAllows(scope, s) {
				continue
			}
			extra[k] = v
		}
		if len(extra) == 0 {
			extra = nil
		}
		out.Extra = extra
	}

	if scope == model.ScopePublic {
		out.PropertySensitivity = nil
	}

	return out
}

func clearNamedProperty(p *model.EdgeProperties, name string) {
	switch name {
	case "percentage":
		p.Percentage = nil
	case "direct":
		p.Direct = nil
	case "control_type":
		p.ControlType = nil
	case "consolidation_basis":
		p.ConsolidationBasis = nil
	case "event_type":
		p.EventType = nil
	case "effective_date":
		p.EffectiveDate = nil
	case "commodity":
		p.Commodity = nil
	case "contract_ref":
		p.ContractRef = nil
	case "service_type":
		p.ServiceType = nil
	case "scope":
		p.Scope = nil
	case "valid_from":
		p.ValidFrom = nil
	case "valid_to":
		p.ValidTo = model.Absent[string]()
	case "confidence":
		p.Confidence = nil
	case "annual_value":
		p.AnnualValue = nil
	case "value_currency":
		p.ValueCurrency = nil
	case "volume":
		p.Volume = nil
	}
}
