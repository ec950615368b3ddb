package redact

import "omtsf/pkg/model"

const schemeInternal = "internal"

// effectiveIdentifierSensitivity implements spec.md §4.6's identifier
// sensitivity table: an explicit value always wins; otherwise a person
// node's identifiers are confidential; otherwise the scheme decides.
func effectiveIdentifierSensitivity(id model.Identifier, nodeType model.NodeType) model.Sensitivity {
	if id.Sensitivity != nil {
		return *id.Sensitivity
	}
	if nodeType == model.NodeTypePerson {
		return model.SensitivityConfidential
	}
	switch id.Scheme {
	case "lei", "duns", "gln":
		return model.SensitivityPublic
	case "nat-reg", "vat", schemeInternal:
		return model.SensitivityRestricted
	default:
		return model.SensitivityPublic
	}
}

// defaultPropertySensitivity is the fallback table spec.md §4.6 names
// for edge properties carrying no explicit override.
func defaultPropertySensitivity(edgeType model.EdgeType, property string) model.Sensitivity {
	switch property {
	case "contract_ref", "annual_value", "value_currency", "volume":
		return model.SensitivityRestricted
	case "percentage":
		if edgeType == model.EdgeTypeBeneficialOwnership {
			return model.SensitivityConfidential
		}
		return model.SensitivityPublic
	default:
		return model.SensitivityPublic
	}
}

// effectivePropertySensitivity consults props' override map first, then
// falls back to the default table.
func effectivePropertySensitivity(props model.EdgeProperties, edgeType model.EdgeType, property string) model.Sensitivity {
	if s, ok := props.PropertySensitivity[property]; ok {
		return s
	}
	return defaultPropertySensitivity(edgeType, property)
}

// maxAllowedSensitivity is the scope gate's threshold: the most
// sensitive value a given scope may still carry.
func maxAllowedSensitivity(scope model.DisclosureScope) model.Sensitivity {
	switch scope {
	case model.ScopePartner:
		return model.SensitivityRestricted
	case model.ScopePublic:
		return model.SensitivityPublic
	default: // internal, or unset
		return model.SensitivityConfidential
	}
}

func scopeAllows(scope model.DisclosureScope, s model.Sensitivity) bool {
	return !s.Exceeds(maxAllowedSensitivity(scope))
}
