package model

// Edge is a typed, directed arc between two nodes: ownership,
// operational, supply, or attestation relationships, plus the special
// same_as linking type used for cross-file identity claims.
type Edge struct {
	ID     string   `validate:"required"`
	Type   EdgeType `validate:"required"`
	Source string   `validate:"required"`
	Target string   `validate:"required"`

	Identifiers []Identifier
	Properties  EdgeProperties
}

var edgeFields = []string{"id", "type", "source", "target", "identifiers", "properties"}

// MarshalJSON implements json.Marshaler.
func (e Edge) MarshalJSON() ([]byte, error) {
	fields := []field{
		{"id", e.ID},
		{"type", e.Type},
		{"source", e.Source},
		{"target", e.Target},
	}
	if len(e.Identifiers) > 0 {
		fields = append(fields, field{"identifiers", e.Identifiers})
	}
	if !e.Properties.isZero() {
		fields = append(fields, field{"properties", e.Properties})
	}
	return encodeOrderedJSON(fields, nil)
}

// MarshalCBOR implements cbor.Marshaler.
func (e Edge) MarshalCBOR() ([]byte, error) {
	fields := []field{
		{"id", e.ID},
		{"type", e.Type},
		{"source", e.Source},
		{"target", e.Target},
	}
	if len(e.Identifiers) > 0 {
		fields = append(fields, field{"identifiers", e.Identifiers})
	}
	if !e.Properties.isZero() {
		fields = append(fields, field{"properties", e.Properties})
	}
	return encodeCBORMap(fields, nil)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Edge) UnmarshalJSON(data []byte) error {
	raw, _, err := popKnownJSON(data, edgeFields)
	if err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		if err := jsonUnmarshalInto(v, &e.ID); err != nil {
			return err
		}
	}
	if v, ok := raw["type"]; ok {
		if err := jsonUnmarshalInto(v, &e.Type); err != nil {
			return err
		}
	}
	if v, ok := raw["source"]; ok {
		if err := jsonUnmarshalInto(v, &e.Source); err != nil {
			return err
		}
	}
	if v, ok := raw["target"]; ok {
		if err := jsonUnmarshalInto(v, &e.Target); err != nil {
			return err
		}
	}
	if v, ok := raw["identifiers"]; ok {
		if err := jsonUnmarshalInto(v, &e.Identifiers); err != nil {
			return err
		}
	}
	if v, ok := raw["properties"]; ok {
		if err := e.Properties.UnmarshalJSON(v); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (e *Edge) UnmarshalCBOR(data []byte) error {
	raw, _, err := popKnownCBOR(data, edgeFields)
	if err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		if err := cborDecMode.Unmarshal(v, &e.ID); err != nil {
			return err
		}
	}
	if v, ok := raw["type"]; ok {
		if err := cborDecMode.Unmarshal(v, &e.Type); err != nil {
			return err
		}
	}
	if v, ok := raw["source"]; ok {
		if err := cborDecMode.Unmarshal(v, &e.Source); err != nil {
			return err
		}
	}
	if v, ok := raw["target"]; ok {
		if err := cborDecMode.Unmarshal(v, &e.Target); err != nil {
			return err
		}
	}
	if v, ok := raw["identifiers"]; ok {
		if err := cborDecMode.Unmarshal(v, &e.Identifiers); err != nil {
			return err
		}
	}
	if v, ok := raw["properties"]; ok {
		if err := e.Properties.UnmarshalCBOR(v); err != nil {
			return err
		}
	}
	return nil
}

// EdgeProperties is the flat, type-specific attribute bag carried by an
// edge, plus data-quality and labels shared across all edge types
// (spec.md §3 "Edge").
type EdgeProperties struct {
	DataQuality *DataQuality
	Labels      []Label

	// ownership
	Percentage *float64
	Direct     *bool

	// operational_control / beneficial_ownership share the JSON key
	// control_type with disjoint variant sets per edge type; validation,
	// not the type system, enforces the per-type variant set (design
	// note §9).
	ControlType *string

	// legal_parentage
	ConsolidationBasis *string

	// former_identity
	EventType      *string
	EffectiveDate  *string

	// supplies / subcontracts / sells_to / tolls / brokers
	Commodity   *string
	ContractRef *string

	// distributes
	ServiceType *string

	// attested_by
	Scope *string

	// temporal bounds shared by several edge types (e.g. ownership)
	ValidFrom *string
	ValidTo   Optional[string]

	// same_as
	Confidence *Confidence

	// disclosure-sensitive commercial terms
	AnnualValue   *float64
	ValueCurrency *string
	Volume        *float64

	// PropertySensitivity overrides the default per-property sensitivity
	// table used by the redaction engine (spec.md §4.6), keyed by
	// property name. It is carried under the reserved extra key
	// "_property_sensitivity".
	PropertySensitivity map[string]Sensitivity

	Extra map[string]any
}

var edgePropertyFields = []string{
	"data_quality", "labels", "percentage", "direct", "control_type",
	"consolidation_basis", "event_type", "effective_date", "commodity",
	"contract_ref", "service_type", "scope", "valid_from", "valid_to",
	"confidence", "annual_value", "value_currency", "volume",
	"_property_sensitivity",
}

func (p EdgeProperties) isZero() bool {
	return p.DataQuality == nil && len(p.Labels) == 0 && p.Percentage == nil &&
		p.Direct == nil && p.ControlType == nil && p.ConsolidationBasis == nil &&
		p.EventType == nil && p.EffectiveDate == nil && p.Commodity == nil &&
		p.ContractRef == nil && p.ServiceType == nil && p.Scope == nil &&
		p.ValidFrom == nil && p.ValidTo.IsAbsent() && p.Confidence == nil &&
		p.AnnualValue == nil && p.ValueCurrency == nil && p.Volume == nil &&
		len(p.PropertySensitivity) == 0 && len(p.Extra) == 0
}

func (p EdgeProperties) jsonFields() []field {
	var fields []field
	if p.DataQuality != nil {
		fields = append(fields, field{"data_quality", *p.DataQuality})
	}
	if len(p.Labels) > 0 {
		fields = append(fields, field{"labels", p.Labels})
	}
	if p.Percentage != nil {
		fields = append(fields, field{"percentage", *p.Percentage})
	}
	if p.Direct != nil {
		fields = append(fields, field{"direct", *p.Direct})
	}
	if p.ControlType != nil {
		fields = append(fields, field{"control_type", *p.ControlType})
	}
	if p.ConsolidationBasis != nil {
		fields = append(fields, field{"consolidation_basis", *p.ConsolidationBasis})
	}
	if p.EventType != nil {
		fields = append(fields, field{"event_type", *p.EventType})
	}
	if p.EffectiveDate != nil {
		fields = append(fields, field{"effective_date", *p.EffectiveDate})
	}
	if p.Commodity != nil {
		fields = append(fields, field{"commodity", *p.Commodity})
	}
	if p.ContractRef != nil {
		fields = append(fields, field{"contract_ref", *p.ContractRef})
	}
	if p.ServiceType != nil {
		fields = append(fields, field{"service_type", *p.ServiceType})
	}
	if p.Scope != nil {
		fields = append(fields, field{"scope", *p.Scope})
	}
	if p.ValidFrom != nil {
		fields = append(fields, field{"valid_from", *p.ValidFrom})
	}
	if !p.ValidTo.IsAbsent() {
		fields = append(fields, field{"valid_to", p.ValidTo})
	}
	if p.Confidence != nil {
		fields = append(fields, field{"confidence", *p.Confidence})
	}
	if p.AnnualValue != nil {
		fields = append(fields, field{"annual_value", *p.AnnualValue})
	}
	if p.ValueCurrency != nil {
		fields = append(fields, field{"value_currency", *p.ValueCurrency})
	}
	if p.Volume != nil {
		fields = append(fields, field{"volume", *p.Volume})
	}
	if len(p.PropertySensitivity) > 0 {
		fields = append(fields, field{"_property_sensitivity", p.PropertySensitivity})
	}
	return fields
}

// MarshalJSON implements json.Marshaler.
func (p EdgeProperties) MarshalJSON() ([]byte, error) {
	return encodeOrderedJSON(p.jsonFields(), p.Extra)
}

// MarshalCBOR implements cbor.Marshaler.
func (p EdgeProperties) MarshalCBOR() ([]byte, error) {
	return encodeCBORMap(p.jsonFields(), p.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *EdgeProperties) UnmarshalJSON(data []byte) error {
	raw, extra, err := popKnownJSON(data, edgePropertyFields)
	if err != nil {
		return err
	}
	get := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		return jsonUnmarshalInto(v, dst)
	}
	if err := get("data_quality", &p.DataQuality); err != nil {
		return err
	}
	if err := get("labels", &p.Labels); err != nil {
		return err
	}
	if err := get("percentage", &p.Percentage); err != nil {
		return err
	}
	if err := get("direct", &p.Direct); err != nil {
		return err
	}
	if err := get("control_type", &p.ControlType); err != nil {
		return err
	}
	if err := get("consolidation_basis", &p.ConsolidationBasis); err != nil {
		return err
	}
	if err := get("event_type", &p.EventType); err != nil {
		return err
	}
	if err := get("effective_date", &p.EffectiveDate); err != nil {
		return err
	}
	if err := get("commodity", &p.Commodity); err != nil {
		return err
	}
	if err := get("contract_ref", &p.ContractRef); err != nil {
		return err
	}
	if err := get("service_type", &p.ServiceType); err != nil {
		return err
	}
	if err := get("scope", &p.Scope); err != nil {
		return err
	}
	if err := get("valid_from", &p.ValidFrom); err != nil {
		return err
	}
	if v, ok := raw["valid_to"]; ok {
		if err := p.ValidTo.UnmarshalJSON(v); err != nil {
			return err
		}
	} else {
		p.ValidTo = Absent[string]()
	}
	if err := get("confidence", &p.Confidence); err != nil {
		return err
	}
	if err := get("annual_value", &p.AnnualValue); err != nil {
		return err
	}
	if err := get("value_currency", &p.ValueCurrency); err != nil {
		return err
	}
	if err := get("volume", &p.Volume); err != nil {
		return err
	}
	if err := get("_property_sensitivity", &p.PropertySensitivity); err != nil {
		return err
	}
	p.Extra = extra
	return nil
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (p *EdgeProperties) UnmarshalCBOR(data []byte) error {
	raw, extra, err := popKnownCBOR(data, edgePropertyFields)
	if err != nil {
		return err
	}
	get := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		return cborDecMode.Unmarshal(v, dst)
	}
	if err := get("data_quality", &p.DataQuality); err != nil {
		return err
	}
	if err := get("labels", &p.Labels); err != nil {
		return err
	}
	if err := get("percentage", &p.Percentage); err != nil {
		return err
	}
	if err := get("direct", &p.Direct); err != nil {
		return err
	}
	if err := get("control_type", &p.ControlType); err != nil {
		return err
	}
	if err := get("consolidation_basis", &p.ConsolidationBasis); err != nil {
		return err
	}
	if err := get("event_type", &p.EventType); err != nil {
		return err
	}
	if err := get("effective_date", &p.EffectiveDate); err != nil {
		return err
	}
	if err := get("commodity", &p.Commodity); err != nil {
		return err
	}
	if err := get("contract_ref", &p.ContractRef); err != nil {
		return err
	}
	if err := get("service_type", &p.ServiceType); err != nil {
		return err
	}
	if err := get("scope", &p.Scope); err != nil {
		return err
	}
	if err := get("valid_from", &p.ValidFrom); err != nil {
		return err
	}
	if v, ok := raw["valid_to"]; ok {
		if err := p.ValidTo.UnmarshalCBOR(v); err != nil {
			return err
		}
	} else {
		p.ValidTo = Absent[string]()
	}
	if err := get("confidence", &p.Confidence); err != nil {
		return err
	}
	if err := get("annual_value", &p.AnnualValue); err != nil {
		return err
	}
	if err := get("value_currency", &p.ValueCurrency); err != nil {
		return err
	}
	if err := get("volume", &p.Volume); err != nil {
		return err
	}
	if err := get("_property_sensitivity", &p.PropertySensitivity); err != nil {
		return err
	}
	p.Extra = extra
	return nil
}
