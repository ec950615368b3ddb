package model

// Node is a typed vertex in the supply-chain graph: an organization,
// facility, good, person, attestation, consignment, or an opaque
// boundary reference left behind by redaction.
//
// Per design note §9, Node is a single flat record carrying every
// possible type-specific attribute as optional, rather than a tagged
// union per node type — validation (pkg/validate), not the type
// system, enforces which attributes a given node Type requires.
type Node struct {
	ID   string   `validate:"required"`
	Type NodeType `validate:"required"`

	Identifiers []Identifier
	DataQuality *DataQuality
	Labels      []Label

	// Common / organization / facility attributes.
	Name         *string
	Jurisdiction *string `validate:"omitempty,len=2,uppercase"`
	Status       *string
	OperatorRef  *string
	Address      *string
	Geo          any
	CommodityCode *string

	// Attestation attributes.
	AttestationIssuer *string
	AttestationMethod *string
	AttestationScope  *string
	ValidTo           Optional[string]

	// Consignment attributes.
	ConsignmentRef         *string
	ConsignmentQuantity    *float64
	ConsignmentUnit        *string
	ConsignmentDescription *string

	Extra map[string]any
}

var nodeFields = []string{
	"id", "type", "identifiers", "data_quality", "labels",
	"name", "jurisdiction", "status", "operator_ref", "address", "geo", "commodity_code",
	"attestation_issuer", "attestation_method", "attestation_scope", "valid_to",
	"consignment_ref", "consignment_quantity", "consignment_unit", "consignment_description",
}

func (n Node) jsonFields() []field {
	fields := []field{
		{"id", n.ID},
		{"type", n.Type},
	}
	if len(n.Identifiers) > 0 {
		fields = append(fields, field{"identifiers", n.Identifiers})
	}
	if n.DataQuality != nil {
		fields = append(fields, field{"data_quality", *n.DataQuality})
	}
	if len(n.Labels) > 0 {
		fields = append(fields, field{"labels", n.Labels})
	}
	if n.Name != nil {
		fields = append(fields, field{"name", *n.Name})
	}
	if n.Jurisdiction != nil {
		fields = append(fields, field{"jurisdiction", *n.Jurisdiction})
	}
	if n.Status != nil {
		fields = append(fields, field{"status", *n.Status})
	}
	if n.OperatorRef != nil {
		fields = append(fields, field{"operator_ref", *n.OperatorRef})
	}
	if n.Address != nil {
		fields = append(fields, field{"address", *n.Address})
	}
	if n.Geo != nil {
		fields = append(fields, field{"geo", n.Geo})
	}
	if n.CommodityCode != nil {
		fields = append(fields, field{"commodity_code", *n.CommodityCode})
	}
	if n.AttestationIssuer != nil {
		fields = append(fields, field{"attestation_issuer", *n.AttestationIssuer})
	}
	if n.AttestationMethod != nil {
		fields = append(fields, field{"attestation_method", *n.AttestationMethod})
	}
	if n.AttestationScope != nil {
		fields = append(fields, field{"attestation_scope", *n.AttestationScope})
	}
	if !n.ValidTo.IsAbsent() {
		fields = append(fields, field{"valid_to", n.ValidTo})
	}
	if n.ConsignmentRef != nil {
		fields = append(fields, field{"consignment_ref", *n.ConsignmentRef})
	}
	if n.ConsignmentQuantity != nil {
		fields = append(fields, field{"consignment_quantity", *n.ConsignmentQuantity})
	}
	if n.ConsignmentUnit != nil {
		fields = append(fields, field{"consignment_unit", *n.ConsignmentUnit})
	}
	if n.ConsignmentDescription != nil {
		fields = append(fields, field{"consignment_description", *n.ConsignmentDescription})
	}
	return fields
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	return encodeOrderedJSON(n.jsonFields(), n.Extra)
}

// MarshalCBOR implements cbor.Marshaler.
func (n Node) MarshalCBOR() ([]byte, error) {
	return encodeCBORMap(n.jsonFields(), n.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	raw, extra, err := popKnownJSON(data, nodeFields)
	if err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		if err := jsonUnmarshalInto(v, &n.ID); err != nil {
			return err
		}
	}
	if v, ok := raw["type"]; ok {
		if err := jsonUnmarshalInto(v, &n.Type); err != nil {
			return err
		}
	}
	if v, ok := raw["identifiers"]; ok {
		if err := jsonUnmarshalInto(v, &n.Identifiers); err != nil {
			return err
		}
	}
	if v, ok := raw["data_quality"]; ok {
		if err := jsonUnmarshalInto(v, &n.DataQuality); err != nil {
			return err
		}
	}
	if v, ok := raw["labels"]; ok {
		if err := jsonUnmarshalInto(v, &n.Labels); err != nil {
			return err
		}
	}
	if v, ok := raw["name"]; ok {
		if err := jsonUnmarshalInto(v, &n.Name); err != nil {
			return err
		}
	}
	if v, ok := raw["jurisdiction"]; ok {
		if err := jsonUnmarshalInto(v, &n.Jurisdiction); err != nil {
			return err
		}
	}
	if v, ok := raw["status"]; ok {
		if err := jsonUnmarshalInto(v, &n.Status); err != nil {
			return err
		}
	}
	if v, ok := raw["operator_ref"]; ok {
		if err := jsonUnmarshalInto(v, &n.OperatorRef); err != nil {
			return err
		}
	}
	if v, ok := raw["address"]; ok {
		if err := jsonUnmarshalInto(v, &n.Address); err != nil {
			return err
		}
	}
	if v, ok := raw["geo"]; ok {
		if err := jsonUnmarshalInto(v, &n.Geo); err != nil {
			return err
		}
	}
	if v, ok := raw["commodity_code"]; ok {
		if err := jsonUnmarshalInto(v, &n.CommodityCode); err != nil {
			return err
		}
	}
	if v, ok := raw["attestation_issuer"]; ok {
		if err := jsonUnmarshalInto(v, &n.AttestationIssuer); err != nil {
			return err
		}
	}
	if v, ok := raw["attestation_method"]; ok {
		if err := jsonUnmarshalInto(v, &n.AttestationMethod); err != nil {
			return err
		}
	}
	if v, ok := raw["attestation_scope"]; ok {
		if err := jsonUnmarshalInto(v, &n.AttestationScope); err != nil {
			return err
		}
	}
	if v, ok := raw["valid_to"]; ok {
		if err := n.ValidTo.UnmarshalJSON(v); err != nil {
			return err
		}
	} else {
		n.ValidTo = Absent[string]()
	}
	if v, ok := raw["consignment_ref"]; ok {
		if err := jsonUnmarshalInto(v, &n.ConsignmentRef); err != nil {
			return err
		}
	}
	if v, ok := raw["consignment_quantity"]; ok {
		if err := jsonUnmarshalInto(v, &n.ConsignmentQuantity); err != nil {
			return err
		}
	}
	if v, ok := raw["consignment_unit"]; ok {
		if err := jsonUnmarshalInto(v, &n.ConsignmentUnit); err != nil {
			return err
		}
	}
	if v, ok := raw["consignment_description"]; ok {
		if err := jsonUnmarshalInto(v, &n.ConsignmentDescription); err != nil {
			return err
		}
	}
	n.Extra = extra
	return nil
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (n *Node) UnmarshalCBOR(data []byte) error {
	raw, extra, err := popKnownCBOR(data, nodeFields)
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
	if err := get("id", &n.ID); err != nil {
		return err
	}
	if err := get("type", &n.Type); err != nil {
		return err
	}
	if err := get("identifiers", &n.Identifiers); err != nil {
		return err
	}
	if err := get("data_quality", &n.DataQuality); err != nil {
		return err
	}
	if err := get("labels", &n.Labels); err != nil {
		return err
	}
	if err := get("name", &n.Name); err != nil {
		return err
	}
	if err := get("jurisdiction", &n.Jurisdiction); err != nil {
		return err
	}
	if err := get("status", &n.Status); err != nil {
		return err
	}
	if err := get("operator_ref", &n.OperatorRef); err != nil {
		return err
	}
	if err := get("address", &n.Address); err != nil {
		return err
	}
	if err := get("geo", &n.Geo); err != nil {
		return err
	}
	if err := get("commodity_code", &n.CommodityCode); err != nil {
		return err
	}
	if err := get("attestation_issuer", &n.AttestationIssuer); err != nil {
		return err
	}
	if err := get("attestation_method", &n.AttestationMethod); err != nil {
		return err
	}
	if err := get("attestation_scope", &n.AttestationScope); err != nil {
		return err
	}
	if v, ok := raw["valid_to"]; ok {
		if err := n.ValidTo.UnmarshalCBOR(v); err != nil {
			return err
		}
	} else {
		n.ValidTo = Absent[string]()
	}
	if err := get("consignment_ref", &n.ConsignmentRef); err != nil {
		return err
	}
	if err := get("consignment_quantity", &n.ConsignmentQuantity); err != nil {
		return err
	}
	if err := get("consignment_unit", &n.ConsignmentUnit); err != nil {
		return err
	}
	if err := get("consignment_description", &n.ConsignmentDescription); err != nil {
		return err
	}
	n.Extra = extra
	return nil
}
