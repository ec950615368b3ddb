package model

// Identifier is an external reference drawn from a public or internal
// registry scheme (lei, duns, gln, nat-reg, vat, internal, opaque, or an
// extension scheme).
type Identifier struct {
	Scheme string `validate:"required"`
	Value  string `validate:"required"`

	Authority *string
	ValidFrom *string
	// ValidTo is dual-optional: absent means no constraint was ever
	// recorded, Null means an explicit "no expiration" was asserted,
	// Some carries an actual expiry date. Comparison and merge treat
	// Null the same as an open-ended upper bound (spec.md §3).
	ValidTo Optional[string]

	Sensitivity         *Sensitivity
	VerificationStatus  *VerificationStatus
	VerificationDate    *string

	Extra map[string]any
}

var identifierFields = []string{
	"scheme", "value", "authority", "valid_from", "valid_to",
	"sensitivity", "verification_status", "verification_date",
}

// MarshalJSON implements json.Marshaler.
func (id Identifier) MarshalJSON() ([]byte, error) {
	fields := []field{
		{"scheme", id.Scheme},
		{"value", id.Value},
	}
	if id.Authority != nil {
		fields = append(fields, field{"authority", *id.Authority})
	}
	if id.ValidFrom != nil {
		fields = append(fields, field{"valid_from", *id.ValidFrom})
	}
	if !id.ValidTo.IsAbsent() {
		fields = append(fields, field{"valid_to", id.ValidTo})
	}
	if id.Sensitivity != nil {
		fields = append(fields, field{"sensitivity", *id.Sensitivity})
	}
	if id.VerificationStatus != nil {
		fields = append(fields, field{"verification_status", *id.VerificationStatus})
	}
	if id.VerificationDate != nil {
		fields = append(fields, field{"verification_date", *id.VerificationDate})
	}
	return encodeOrderedJSON(fields, id.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	raw, extra, err := popKnownJSON(data, identifierFields)
	if err != nil {
		return err
	}
	if v, ok := raw["scheme"]; ok {
		if err := jsonUnmarshalInto(v, &id.Scheme); err != nil {
			return err
		}
	}
	if v, ok := raw["value"]; ok {
		if err := jsonUnmarshalInto(v, &id.Value); err != nil {
			return err
		}
	}
	if v, ok := raw["authority"]; ok {
		if err := jsonUnmarshalInto(v, &id.Authority); err != nil {
			return err
		}
	}
	if v, ok := raw["valid_from"]; ok {
		if err := jsonUnmarshalInto(v, &id.ValidFrom); err != nil {
			return err
		}
	}
	if v, ok := raw["valid_to"]; ok {
		if err := id.ValidTo.UnmarshalJSON(v); err != nil {
			return err
		}
	} else {
		id.ValidTo = Absent[string]()
	}
	if v, ok := raw["sensitivity"]; ok {
		if err := jsonUnmarshalInto(v, &id.Sensitivity); err != nil {
			return err
		}
	}
	if v, ok := raw["verification_status"]; ok {
		if err := jsonUnmarshalInto(v, &id.VerificationStatus); err != nil {
			return err
		}
	}
	if v, ok := raw["verification_date"]; ok {
		if err := jsonUnmarshalInto(v, &id.VerificationDate); err != nil {
			return err
		}
	}
	id.Extra = extra
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (id Identifier) MarshalCBOR() ([]byte, error) {
	fields := []field{
		{"scheme", id.Scheme},
		{"value", id.Value},
	}
	if id.Authority != nil {
		fields = append(fields, field{"authority", *id.Authority})
	}
	if id.ValidFrom != nil {
		fields = append(fields, field{"valid_from", *id.ValidFrom})
	}
	if !id.ValidTo.IsAbsent() {
		fields = append(fields, field{"valid_to", id.ValidTo})
	}
	if id.Sensitivity != nil {
		fields = append(fields, field{"sensitivity", *id.Sensitivity})
	}
	if id.VerificationStatus != nil {
		fields = append(fields, field{"verification_status", *id.VerificationStatus})
	}
	if id.VerificationDate != nil {
		fields = append(fields, field{"verification_date", *id.VerificationDate})
	}
	return encodeCBORMap(fields, id.Extra)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (id *Identifier) UnmarshalCBOR(data []byte) error {
	raw, extra, err := popKnownCBOR(data, identifierFields)
	if err != nil {
		return err
	}
	if v, ok := raw["scheme"]; ok {
		if err := cborDecMode.Unmarshal(v, &id.Scheme); err != nil {
			return err
		}
	}
	if v, ok := raw["value"]; ok {
		if err := cborDecMode.Unmarshal(v, &id.Value); err != nil {
			return err
		}
	}
	if v, ok := raw["authority"]; ok {
		if err := cborDecMode.Unmarshal(v, &id.Authority); err != nil {
			return err
		}
	}
	if v, ok := raw["valid_from"]; ok {
		if err := cborDecMode.Unmarshal(v, &id.ValidFrom); err != nil {
			return err
		}
	}
	if v, ok := raw["valid_to"]; ok {
		if err := id.ValidTo.UnmarshalCBOR(v); err != nil {
			return err
		}
	} else {
		id.ValidTo = Absent[string]()
	}
	if v, ok := raw["sensitivity"]; ok {
		if err := cborDecMode.Unmarshal(v, &id.Sensitivity); err != nil {
			return err
		}
	}
	if v, ok := raw["verification_status"]; ok {
		if err := cborDecMode.Unmarshal(v, &id.VerificationStatus); err != nil {
			return err
		}
	}
	if v, ok := raw["verification_date"]; ok {
		if err := cborDecMode.Unmarshal(v, &id.VerificationDate); err != nil {
			return err
		}
	}
	id.Extra = extra
	return nil
}
