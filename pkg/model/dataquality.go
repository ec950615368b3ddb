package model

// DataQuality is a small nested record describing the provenance and
// confidence of the record it is attached to (a node or an edge's
// properties). Its exact shape is intentionally light: design note §9
// treats it, like the polymorphic geo value, as a structured value the
// data model carries opaquely rather than over-specifies.
type DataQuality struct {
	Source      *string
	Method      *string
	CollectedAt *string
	Confidence  *float64

	Extra map[string]any
}

var dataQualityFields = []string{"source", "method", "collected_at", "confidence"}

// MarshalJSON implements json.Marshaler.
func (d DataQuality) MarshalJSON() ([]byte, error) {
	var fields []field
	if d.Source != nil {
		fields = append(fields, field{"source", *d.Source})
	}
	if d.Method != nil {
		fields = append(fields, field{"method", *d.Method})
	}
	if d.CollectedAt != nil {
		fields = append(fields, field{"collected_at", *d.CollectedAt})
	}
	if d.Confidence != nil {
		fields = append(fields, field{"confidence", *d.Confidence})
	}
	return encodeOrderedJSON(fields, d.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DataQuality) UnmarshalJSON(data []byte) error {
	raw, extra, err := popKnownJSON(data, dataQualityFields)
	if err != nil {
		return err
	}
	if v, ok := raw["source"]; ok {
		if err := jsonUnmarshalInto(v, &d.Source); err != nil {
			return err
		}
	}
	if v, ok := raw["method"]; ok {
		if err := jsonUnmarshalInto(v, &d.Method); err != nil {
			return err
		}
	}
	if v, ok := raw["collected_at"]; ok {
		if err := jsonUnmarshalInto(v, &d.CollectedAt); err != nil {
			return err
		}
	}
	if v, ok := raw["confidence"]; ok {
		if err := jsonUnmarshalInto(v, &d.Confidence); err != nil {
			return err
		}
	}
	d.Extra = extra
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (d DataQuality) MarshalCBOR() ([]byte, error) {
	var fields []field
	if d.Source != nil {
		fields = append(fields, field{"source", *d.Source})
	}
	if d.Method != nil {
		fields = append(fields, field{"method", *d.Method})
	}
	if d.CollectedAt != nil {
		fields = append(fields, field{"collected_at", *d.CollectedAt})
	}
	if d.Confidence != nil {
		fields = append(fields, field{"confidence", *d.Confidence})
	}
	return encodeCBORMap(fields, d.Extra)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (d *DataQuality) UnmarshalCBOR(data []byte) error {
	raw, extra, err := popKnownCBOR(data, dataQualityFields)
	if err != nil {
		return err
	}
	if v, ok := raw["source"]; ok {
		if err := cborDecMode.Unmarshal(v, &d.Source); err != nil {
			return err
		}
	}
	if v, ok := raw["method"]; ok {
		if err := cborDecMode.Unmarshal(v, &d.Method); err != nil {
			return err
		}
	}
	if v, ok := raw["collected_at"]; ok {
		if err := cborDecMode.Unmarshal(v, &d.CollectedAt); err != nil {
			return err
		}
	}
	if v, ok := raw["confidence"]; ok {
		if err := cborDecMode.Unmarshal(v, &d.Confidence); err != nil {
			return err
		}
	}
	d.Extra = extra
	return nil
}
