package model

// Label is a {key, value?} tuple attachable to a node or edge.
type Label struct {
	Key   string         `validate:"required"`
	Value Optional[string]
}

var labelFields = []string{"key", "value"}

// MarshalJSON implements json.Marshaler.
func (l Label) MarshalJSON() ([]byte, error) {
	fields := []field{{"key", l.Key}}
	if !l.Value.IsAbsent() {
		fields = append(fields, field{"value", l.Value})
	}
	return encodeOrderedJSON(fields, nil)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Label) UnmarshalJSON(data []byte) error {
	raw, _, err := popKnownJSON(data, labelFields)
	if err != nil {
		return err
	}
	if v, ok := raw["key"]; ok {
		if err := jsonUnmarshalInto(v, &l.Key); err != nil {
			return err
		}
	}
	if v, ok := raw["value"]; ok {
		if err := l.Value.UnmarshalJSON(v); err != nil {
			return err
		}
	} else {
		l.Value = Absent[string]()
	}
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (l Label) MarshalCBOR() ([]byte, error) {
	fields := []field{{"key", l.Key}}
	if !l.Value.IsAbsent() {
		fields = append(fields, field{"value", l.Value})
	}
	return encodeCBORMap(fields, nil)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (l *Label) UnmarshalCBOR(data []byte) error {
	raw, _, err := popKnownCBOR(data, labelFields)
	if err != nil {
		return err
	}
	if v, ok := raw["key"]; ok {
		if err := cborDecMode.Unmarshal(v, &l.Key); err != nil {
			return err
		}
	}
	if v, ok := raw["value"]; ok {
		if err := l.Value.UnmarshalCBOR(v); err != nil {
			return err
		}
	} else {
		l.Value = Absent[string]()
	}
	return nil
}

// Less orders labels by key then value, with an absent value sorting
// before a present one ("None before Some" per spec.md §4.5 step 6).
func (l Label) Less(other Label) bool {
	if l.Key != other.Key {
		return l.Key < other.Key
	}
	lv, lok := l.Value.Get()
	ov, ook := other.Value.Get()
	if lok != ook {
		return !lok && ook
	}
	return lv < ov
}

// Equal reports whether two labels carry the same key and value state.
func (l Label) Equal(other Label) bool {
	if l.Key != other.Key {
		return false
	}
	if l.Value.IsAbsent() != other.Value.IsAbsent() {
		return false
	}
	if l.Value.IsAbsent() {
		return true
	}
	if l.Value.IsNull() != other.Value.IsNull() {
		return false
	}
	lv, _ := l.Value.Get()
	ov, _ := other.Value.Get()
	return lv == ov
}
