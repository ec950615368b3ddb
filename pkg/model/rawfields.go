package model

import (
	"encoding/json"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode is a fixed, canonical-sort CBOR encoding mode shared by
// every model type's MarshalCBOR. Canonical sort makes the byte output
// of a map deterministic regardless of Go's randomized map iteration
// order; it is package-level because it is immutable configuration, not
// mutable state (it holds no per-call data and is safe under concurrent
// use, unlike the global caches the concurrency model forbids).
var cborEncMode = func() cbor.EncMode {
	opts := cbor.EncOptions{
		Sort:    cbor.SortCanonical,
		TimeTag: cbor.EncTagForbidden,
	}
	m, err := opts.EncMode()
	if err != nil {
		panic(err) // fixed, known-good options; failure would be a build defect
	}
	return m
}()

var cborDecMode = func() cbor.DecMode {
	opts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	m, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return m
}()

// popKnownJSON parses a JSON object into its raw per-key messages, pulls
// out the keys named in known (returned by caller-assigned field), and
// decodes whatever remains into an extra bag for forward-compatible
// round-tripping of unrecognized fields.
func popKnownJSON(data []byte, known []string) (map[string]json.RawMessage, map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}
	var extra map[string]any
	for k, v := range raw {
		if _, ok := knownSet[k]; ok {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, nil, err
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = val
	}
	return raw, extra, nil
}

// popKnownCBOR is the CBOR analogue of popKnownJSON.
func popKnownCBOR(data []byte, known []string) (map[string]cbor.RawMessage, map[string]any, error) {
	var raw map[string]cbor.RawMessage
	if err := cborDecMode.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}
	var extra map[string]any
	for k, v := range raw {
		if _, ok := knownSet[k]; ok {
			continue
		}
		var val any
		if err := cborDecMode.Unmarshal(v, &val); err != nil {
			return nil, nil, err
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = val
	}
	return raw, extra, nil
}

// jsonUnmarshalInto is a small helper so call sites reporting errors
// from popKnownJSON's raw map don't need to import encoding/json
// themselves just to call Unmarshal.
func jsonUnmarshalInto(data json.RawMessage, v any) error {
	return json.Unmarshal(data, v)
}

// field is one key/value pair in the declaration-ordered assembly of a
// JSON object; a nil Value means the field is absent and must be
// skipped rather than written as null.
type field struct {
	Key   string
	Value any // marshaled via json.Marshal; an untyped nil means omit, a typed nil pointer is written as null
}

// encodeOrderedJSON assembles a JSON object preserving the declaration
// order of fields (required for the document header per spec.md §4.1),
// followed by any extra/unknown fields in sorted key order for
// deterministic output.
func encodeOrderedJSON(fields []field, extra map[string]any) ([]byte, error) {
	buf := make([]byte, 0, 256)
	buf = append(buf, '{')
	first := true
	writeKV := func(k string, v any) error {
		if !first {
			buf = append(buf, ',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		vb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf = append(buf, vb...)
		return nil
	}
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		if err := writeKV(f.Key, f.Value); err != nil {
			return nil, err
		}
	}
	if len(extra) > 0 {
		keys := make([]string, 0, len(extra))
		for k := range extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := writeKV(k, extra[k]); err != nil {
				return nil, err
			}
		}
	}
	buf = append(buf, '}')
	return buf, nil
}

// encodeCBORMap assembles a CBOR map the same way encodeOrderedJSON
// assembles a JSON object. CBOR does not constrain map key order on
// read (spec.md §4.1), but cborEncMode's canonical sort still makes the
// written bytes deterministic.
func encodeCBORMap(fields []field, extra map[string]any) ([]byte, error) {
	m := make(map[string]any, len(fields)+len(extra))
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		m[f.Key] = f.Value
	}
	for k, v := range extra {
		m[k] = v
	}
	return cborEncMode.Marshal(m)
}
