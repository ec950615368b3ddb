package codec

import "github.com/fxamacker/cbor/v2"

// cborEncMode mirrors pkg/model's mode (canonical sort, no native time
// tags — spec.md §6 requires text-string dates, never CBOR tag 0/1) but
// is defined separately here since codec must not import model's
// unexported encoding configuration.
var cborEncMode = func() cbor.EncMode {
	opts := cbor.EncOptions{
		Sort:    cbor.SortCanonical,
		TimeTag: cbor.EncTagForbidden,
	}
	m, err := opts.EncMode()
	if err != nil {
		panic(err)
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
