package identity

import "github.com/multiformats/go-multibase"

// MultibaseToken encodes a canonical identifier string as a
// transcription-safe, z-prefixed base58btc token (grounded in the
// teacher's pkg/keyresolver use of the same multibase encoding for
// DID verification-method keys). It is a display/interchange
// convenience only — canonical strings remain the hash and sort key
// used by the merge, diff, and validation engines; nothing compares
// or persists the token form.
func MultibaseToken(canonical string) (string, error) {
	return multibase.Encode(multibase.Base58BTC, []byte(canonical))
}

// DecodeMultibaseToken reverses MultibaseToken, recovering the
// original canonical identifier string.
func DecodeMultibaseToken(token string) (string, error) {
	_, data, err := multibase.Decode(token)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
