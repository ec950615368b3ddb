package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"omtsf/pkg/identity"
	"omtsf/pkg/model"
	"omtsf/pkg/random"
)

// boundaryReferenceValue implements spec.md §4.6's boundary-reference
// algorithm for one Replace node: a deterministic SHA-256 digest over
// its public-sensitivity identifiers salted with the document's file
// salt, or (when the node carries no public identifier at all) 32
// CSPRNG bytes.
func boundaryReferenceValue(n model.Node, rawSalt []byte, src random.Source) (string, error) {
	var canon []string
	for _, id := range n.Identifiers {
		if effectiveIdentifierSensitivity(id, n.Type) != model.SensitivityPublic {
			continue
		}
		canon = append(canon, identity.Canonical(id.Scheme, id.Value, authorityOf(id)))
	}
	if len(canon) == 0 {
		b, err := random.Bytes(src, 32)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(b), nil
	}

	sort.Strings(canon)
	joined := canon[0]
	for _, c := range canon[1:] {
		joined += "\n" + c
	}

	h := sha256.New()
	h.Write([]byte(joined))
	h.Write(rawSalt)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func authorityOf(id model.Identifier) string {
	if id.Authority == nil {
		return ""
	}
	return *id.Authority
}
