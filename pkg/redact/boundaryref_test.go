package redact

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"omtsf/pkg/model"
	"omtsf/pkg/random"
)

// fixedSaltHex is a 32-byte salt (the bytes 0x00..0x1f) used to pin the
// three deterministic boundary-reference test vectors below.
const fixedSaltHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func mustDecodeSalt(t *testing.T) []byte {
	t.Helper()
	raw, err := hex.DecodeString(fixedSaltHex)
	assert.NoError(t, err)
	return raw
}

func TestBoundaryReferenceValueSingleIdentifier(t *testing.T) {
	n := model.Node{
		ID:   "n-1",
		Type: model.NodeTypeOrganization,
		Identifiers: []model.Identifier{
			{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"},
		},
	}
	got, err := boundaryReferenceValue(n, mustDecodeSalt(t), random.CryptoSource{})
	assert.NoError(t, err)
	assert.Equal(t, "7c417c156f5215f5a0884159a648cd339c8892f2fe5b7769e0a5e500325c0d74", got)
}

func TestBoundaryReferenceValueMultipleIdentifiersSortedFirst(t *testing.T) {
	n := model.Node{
		ID:   "n-2",
		Type: model.NodeTypeOrganization,
		Identifiers: []model.Identifier{
			{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"},
			{Scheme: "duns", Value: "123456789"},
		},
	}
	got, err := boundaryReferenceValue(n, mustDecodeSalt(t), random.CryptoSource{})
	assert.NoError(t, err)
	assert.Equal(t, "820e98c766e975908aadad92c939585bc7fbd5003913fd3485b08d59538a5650", got)
}

func TestBoundaryReferenceValueGLN(t *testing.T) {
	n := model.Node{
		ID:   "n-3",
		Type: model.NodeTypeFacility,
		Identifiers: []model.Identifier{
			{Scheme: "gln", Value: "1234567890128"},
		},
	}
	got, err := boundaryReferenceValue(n, mustDecodeSalt(t), random.CryptoSource{})
	assert.NoError(t, err)
	assert.Equal(t, "f9345f418941207436398dd5052fe9aa104cf71f5af27e0ca3d6d748cc00be3f", got)
}

func TestBoundaryReferenceValueNoPublicIdentifierTakesRandomPath(t *testing.T) {
	restricted := model.SensitivityRestricted
	n := model.Node{
		ID:   "n-4",
		Type: model.NodeTypeOrganization,
		Identifiers: []model.Identifier{
			{Scheme: "nat-reg", Value: "12345", Sensitivity: &restricted},
		},
	}
	got, err := boundaryReferenceValue(n, mustDecodeSalt(t), random.CryptoSource{})
	assert.NoError(t, err)
	assert.Len(t, got, 64)
	for _, c := range got {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'))
	}
}
