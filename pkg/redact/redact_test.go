package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omtsf/pkg/model"
	"omtsf/pkg/random"
)

func sampleDoc() *model.Document {
	pct := 60.0
	return &model.Document{
		OMTSFVersion: "1.0.0",
		SnapshotDate: "2026-01-01",
		FileSalt:     fixedSaltHex,
		Nodes: []model.Node{
			{
				ID:          "n-parent",
				Type:        model.NodeTypeOrganization,
				Identifiers: []model.Identifier{{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"}},
			},
			{
				ID:          "n-subsidiary",
				Type:        model.NodeTypeOrganization,
				Identifiers: []model.Identifier{{Scheme: "duns", Value: "123456789"}},
			},
			{
				ID:   "n-owner",
				Type: model.NodeTypePerson,
				Identifiers: []model.Identifier{
					{Scheme: "nat-reg", Value: "12345", Authority: strPtr("US-DE")},
				},
			},
		},
		Edges: []model.Edge{
			{
				ID: "e-1", Type: model.EdgeTypeOwnership,
				Source: "n-parent", Target: "n-subsidiary",
				Properties: model.EdgeProperties{Percentage: &pct, ContractRef: strPtr("C-100")},
			},
			{
				ID: "e-2", Type: model.EdgeTypeBeneficialOwnership,
				Source: "n-owner", Target: "n-subsidiary",
				Properties: model.EdgeProperties{Percentage: &pct},
			},
		},
	}
}

func strPtr(s string) *string { return &s }

func TestRedactPublicOmitsPersonAndBeneficialOwnership(t *testing.T) {
	doc := sampleDoc()
	out, err := New(doc, model.ScopePublic, nil).Run(random.CryptoSource{})
	require.NoError(t, err)

	for _, n := range out.Nodes {
		assert.NotEqual(t, "n-owner", n.ID)
	}
	for _, e := range out.Edges {
		assert.NotEqual(t, model.EdgeTypeBeneficialOwnership, e.Type)
	}
}

func TestRedactPublicReplacesUnretainedOrganizations(t *testing.T) {
	doc := sampleDoc()
	out, err := New(doc, model.ScopePublic, nil).Run(random.CryptoSource{})
	require.NoError(t, err)

	byID := map[string]model.Node{}
	for _, n := range out.Nodes {
		byID[n.ID] = n
	}
	parent, ok := byID["n-parent"]
	require.True(t, ok)
	assert.Equal(t, model.NodeTypeBoundaryRef, parent.Type)
	require.Len(t, parent.Identifiers, 1)
	assert.Equal(t, "opaque", parent.Identifiers[0].Scheme)
}

func TestRedactRetainSetKeepsNodeIdentifiable(t *testing.T) {
	doc := sampleDoc()
	out, err := New(doc, model.ScopePublic, NewRetainSet("n-parent")).Run(random.CryptoSource{})
	require.NoError(t, err)

	byID := map[string]model.Node{}
	for _, n := range out.Nodes {
		byID[n.ID] = n
	}
	parent, ok := byID["n-parent"]
	require.True(t, ok)
	assert.Equal(t, model.NodeTypeOrganization, parent.Type)
}

func TestRedactPublicStripsRestrictedEdgeProperty(t *testing.T) {
	doc := sampleDoc()
	out, err := New(doc, model.ScopePublic, NewRetainSet("n-parent", "n-subsidiary")).Run(random.CryptoSource{})
	require.NoError(t, err)

	for _, e := range out.Edges {
		if e.Type == model.EdgeTypeOwnership {
			assert.Nil(t, e.Properties.ContractRef)
			assert.NotNil(t, e.Properties.Percentage)
		}
	}
}

func TestRedactOmitsEdgeBetweenTwoReplacedNodes(t *testing.T) {
	doc := sampleDoc()
	out, err := New(doc, model.ScopePublic, nil).Run(random.CryptoSource{})
	require.NoError(t, err)

	for _, e := range out.Edges {
		assert.NotEqual(t, "e-1", e.ID)
	}
}

func TestRedactSetsDisclosureScopeAndPreservesSalt(t *testing.T) {
	doc := sampleDoc()
	out, err := New(doc, model.ScopePartner, nil).Run(random.CryptoSource{})
	require.NoError(t, err)
	assert.Equal(t, model.ScopePartner, out.DisclosureScope)
	assert.Equal(t, doc.FileSalt, out.FileSalt)
}
