package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	name := "Acme Corp"
	jurisdiction := "US"
	return Document{
		OMTSFVersion: "1.0.0",
		SnapshotDate: "2026-01-15",
		FileSalt:     "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"[:64],
		Nodes: []Node{
			{
				ID:           "n-0",
				Type:         NodeTypeOrganization,
				Name:         &name,
				Jurisdiction: &jurisdiction,
				Identifiers: []Identifier{
					{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"},
				},
				Extra: map[string]any{"future_field": "kept"},
			},
		},
		Edges: []Edge{
			{
				ID:     "e-0",
				Type:   EdgeTypeSupplies,
				Source: "n-0",
				Target: "n-0",
			},
		},
		Extra: map[string]any{"custom_header_field": float64(7)},
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := sampleDocument()

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	// omtsf_version must be the first key by convention (spec.md §6).
	assert.Equal(t, `{"omtsf_version"`, string(out[:16]))

	var back Document
	require.NoError(t, json.Unmarshal(out, &back))

	assert.Equal(t, doc.OMTSFVersion, back.OMTSFVersion)
	assert.Equal(t, doc.SnapshotDate, back.SnapshotDate)
	assert.Equal(t, doc.FileSalt, back.FileSalt)
	require.Len(t, back.Nodes, 1)
	assert.Equal(t, "n-0", back.Nodes[0].ID)
	assert.Equal(t, "kept", back.Nodes[0].Extra["future_field"])
	assert.Equal(t, float64(7), back.Extra["custom_header_field"])
}

func TestValidateShapeRejectsMissingRequired(t *testing.T) {
	doc := sampleDocument()
	doc.Nodes[0].ID = ""
	err := ValidateShape(&doc)
	assert.Error(t, err)
}

func TestValidateShapeAcceptsSample(t *testing.T) {
	doc := sampleDocument()
	assert.NoError(t, ValidateShape(&doc))
}

func TestLabelOrdering(t *testing.T) {
	labels := []Label{
		{Key: "b", Value: Some("x")},
		{Key: "a", Value: Absent[string]()},
		{Key: "a", Value: Some("y")},
	}
	assert.True(t, labels[1].Less(labels[2]))
	assert.True(t, labels[2].Less(labels[0]))
}
