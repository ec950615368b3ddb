package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omtsf/pkg/model"
	"omtsf/pkg/random"
)

func strp(s string) *string { return &s }

func baseDoc(snapshotDate string) model.Document {
	return model.Document{
		OMTSFVersion: "1.0",
		SnapshotDate: snapshotDate,
		FileSalt:     "00000000000000000000000000000000000000000000000000000000000000",
	}
}

func TestMergeFailsOnNoInputs(t *testing.T) {
	_, err := Merge(nil, DefaultConfig(), random.CryptoSource{}, nil)
	assert.Error(t, err)
}

func TestMergeUnionsNodesSharingAnIdentifier(t *testing.T) {
	docA := baseDoc("2026-01-01")
	docA.Nodes = []model.Node{
		{ID: "a", Type: model.NodeTypeOrganization,
			Identifiers: []model.Identifier{{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"}},
			Name:        strp("Acme Holdings")},
	}
	docB := baseDoc("2026-01-02")
	docB.Nodes = []model.Node{
		{ID: "x", Type: model.NodeTypeOrganization,
			Identifiers: []model.Identifier{{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"}},
			Name:        strp("Acme Holdings")},
	}

	result, err := Merge([]Input{{File: "a.json", Document: docA}, {File: "b.json", Document: docB}},
		DefaultConfig(), random.CryptoSource{}, nil)
	require.NoError(t, err)
	require.Len(t, result.Document.Nodes, 1)
	assert.Equal(t, "n-0", result.Document.Nodes[0].ID)
	assert.Equal(t, "2026-01-02", result.Document.SnapshotDate) // latest of the inputs
}

func TestMergeRecordsConflictOnDivergentScalars(t *testing.T) {
	docA := baseDoc("2026-01-01")
	docA.Nodes = []model.Node{
		{ID: "a", Type: model.NodeTypeOrganization,
			Identifiers: []model.Identifier{{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"}},
			Name:        strp("Acme Holdings")},
	}
	docB := baseDoc("2026-01-02")
	docB.Nodes = []model.Node{
		{ID: "x", Type: model.NodeTypeOrganization,
			Identifiers: []model.Identifier{{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"}},
			Name:        strp("Acme Holdings Ltd")},
	}

	result, err := Merge([]Input{{File: "a.json", Document: docA}, {File: "b.json", Document: docB}},
		DefaultConfig(), random.CryptoSource{}, nil)
	require.NoError(t, err)
	require.Len(t, result.Document.Nodes, 1)
	node := result.Document.Nodes[0]
	assert.Nil(t, node.Name)
	conflicts, ok := node.Extra["_conflicts"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, conflicts, "name")
}

func TestMergeKeepsDistinctNodesSeparate(t *testing.T) {
	docA := baseDoc("2026-01-01")
	docA.Nodes = []model.Node{
		{ID: "a", Type: model.NodeTypeOrganization,
			Identifiers: []model.Identifier{{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"}}},
	}
	docB := baseDoc("2026-01-02")
	docB.Nodes = []model.Node{
		{ID: "x", Type: model.NodeTypeOrganization,
			Identifiers: []model.Identifier{{Scheme: "lei", Value: "BBBBBBBBBBBBBBBBBB77"}}},
	}

	result, err := Merge([]Input{{File: "a.json", Document: docA}, {File: "b.json", Document: docB}},
		DefaultConfig(), random.CryptoSource{}, nil)
	require.NoError(t, err)
	assert.Len(t, result.Document.Nodes, 2)
}

func TestMergeAppliesSameAsAboveThreshold(t *testing.T) {
	definite := model.ConfidenceDefinite
	docA := baseDoc("2026-01-01")
	docA.Nodes = []model.Node{
		{ID: "a", Type: model.NodeTypeOrganization},
		{ID: "b", Type: model.NodeTypeOrganization},
	}
	docA.Edges = []model.Edge{
		{ID: "e1", Type: model.EdgeTypeSameAs, Source: "a", Target: "b",
			Properties: model.EdgeProperties{Confidence: &definite}},
	}

	result, err := Merge([]Input{{File: "a.json", Document: docA}}, DefaultConfig(), random.CryptoSource{}, nil)
	require.NoError(t, err)
	assert.Len(t, result.Document.Nodes, 1)
}

func TestMergeIgnoresSameAsBelowThreshold(t *testing.T) {
	possible := model.ConfidencePossible
	docA := baseDoc("2026-01-01")
	docA.Nodes = []model.Node{
		{ID: "a", Type: model.NodeTypeOrganization},
		{ID: "b", Type: model.NodeTypeOrganization},
	}
	docA.Edges = []model.Edge{
		{ID: "e1", Type: model.EdgeTypeSameAs, Source: "a", Target: "b",
			Properties: model.EdgeProperties{Confidence: &possible}},
	}

	cfg := Config{SameAsThreshold: model.ConfidenceDefinite, GroupSizeLimit: 50}
	result, err := Merge([]Input{{File: "a.json", Document: docA}}, cfg, random.CryptoSource{}, nil)
	require.NoError(t, err)
	assert.Len(t, result.Document.Nodes, 2)
}

func TestMergeDedupesEquivalentEdges(t *testing.T) {
	docA := baseDoc("2026-01-01")
	docA.Nodes = []model.Node{
		{ID: "a", Type: model.NodeTypeOrganization, Identifiers: []model.Identifier{{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"}}},
		{ID: "b", Type: model.NodeTypeOrganization, Identifiers: []model.Identifier{{Scheme: "lei", Value: "BBBBBBBBBBBBBBBBBB77"}}},
	}
	docA.Edges = []model.Edge{
		{ID: "e1", Type: model.EdgeTypeOwnership, Source: "a", Target: "b",
			Properties: model.EdgeProperties{Percentage: floatp(100)}},
	}
	docB := baseDoc("2026-01-02")
	docB.Nodes = []model.Node{
		{ID: "x", Type: model.NodeTypeOrganization, Identifiers: []model.Identifier{{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"}}},
		{ID: "y", Type: model.NodeTypeOrganization, Identifiers: []model.Identifier{{Scheme: "lei", Value: "BBBBBBBBBBBBBBBBBB77"}}},
	}
	docB.Edges = []model.Edge{
		{ID: "e1", Type: model.EdgeTypeOwnership, Source: "x", Target: "y",
			Properties: model.EdgeProperties{Percentage: floatp(100)}},
	}

	result, err := Merge([]Input{{File: "a.json", Document: docA}, {File: "b.json", Document: docB}},
		DefaultConfig(), random.CryptoSource{}, nil)
	require.NoError(t, err)
	assert.Len(t, result.Document.Edges, 1)
}

func TestMergeWarnsOnOversizedGroup(t *testing.T) {
	docA := baseDoc("2026-01-01")
	shared := "5493006MHB84DD0ZWV18"
	for i := 0; i < 3; i++ {
		docA.Nodes = append(docA.Nodes, model.Node{
			ID:          string(rune('a' + i)),
			Type:        model.NodeTypeOrganization,
			Identifiers: []model.Identifier{{Scheme: "lei", Value: shared}},
		})
	}

	cfg := Config{SameAsThreshold: model.ConfidencePossible, GroupSizeLimit: 2}
	result, err := Merge([]Input{{File: "a.json", Document: docA}}, cfg, random.CryptoSource{}, nil)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningOversizedGroup, result.Warnings[0].Kind)
}

func floatp(f float64) *float64 { return &f }
