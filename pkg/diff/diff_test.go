package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omtsf/pkg/model"
)

func strp(s string) *string { return &s }

func docA() *model.Document {
	return &model.Document{
		OMTSFVersion: "1.0",
		SnapshotDate: "2026-01-01",
		FileSalt:     "0000000000000000000000000000000000000000000000000000000000000000",
		Nodes: []model.Node{
			{
				ID:   "n-0",
				Type: model.NodeTypeOrganization,
				Identifiers: []model.Identifier{
					{Scheme: "lei", Value: "5493006MHB84DD0ZWV18"},
				},
				Name: strp("Acme Holdings"),
			},
			{
				ID:   "n-1",
				Type: model.NodeTypeOrganization,
				Identifiers: []model.Identifier{
					{Scheme: "lei", Value: "AAAAAAAAAAAAAAAAAAAA"},
				},
				Name: strp("Acme Subsidiary"),
			},
		},
		Edges: []model.Edge{
			{ID: "e-0", Type: model.EdgeTypeOwnership, Source: "n-0", Target: "n-1",
				Properties: model.EdgeProperties{Percentage: floatp(100)}},
		},
	}
}

func floatp(f float64) *float64 { return &f }

func TestDiffDetectsUnchangedMatch(t *testing.T) {
	a := docA()
	b := docA()
	result, err := Diff(a, b, Filter{}, nil)
	require.NoError(t, err)
	assert.Len(t, result.NodeUnchanged, 2)
	assert.Len(t, result.EdgeUnchanged, 1)
	assert.Empty(t, result.NodeAdditions)
	assert.Empty(t, result.NodeDeletions)
	assert.Empty(t, result.NodeModifications)
}

func TestDiffDetectsNodeAdditionAndDeletion(t *testing.T) {
	a := docA()
	b := docA()
	b.Nodes = b.Nodes[:1] // drop n-1
	b.Edges = nil
	b.Nodes = append(b.Nodes, model.Node{
		ID:   "n-9",
		Type: model.NodeTypeOrganization,
		Identifiers: []model.Identifier{
			{Scheme: "lei", Value: "BRANDNEWENTITY00000"},
		},
		Name: strp("New Co"),
	})

	result, err := Diff(a, b, Filter{}, nil)
	require.NoError(t, err)
	require.Len(t, result.NodeDeletions, 1)
	assert.Equal(t, "n-1", result.NodeDeletions[0].ID)
	require.Len(t, result.NodeAdditions, 1)
	assert.Equal(t, "n-9", result.NodeAdditions[0].ID)
}

func TestDiffDetectsNodeModification(t *testing.T) {
	a := docA()
	b := docA()
	b.Nodes[0].Name = strp("Acme Holdings LLC")

	result, err := Diff(a, b, Filter{}, nil)
	require.NoError(t, err)
	require.Len(t, result.NodeModifications, 1)
	mod := result.NodeModifications[0]
	assert.Equal(t, "n-0", mod.A.ID)
	require.Len(t, mod.FieldDiffs, 1)
	assert.Equal(t, "name", mod.FieldDiffs[0].Field)
}

func TestDiffIgnoresFilteredFields(t *testing.T) {
	a := docA()
	b := docA()
	b.Nodes[0].Name = strp("Acme Holdings LLC")

	result, err := Diff(a, b, Filter{IgnoreFields: []string{"name"}}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.NodeModifications)
}

func TestDiffDetectsEdgeModification(t *testing.T) {
	a := docA()
	b := docA()
	b.Edges[0].Properties.ValidFrom = strp("2026-03-01")

	result, err := Diff(a, b, Filter{}, nil)
	require.NoError(t, err)
	require.Len(t, result.EdgeModifications, 1)
	assert.Equal(t, "valid_from", result.EdgeModifications[0].FieldDiffs[0].Field)
}

// A change to an ownership edge's percentage changes its identity
// properties, so it surfaces as a deletion paired with an addition
// rather than a modification — the same bucketing rule pkg/merge uses
// to decide whether two edges denote the same real-world assertion.
func TestDiffEdgeIdentityChangeIsDeletionPlusAddition(t *testing.T) {
	a := docA()
	b := docA()
	b.Edges[0].Properties.Percentage = floatp(60)

	result, err := Diff(a, b, Filter{}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.EdgeModifications)
	assert.Len(t, result.EdgeDeletions, 1)
	assert.Len(t, result.EdgeAdditions, 1)
}

func TestDiffRestrictsByNodeTypeCascadingToEdges(t *testing.T) {
	a := docA()
	b := docA()
	b.Edges[0].Properties.Percentage = floatp(60)

	result, err := Diff(a, b, Filter{NodeTypes: []model.NodeType{model.NodeTypePerson}}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.NodeUnchanged)
	assert.Empty(t, result.EdgeModifications)
	assert.Empty(t, result.EdgeUnchanged)
}

func TestDiffHeaderDiffReportsSnapshotDateChange(t *testing.T) {
	a := docA()
	b := docA()
	b.SnapshotDate = "2026-02-01"

	result, err := Diff(a, b, Filter{}, nil)
	require.NoError(t, err)
	require.NotNil(t, result.HeaderDiff)
	require.NotNil(t, result.HeaderDiff.SnapshotDate)
	assert.Equal(t, "2026-01-01", result.HeaderDiff.SnapshotDate.Before)
	assert.Equal(t, "2026-02-01", result.HeaderDiff.SnapshotDate.After)
}

func TestDiffHeaderDiffNilWhenUnchanged(t *testing.T) {
	a := docA()
	b := docA()
	result, err := Diff(a, b, Filter{}, nil)
	require.NoError(t, err)
	assert.Nil(t, result.HeaderDiff)
}

func TestDiffAmbiguousMatchWarnsAndCartesianPairs(t *testing.T) {
	a := docA()
	// Give n-0 and n-1 the same identifier so they collapse into one
	// A-side group.
	a.Nodes[1].Identifiers = a.Nodes[0].Identifiers
	b := docA()

	result, err := Diff(a, b, Filter{}, nil)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningAmbiguousMatch, result.Warnings[0].Kind)
}
