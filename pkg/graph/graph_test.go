package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omtsf/pkg/model"
)

func sampleChainDoc() *model.Document {
	return &model.Document{
		Nodes: []model.Node{
			{ID: "a", Type: model.NodeTypeOrganization},
			{ID: "b", Type: model.NodeTypeOrganization},
			{ID: "c", Type: model.NodeTypeOrganization},
			{ID: "d", Type: model.NodeTypeOrganization},
		},
		Edges: []model.Edge{
			{ID: "e1", Type: model.EdgeTypeLegalParentage, Source: "a", Target: "b"},
			{ID: "e2", Type: model.EdgeTypeLegalParentage, Source: "b", Target: "c"},
			{ID: "e3", Type: model.EdgeTypeLegalParentage, Source: "c", Target: "d"},
		},
	}
}

func TestBuildFailsOnDuplicateNodeID(t *testing.T) {
	doc := &model.Document{Nodes: []model.Node{
		{ID: "a", Type: model.NodeTypeOrganization},
		{ID: "a", Type: model.NodeTypeOrganization},
	}}
	_, err := Build(doc)
	assert.Error(t, err)
}

func TestBuildFailsOnDanglingEdge(t *testing.T) {
	doc := &model.Document{
		Nodes: []model.Node{{ID: "a", Type: model.NodeTypeOrganization}},
		Edges: []model.Edge{{ID: "e1", Type: model.EdgeTypeOwnership, Source: "a", Target: "missing"}},
	}
	_, err := Build(doc)
	assert.Error(t, err)
}

func TestReachableFromFollowsOutgoingChain(t *testing.T) {
	g, err := Build(sampleChainDoc())
	require.NoError(t, err)

	reached, err := g.ReachableFrom("a", Outgoing, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c", "d"}, reached)
}

func TestShortestPathByID(t *testing.T) {
	g, err := Build(sampleChainDoc())
	require.NoError(t, err)

	path, err := g.ShortestPathByID("a", "d", Outgoing, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, path)
}

func TestShortestPathByIDNoPath(t *testing.T) {
	g, err := Build(sampleChainDoc())
	require.NoError(t, err)

	_, err = g.ShortestPathByID("d", "a", Outgoing, nil)
	assert.Error(t, err)
}

func TestShortestPathByIDUnknownNode(t *testing.T) {
	g, err := Build(sampleChainDoc())
	require.NoError(t, err)

	_, err = g.ShortestPathByID("nope", "a", Outgoing, nil)
	assert.Error(t, err)
}

func TestAllPathsByIDDedupesAndRespectsDepth(t *testing.T) {
	g, err := Build(sampleChainDoc())
	require.NoError(t, err)

	paths, err := g.AllPathsByID("a", "d", Outgoing, 10, nil)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"a", "b", "c", "d"}, paths[0])

	paths, err = g.AllPathsByID("a", "d", Outgoing, 2, nil)
	require.NoError(t, err)
	assert.Len(t, paths, 0)
}

func TestDetectCyclesFindsLegalParentageCycle(t *testing.T) {
	doc := sampleChainDoc()
	doc.Edges = append(doc.Edges, model.Edge{ID: "e4", Type: model.EdgeTypeLegalParentage, Source: "d", Target: "a"})
	g, err := Build(doc)
	require.NoError(t, err)

	cycles := g.DetectCycles(model.EdgeTypeLegalParentage)
	require.Len(t, cycles, 1)
	assert.Equal(t, cycles[0][0], cycles[0][len(cycles[0])-1])
}

func TestDetectCyclesEmptyOnForest(t *testing.T) {
	g, err := Build(sampleChainDoc())
	require.NoError(t, err)
	assert.Empty(t, g.DetectCycles(model.EdgeTypeLegalParentage))
}

func TestInducedSubgraphKeepsOnlyEdgesWithBothEndpoints(t *testing.T) {
	g, err := Build(sampleChainDoc())
	require.NoError(t, err)

	sub := g.InducedSubgraph([]string{"a", "b", "d"})
	assert.Len(t, sub.Nodes, 3)
	assert.Len(t, sub.Edges, 1) // only e1 (a->b); e2/e3 touch c
}

func TestSelectorMatchTypeOnlyFastPath(t *testing.T) {
	g, err := Build(sampleChainDoc())
	require.NoError(t, err)

	nodeIdx, edgeIdx := g.SelectorMatch(SelectorSet{NodeTypes: []model.NodeType{model.NodeTypeOrganization}})
	assert.Len(t, nodeIdx, 4)
	assert.Nil(t, edgeIdx)
}

func TestSelectExtractTypeOnlySelectorWithoutExpansion(t *testing.T) {
	g, err := Build(sampleChainDoc())
	require.NoError(t, err)

	doc, err := g.SelectExtractChecked(SelectorSet{
		IdentifierSchemes: nil,
		NodeTypes:         []model.NodeType{model.NodeTypeOrganization},
		Expand:            0,
	})
	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 4)
}
