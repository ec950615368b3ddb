package graph

import (
	"fmt"

	"omtsf/pkg/errors"
	"omtsf/pkg/model"
)

// Build constructs a Graph from doc in two passes (spec.md §4.7):
// first every node is inserted, failing on a duplicate id; then every
// edge is inserted, failing on a dangling source or target. Alongside
// the adjacency lists, it builds the id index and the two type
// indices the selector and cycle-detection paths use.
func Build(doc *model.Document) (*Graph, error) {
	g := &Graph{
		doc:           doc,
		idIndex:       make(map[string]int, len(doc.Nodes)),
		nodeTypeIndex: make(map[model.NodeType][]int),
		edgeTypeIndex: make(map[model.EdgeType][]int),
	}

	for i, n := range doc.Nodes {
		if _, dup := g.idIndex[n.ID]; dup {
			return nil, errors.NewEngineError("graph.Build", fmt.Errorf("duplicate node id %q", n.ID))
		}
		idx := len(g.nodes)
		g.idIndex[n.ID] = idx
		g.nodes = append(g.nodes, nodeRecord{id: n.ID, nodeType: n.Type, dataIndex: i})
		g.nodeTypeIndex[n.Type] = append(g.nodeTypeIndex[n.Type], idx)
	}

	g.outAdj = make([][]int, len(g.nodes))
	g.inAdj = make([][]int, len(g.nodes))

	for i, e := range doc.Edges {
		srcIdx, ok := g.idIndex[e.Source]
		if !ok {
			return nil, errors.NewEngineError("graph.Build", fmt.Errorf("edge %q has dangling source %q", e.ID, e.Source))
		}
		tgtIdx, ok := g.idIndex[e.Target]
		if !ok {
			return nil, errors.NewEngineError("graph.Build", fmt.Errorf("edge %q has dangling target %q", e.ID, e.Target))
		}
		idx := len(g.edges)
		g.edges = append(g.edges, edgeRecord{id: e.ID, edgeType: e.Type, dataIndex: i, source: srcIdx, target: tgtIdx})
		g.edgeTypeIndex[e.Type] = append(g.edgeTypeIndex[e.Type], idx)
		g.outAdj[srcIdx] = append(g.outAdj[srcIdx], idx)
		g.inAdj[tgtIdx] = append(g.inAdj[tgtIdx], idx)
	}

	return g, nil
}
