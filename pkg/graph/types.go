// Package graph materializes an OMTSF document as a directed labeled
// property multigraph over stable integer indices (spec.md §4.7):
// removing an element never invalidates another element's index, and
// two edges of the same type between the same pair of nodes are
// distinct first-class edges, not merged into one.
package graph

import "omtsf/pkg/model"

// Direction controls which way BFS-based traversals walk edges.
type Direction int

const (
	// Outgoing follows edges from source to target.
	Outgoing Direction = iota
	// Incoming follows edges from target to source.
	Incoming
	// Undirected follows edges in either direction.
	Undirected
)

// nodeRecord is the graph's lightweight view of one node: its local id
// and type, plus the index into the owning document's Nodes slice
// where its full record lives. Keeping the weight small is what keeps
// neighbor iteration cache-friendly (spec.md §4.7); full property
// access is always an indirection through the document.
type nodeRecord struct {
	id        string
	nodeType  model.NodeType
	dataIndex int
}

// edgeRecord is the graph's lightweight view of one edge.
type edgeRecord struct {
	id        string
	edgeType  model.EdgeType
	dataIndex int
	source    int // node index
	target    int // node index
}

// Graph is a directed labeled property multigraph over a document's
// nodes and edges. Construct with Build; the zero value is not usable.
type Graph struct {
	doc *model.Document

	nodes []nodeRecord
	edges []edgeRecord

	idIndex       map[string]int           // node id -> node index
	nodeTypeIndex map[model.NodeType][]int // node type -> node indices
	edgeTypeIndex map[model.EdgeType][]int // edge type -> edge indices

	// outAdj[n] / inAdj[n] list edge indices leaving/entering node n.
	outAdj [][]int
	inAdj  [][]int
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NodeIndex returns the node index for id, or false if id is unknown.
func (g *Graph) NodeIndex(id string) (int, bool) {
	idx, ok := g.idIndex[id]
	return idx, ok
}

// NodeID returns the node id at index i.
func (g *Graph) NodeID(i int) string { return g.nodes[i].id }

// Node returns the full document record for the node at index i.
func (g *Graph) Node(i int) model.Node { return g.doc.Nodes[g.nodes[i].dataIndex] }

// Edge returns the full document record for the edge at index i.
func (g *Graph) Edge(i int) model.Edge { return g.doc.Edges[g.edges[i].dataIndex] }

func edgeTypeFilterAllows(filter func(model.EdgeType) bool, t model.EdgeType) bool {
	return filter == nil || filter(t)
}
