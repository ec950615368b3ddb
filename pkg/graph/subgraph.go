package graph

import "omtsf/pkg/model"

// InducedSubgraph returns a new document containing exactly the listed
// node ids and every edge whose source and target are both in that
// set (spec.md §4.7). reporting_entity is cleared on the output if its
// referent was not retained.
func (g *Graph) InducedSubgraph(nodeIDs []string) model.Document {
	keep := make(map[int]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		if idx, ok := g.idIndex[id]; ok {
			keep[idx] = true
		}
	}
	return g.induced(keep)
}

func (g *Graph) induced(keep map[int]bool) model.Document {
	out := *g.doc
	out.Nodes = nil
	out.Edges = nil

	for idx, keepIt := range keep {
		if keepIt {
			out.Nodes = append(out.Nodes, g.Node(idx))
		}
	}
	for i, e := range g.edges {
		if keep[e.source] && keep[e.target] {
			out.Edges = append(out.Edges, g.Edge(i))
		}
	}

	if out.ReportingEntity != nil {
		if idx, ok := g.idIndex[*out.ReportingEntity]; !ok || !keep[idx] {
			out.ReportingEntity = nil
		}
	}
	return out
}

// EgoGraph returns the induced subgraph around center out to radius
// hops, treating the graph as undirected during expansion.
func (g *Graph) EgoGraph(centerIdx int, radius int) model.Document {
	keep := map[int]bool{centerIdx: true}
	frontier := []int{centerIdx}
	for hop := 0; hop < radius; hop++ {
		var next []int
		for _, n := range frontier {
			for _, ei := range g.neighbors(n, Undirected, nil) {
				other := g.other(g.edges[ei], n)
				if keep[other] {
					continue
				}
				keep[other] = true
				next = append(next, other)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return g.induced(keep)
}
