package graph

import "omtsf/pkg/model"

// neighbors returns the edge indices to walk from node n in direction
// dir, honoring an optional edge-type filter.
func (g *Graph) neighbors(n int, dir Direction, filter func(model.EdgeType) bool) []int {
	var out []int
	switch dir {
	case Outgoing:
		for _, e := range g.outAdj[n] {
			if edgeTypeFilterAllows(filter, g.edges[e].edgeType) {
				out = append(out, e)
			}
		}
	case Incoming:
		for _, e := range g.inAdj[n] {
			if edgeTypeFilterAllows(filter, g.edges[e].edgeType) {
				out = append(out, e)
			}
		}
	case Undirected:
		for _, e := range g.outAdj[n] {
			if edgeTypeFilterAllows(filter, g.edges[e].edgeType) {
				out = append(out, e)
			}
		}
		for _, e := range g.inAdj[n] {
			if edgeTypeFilterAllows(filter, g.edges[e].edgeType) {
				out = append(out, e)
			}
		}
	}
	return out
}

// other returns the endpoint of edge e on the opposite side of n.
func (g *Graph) other(e edgeRecord, n int) int {
	if e.source == n {
		return e.target
	}
	return e.source
}

// Reachable runs BFS from start, returning the indices of the nodes
// reachable in direction dir (excluding start itself), honoring an
// optional edge-type filter evaluated per edge. BFS rather than DFS:
// it is stack-safe at the advisory one-million-node ceiling, and its
// distance ordering is useful for tier analysis even when unused here.
func (g *Graph) Reachable(startIdx int, dir Direction, filter func(model.EdgeType) bool) []int {
	visited := make([]bool, len(g.nodes))
	visited[startIdx] = true
	queue := []int{startIdx}
	var reached []int

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, ei := range g.neighbors(n, dir, filter) {
			next := g.other(g.edges[ei], n)
			if visited[next] {
				continue
			}
			visited[next] = true
			reached = append(reached, next)
			queue = append(queue, next)
		}
	}
	return reached
}

// ShortestPath runs BFS with a predecessor map, returning the sequence
// of node indices from start to target (inclusive), or nil if no path
// exists. A singleton path is returned when start == target.
func (g *Graph) ShortestPath(startIdx, targetIdx int, dir Direction, filter func(model.EdgeType) bool) []int {
	if startIdx == targetIdx {
		return []int{startIdx}
	}
	pred := make(map[int]int, len(g.nodes))
	visited := make([]bool, len(g.nodes))
	visited[startIdx] = true
	queue := []int{startIdx}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, ei := range g.neighbors(n, dir, filter) {
			next := g.other(g.edges[ei], n)
			if visited[next] {
				continue
			}
			visited[next] = true
			pred[next] = n
			if next == targetIdx {
				return reconstructPath(pred, startIdx, targetIdx)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func reconstructPath(pred map[int]int, start, target int) []int {
	path := []int{target}
	cur := target
	for cur != start {
		cur = pred[cur]
		path = append(path, cur)
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
