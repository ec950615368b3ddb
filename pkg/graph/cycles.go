package graph

import "omtsf/pkg/model"

// DetectCycles implements spec.md §4.7's cycle detection: Kahn's
// algorithm over an edge-type-filtered in-degree map drains every node
// that is neither on a cycle nor reachable from one; whatever remains
// afterward lies on a cycle or downstream of one. Individual cycles are then extracted from
// that residual set by iterative DFS with a globally-visited marker so
// no cycle is reported twice. Each returned cycle is closed — its
// first node index is repeated at the end. This is used primarily to
// confirm legal_parentage edges form a forest (no cycles at all).
func (g *Graph) DetectCycles(edgeType model.EdgeType) [][]int {
	filter := func(t model.EdgeType) bool { return t == edgeType }

	inDegree := make([]int, len(g.nodes))
	for _, e := range g.edges {
		if e.edgeType != edgeType {
			continue
		}
		inDegree[e.target]++
	}

	queue := make([]int, 0, len(g.nodes))
	removed := make([]bool, len(g.nodes))
	for n, d := range inDegree {
		if d == 0 {
			queue = append(queue, n)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		removed[n] = true
		for _, ei := range g.outAdj[n] {
			if g.edges[ei].edgeType != edgeType {
				continue
			}
			t := g.edges[ei].target
			inDegree[t]--
			if inDegree[t] == 0 {
				queue = append(queue, t)
			}
		}
	}

	globalVisited := make([]bool, len(g.nodes))
	var cycles [][]int
	for n := range g.nodes {
		if removed[n] || globalVisited[n] {
			continue
		}
		if cycle := g.extractCycle(n, filter, globalVisited); cycle != nil {
			cycles = append(cycles, cycle)
		}
	}
	return cycles
}

// extractCycle walks forward from n (known to lie in the residual,
// not-yet-reported set) via an explicit stack until it revisits a node
// already on the current path, then closes the cycle from that point.
func (g *Graph) extractCycle(n int, filter func(model.EdgeType) bool, globalVisited []bool) []int {
	onPath := map[int]int{} // node -> position in path
	var path []int
	cur := n

	for {
		if pos, ok := onPath[cur]; ok {
			cycle := append([]int{}, path[pos:]...)
			cycle = append(cycle, cur)
			for _, v := range cycle {
				globalVisited[v] = true
			}
			return cycle
		}
		if globalVisited[cur] {
			return nil
		}
		onPath[cur] = len(path)
		path = append(path, cur)

		next := -1
		for _, ei := range g.outAdj[cur] {
			if edgeTypeFilterAllows(filter, g.edges[ei].edgeType) {
				next = g.edges[ei].target
				break
			}
		}
		if next == -1 {
			for _, v := range path {
				globalVisited[v] = true
			}
			return nil
		}
		cur = next
	}
}
