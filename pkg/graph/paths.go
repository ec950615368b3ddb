package graph

import "omtsf/pkg/model"

// DefaultMaxDepth is the depth bound AllPaths applies when the caller
// does not request a narrower one. It is a hard cap: spec.md §4.7 sets
// complexity at O(V^d), so the bound is load-bearing, not a suggestion.
const DefaultMaxDepth = 20

type pathFrame struct {
	node int
	next int // index into this node's neighbor list to resume from
}

// AllPaths enumerates every simple path from start to target up to
// maxDepth edges, via a single depth-bounded depth-first walk with an
// explicit stack: it never recurses, so it cannot overflow the native
// call stack on a million-node graph. Paths are returned in the order
// the walk finds them, not sorted by length. Simple-path enforcement
// uses an on-path bitset indexed by node index rather than per-path
// allocation. Results are deduplicated since a multigraph can offer
// more than one edge along the same node sequence.
func (g *Graph) AllPaths(startIdx, targetIdx int, dir Direction, maxDepth int, filter func(model.EdgeType) bool) [][]int {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if startIdx == targetIdx {
		return [][]int{{startIdx}}
	}

	onPath := make([]bool, len(g.nodes))
	onPath[startIdx] = true
	stack := []pathFrame{{node: startIdx, next: 0}}
	seen := make(map[string]bool)
	var results [][]int

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		neighbors := g.neighbors(top.node, dir, filter)

		if top.next >= len(neighbors) || len(stack) > maxDepth {
			onPath[top.node] = false
			stack = stack[:len(stack)-1]
			continue
		}

		ei := neighbors[top.next]
		top.next++
		next := g.other(g.edges[ei], top.node)

		if next == targetIdx {
			path := make([]int, 0, len(stack)+1)
			for _, f := range stack {
				path = append(path, f.node)
			}
			path = append(path, targetIdx)
			key := pathKey(path)
			if !seen[key] {
				seen[key] = true
				results = append(results, path)
			}
			continue
		}

		if onPath[next] || len(stack) >= maxDepth {
			continue
		}
		onPath[next] = true
		stack = append(stack, pathFrame{node: next, next: 0})
	}

	return results
}

func pathKey(path []int) string {
	b := make([]byte, 0, len(path)*5)
	for _, n := range path {
		b = append(b, byte(n), byte(n>>8), byte(n>>16), byte(n>>24), ',')
	}
	return string(b)
}
