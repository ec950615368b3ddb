package graph

import (
	"omtsf/pkg/errors"
	"omtsf/pkg/model"
)

// ReachableFrom is Reachable's id-based counterpart, returning node
// ids rather than indices. Returns a QueryError(QueryUnknownID) if
// start is not a node id in the graph.
func (g *Graph) ReachableFrom(start string, dir Direction, filter func(model.EdgeType) bool) ([]string, error) {
	idx, ok := g.idIndex[start]
	if !ok {
		return nil, errors.NewQueryError(errors.QueryUnknownID, start)
	}
	indices := g.Reachable(idx, dir, filter)
	ids := make([]string, len(indices))
	for i, n := range indices {
		ids[i] = g.nodes[n].id
	}
	return ids, nil
}

// ShortestPathByID is ShortestPath's id-based counterpart. Returns
// QueryError(QueryUnknownID) for an unrecognized endpoint, or
// QueryError(QueryNoPath) when no route connects them.
func (g *Graph) ShortestPathByID(from, to string, dir Direction, filter func(model.EdgeType) bool) ([]string, error) {
	fromIdx, ok := g.idIndex[from]
	if !ok {
		return nil, errors.NewQueryError(errors.QueryUnknownID, from)
	}
	toIdx, ok := g.idIndex[to]
	if !ok {
		return nil, errors.NewQueryError(errors.QueryUnknownID, to)
	}
	path := g.ShortestPath(fromIdx, toIdx, dir, filter)
	if path == nil {
		return nil, errors.NewQueryError(errors.QueryNoPath, from+" -> "+to)
	}
	return g.idsOf(path), nil
}

// AllPathsByID is AllPaths's id-based counterpart.
func (g *Graph) AllPathsByID(from, to string, dir Direction, maxDepth int, filter func(model.EdgeType) bool) ([][]string, error) {
	fromIdx, ok := g.idIndex[from]
	if !ok {
		return nil, errors.NewQueryError(errors.QueryUnknownID, from)
	}
	toIdx, ok := g.idIndex[to]
	if !ok {
		return nil, errors.NewQueryError(errors.QueryUnknownID, to)
	}
	paths := g.AllPaths(fromIdx, toIdx, dir, maxDepth, filter)
	out := make([][]string, len(paths))
	for i, p := range paths {
		out[i] = g.idsOf(p)
	}
	return out, nil
}

// SelectExtractChecked is SelectExtract, failing with
// QueryError(QueryEmptySelector) instead of returning an empty
// document when nothing matched.
func (g *Graph) SelectExtractChecked(s SelectorSet) (model.Document, error) {
	doc := g.SelectExtract(s)
	if len(doc.Nodes) == 0 {
		return model.Document{}, errors.NewQueryError(errors.QueryEmptySelector, "")
	}
	return doc, nil
}

func (g *Graph) idsOf(indices []int) []string {
	ids := make([]string, len(indices))
	for i, idx := range indices {
		ids[i] = g.nodes[idx].id
	}
	return ids
}
