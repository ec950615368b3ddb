package graph

import (
	"strings"

	"omtsf/pkg/model"
)

// SelectorSet groups the predicate families spec.md §4.7 names.
// Composition is OR within each group, AND across groups. A group left
// nil/empty is skipped (it imposes no constraint). Node-only selectors
// (Jurisdictions, NameSubstrings) are skipped when evaluating edges and
// vice versa — an edge has neither a jurisdiction nor a name.
type SelectorSet struct {
	NodeTypes             []model.NodeType
	EdgeTypes             []model.EdgeType
	LabelKeys             []string
	LabelKV               map[string]string
	IdentifierSchemes     []string
	IdentifierSchemeValue map[string]string
	Jurisdictions         []string
	NameSubstrings        []string

	// Expand is the number of undirected BFS hops taken from the seed
	// set before final subgraph assembly.
	Expand int
}

func (s SelectorSet) isNodeTypeOnly() bool {
	return len(s.NodeTypes) > 0 && len(s.EdgeTypes) == 0 && len(s.LabelKeys) == 0 &&
		len(s.LabelKV) == 0 && len(s.IdentifierSchemes) == 0 && len(s.IdentifierSchemeValue) == 0 &&
		len(s.Jurisdictions) == 0 && len(s.NameSubstrings) == 0
}

func matchesAny[T comparable](v T, set []T) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

func (g *Graph) nodeMatchesSelector(idx int, s SelectorSet) bool {
	n := g.Node(idx)
	groups := 0
	matched := 0

	if len(s.NodeTypes) > 0 {
		groups++
		if matchesAny(n.Type, s.NodeTypes) {
			matched++
		}
	}
	if len(s.LabelKeys) > 0 {
		groups++
		for _, l := range n.Labels {
			if matchesAny(l.Key, s.LabelKeys) {
				matched++
				break
			}
		}
	}
	if len(s.LabelKV) > 0 {
		groups++
		if labelKVMatches(n.Labels, s.LabelKV) {
			matched++
		}
	}
	if len(s.IdentifierSchemes) > 0 {
		groups++
		for _, id := range n.Identifiers {
			if matchesAny(id.Scheme, s.IdentifierSchemes) {
				matched++
				break
			}
		}
	}
	if len(s.IdentifierSchemeValue) > 0 {
		groups++
		if identifierSchemeValueMatches(n.Identifiers, s.IdentifierSchemeValue) {
			matched++
		}
	}
	if len(s.Jurisdictions) > 0 {
		groups++
		if n.Jurisdiction != nil && matchesAny(*n.Jurisdiction, s.Jurisdictions) {
			matched++
		}
	}
	if len(s.NameSubstrings) > 0 {
		groups++
		if n.Name != nil {
			lower := strings.ToLower(*n.Name)
			for _, sub := range s.NameSubstrings {
				if strings.Contains(lower, strings.ToLower(sub)) {
					matched++
					break
				}
			}
		}
	}
	return groups == 0 || matched == groups
}

func (g *Graph) edgeMatchesSelector(idx int, s SelectorSet) bool {
	e := g.Edge(idx)
	groups := 0
	matched := 0

	if len(s.EdgeTypes) > 0 {
		groups++
		if matchesAny(e.Type, s.EdgeTypes) {
			matched++
		}
	}
	if len(s.LabelKeys) > 0 {
		groups++
		for _, l := range e.Properties.Labels {
			if matchesAny(l.Key, s.LabelKeys) {
				matched++
				break
			}
		}
	}
	if len(s.LabelKV) > 0 {
		groups++
		if labelKVMatches(e.Properties.Labels, s.LabelKV) {
			matched++
		}
	}
	if len(s.IdentifierSchemes) > 0 {
		groups++
		for _, id := range e.Identifiers {
			if matchesAny(id.Scheme, s.IdentifierSchemes) {
				matched++
				break
			}
		}
	}
	if len(s.IdentifierSchemeValue) > 0 {
		groups++
		if identifierSchemeValueMatches(e.Identifiers, s.IdentifierSchemeValue) {
			matched++
		}
	}
	return groups == 0 || matched == groups
}

func labelKVMatches(labels []model.Label, kv map[string]string) bool {
	for k, v := range kv {
		for _, l := range labels {
			if l.Key != k {
				continue
			}
			if got, ok := l.Value.Get(); ok && got == v {
				return true
			}
		}
	}
	return false
}

func identifierSchemeValueMatches(ids []model.Identifier, sv map[string]string) bool {
	for scheme, value := range sv {
		for _, id := range ids {
			if id.Scheme == scheme && id.Value == value {
				return true
			}
		}
	}
	return false
}

// SelectorMatch performs phase 1 only (seed scan), returning matching
// node and edge indices without building a subgraph document — the
// fast path for display-only queries that never need expansion.
func (g *Graph) SelectorMatch(s SelectorSet) (nodeIdx, edgeIdx []int) {
	if s.isNodeTypeOnly() {
		for _, t := range s.NodeTypes {
			nodeIdx = append(nodeIdx, g.nodeTypeIndex[t]...)
		}
		return nodeIdx, nil
	}
	for i := range g.nodes {
		if g.nodeMatchesSelector(i, s) {
			nodeIdx = append(nodeIdx, i)
		}
	}
	for i := range g.edges {
		if g.edgeMatchesSelector(i, s) {
			edgeIdx = append(edgeIdx, i)
		}
	}
	return nodeIdx, edgeIdx
}

// SelectExtract runs the full four-phase selector-based extraction
// (spec.md §4.7): seed scan, add seed edges' endpoints to the seed
// node set, undirected BFS expansion for Expand hops, then induced
// subgraph assembly.
func (g *Graph) SelectExtract(s SelectorSet) model.Document {
	seedNodes, seedEdges := g.SelectorMatch(s)

	keep := make(map[int]bool, len(seedNodes))
	for _, n := range seedNodes {
		keep[n] = true
	}
	for _, ei := range seedEdges {
		keep[g.edges[ei].source] = true
		keep[g.edges[ei].target] = true
	}

	frontier := make([]int, 0, len(keep))
	for n := range keep {
		frontier = append(frontier, n)
	}
	for hop := 0; hop < s.Expand; hop++ {
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
