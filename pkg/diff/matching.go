package diff

import (
	"omtsf/pkg/identity"
	"omtsf/pkg/model"
)

// nodePair is a matched (A ordinal, B ordinal) pair in the unified
// ordinal space described below.
type nodePair struct {
	aIndex int
	bIndex int
}

// nodeMatchResult is the outcome of matching A's and B's nodes.
type nodeMatchResult struct {
	Matches   []nodePair
	Deletions []int // indices into a
	Additions []int // indices into b
	Warnings  []Warning

	// aRep/bRep map each side's local node index to its union-find
	// representative in the unified ordinal space, for edge bucketing.
	// A group's representative is unique across both sides regardless
	// of whether it was matched, so unmatched nodes bucket safely too.
	aRep []int
	bRep []int
}

// matchNodes implements spec.md §4.8's node matching: build the
// identifier index over a unified ordinal space with A occupying
// [0, |A|) and B occupying [|A|, |A|+|B|), union ordinals whose
// identifiers satisfy the node identity predicate, then classify each
// resulting group as a deletion (A-only), addition (B-only), or match
// (mixed). A group spanning more than one member on the same side is
// ambiguous: it emits a warning and is Cartesian-paired.
func matchNodes(a, b []model.Node, checker identity.LEIStatusChecker) nodeMatchResult {
	lenA := len(a)
	combined := make([]model.Node, 0, lenA+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)

	entries := identity.BuildEntries(combined, 0, checker)
	uf := identity.NewUnionFind(len(combined))
	for _, es := range entries {
		for i := 0; i < len(es); i++ {
			for j := i + 1; j < len(es); j++ {
				if identity.IdentifiersMatch(es[i].Identifier, es[j].Identifier) {
					uf.Union(es[i].Ordinal, es[j].Ordinal)
				}
			}
		}
	}

	result := nodeMatchResult{
		aRep: make([]int, lenA),
		bRep: make([]int, len(b)),
	}
	for i := range combined {
		rep := uf.Find(i)
		if i < lenA {
			result.aRep[i] = rep
		} else {
			result.bRep[i-lenA] = rep
		}
	}
	for _, members := range uf.Groups() {
		var aMembers, bMembers []int
		for _, m := range members {
			if m < lenA {
				aMembers = append(aMembers, m)
			} else {
				bMembers = append(bMembers, m-lenA)
			}
		}
		switch {
		case len(aMembers) == 0:
			result.Additions = append(result.Additions, bMembers...)
		case len(bMembers) == 0:
			result.Deletions = append(result.Deletions, aMembers...)
		default:
			if len(aMembers) > 1 || len(bMembers) > 1 {
				result.Warnings = append(result.Warnings, Warning{
					Kind:    WarningAmbiguousMatch,
					Message: ambiguousMatchMessage(a, aMembers, b, bMembers),
				})
			}
			for _, ai := range aMembers {
				for _, bi := range bMembers {
					result.Matches = append(result.Matches, nodePair{aIndex: ai, bIndex: bi})
				}
			}
		}
	}
	return result
}

func ambiguousMatchMessage(a []model.Node, aMembers []int, b []model.Node, bMembers []int) string {
	msg := "ambiguous node match: "
	for i, ai := range aMembers {
		if i > 0 {
			msg += ", "
		}
		msg += a[ai].ID
	}
	msg += " <-> "
	for i, bi := range bMembers {
		if i > 0 {
			msg += ", "
		}
		msg += b[bi].ID
	}
	return msg
}

// edgePair is a matched (A index, B index) pair into their respective
// documents' edge slices.
type edgePair struct {
	aIndex int
	bIndex int
}

type edgeMatchResult struct {
	Matches   []edgePair
	Deletions []int // indices into a's edges
	Additions []int // indices into b's edges
}

// edgeBucketKey groups edges by their endpoints' match representative
// and type, mirroring pkg/merge's edge bucketing (spec.md §4.5).
type edgeBucketKey struct {
	sourceRep int
	targetRep int
	edgeType  model.EdgeType
}

// matchEdges implements spec.md §4.8's edge matching: map every node to
// its group representative from matchNodes's unified ordinal space,
// bucket A's edges by (source_rep, target_rep, type), then for each B
// edge consume the first unmatched same-bucket A edge whose identity
// predicate agrees. same_as edges are never matched.
func matchEdges(a, b []model.Edge, nodeMatch nodeMatchResult, aNodes, bNodes []model.Node) edgeMatchResult {
	aRepOfNode := make(map[string]int, len(aNodes))
	bRepOfNode := make(map[string]int, len(bNodes))
	for i, n := range aNodes {
		aRepOfNode[n.ID] = nodeMatch.aRep[i]
	}
	for i, n := range bNodes {
		bRepOfNode[n.ID] = nodeMatch.bRep[i]
	}

	buckets := map[edgeBucketKey][]int{}
	for i, e := range a {
		if e.Type == model.EdgeTypeSameAs {
			continue
		}
		key := edgeBucketKey{sourceRep: aRepOfNode[e.Source], targetRep: aRepOfNode[e.Target], edgeType: e.Type}
		buckets[key] = append(buckets[key], i)
	}
	consumed := make([]bool, len(a))

	var result edgeMatchResult
	for j, e := range b {
		if e.Type == model.EdgeTypeSameAs {
			result.Additions = append(result.Additions, j)
			continue
		}
		key := edgeBucketKey{sourceRep: bRepOfNode[e.Source], targetRep: bRepOfNode[e.Target], edgeType: e.Type}
		matched := false
		for _, ai := range buckets[key] {
			if consumed[ai] {
				continue
			}
			if identity.EdgesMatch(e.Type, a[ai].Identifiers, e.Identifiers, a[ai].Properties, e.Properties) {
				consumed[ai] = true
				result.Matches = append(result.Matches, edgePair{aIndex: ai, bIndex: j})
				matched = true
				break
			}
		}
		if !matched {
			result.Additions = append(result.Additions, j)
		}
	}
	for i, e := range a {
		if e.Type == model.EdgeTypeSameAs {
			result.Deletions = append(result.Deletions, i)
			continue
		}
		if !consumed[i] {
			result.Deletions = append(result.Deletions, i)
		}
	}
	return result
}
