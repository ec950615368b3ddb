package merge

import (
	"sort"

	"omtsf/pkg/identity"
	"omtsf/pkg/model"
)

// mergedEdge is one output edge prior to final node-id substitution,
// which happens once every group's node id has been assigned.
type mergedEdge struct {
	sourceRep, targetRep  int
	edgeType              model.EdgeType
	identifiers           []model.Identifier
	properties            model.EdgeProperties
	canonical             string // lowest identifier canonical; "" if none
	representativeOrdinal int
}

type edgeBucketKey struct {
	sourceRep, targetRep int
	edgeType             model.EdgeType
}

// buildMergedEdges implements merge step 7: resolve endpoints to
// union-find representatives, bucket by (source_rep, target_rep,
// type), and deduplicate within each bucket via the edge identity
// predicate. same_as edges bypass bucketing entirely — they are never
// deduplicated with each other and are retained individually with
// rewritten endpoints.
func buildMergedEdges(rewritten []rewrittenEdge, ordinalGroup map[int]int) []mergedEdge {
	buckets := map[edgeBucketKey][]rewrittenEdge{}
	var merged []mergedEdge

	for _, re := range rewritten {
		srcRep := ordinalGroup[re.sourceOrdinal]
		tgtRep := ordinalGroup[re.targetOrdinal]
		if re.edge.Type == model.EdgeTypeSameAs {
			merged = append(merged, mergedEdge{
				sourceRep: srcRep, targetRep: tgtRep, edgeType: re.edge.Type,
				identifiers:            re.edge.Identifiers,
				properties:             re.edge.Properties,
				canonical:              lowestCanonical(re.edge.Identifiers),
				representativeOrdinal:  re.ordinal,
			})
			continue
		}
		key := edgeBucketKey{srcRep, tgtRep, re.edge.Type}
		buckets[key] = append(buckets[key], re)
	}

	for key, bucket := range buckets {
		uf := identity.NewUnionFind(len(bucket))
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				if identity.EdgesMatch(key.edgeType, bucket[i].edge.Identifiers, bucket[j].edge.Identifiers, bucket[i].edge.Properties, bucket[j].edge.Properties) {
					uf.Union(i, j)
				}
			}
		}
		for _, memberIdx := range uf.Groups() {
			sort.Ints(memberIdx)
			merged = append(merged, mergeEdgeGroup(key, bucket, memberIdx))
		}
	}
	return merged
}

func mergeEdgeGroup(key edgeBucketKey, bucket []rewrittenEdge, memberIdx []int) mergedEdge {
	var identifiers []model.Identifier
	seen := map[string]bool{}
	minOrdinal := -1
	for _, idx := range memberIdx {
		re := bucket[idx]
		if minOrdinal == -1 || re.ordinal < minOrdinal {
			minOrdinal = re.ordinal
		}
		for _, id := range re.edge.Identifiers {
			canon := identity.Canonical(id.Scheme, id.Value, authorityOf(id))
			if seen[canon] {
				continue
			}
			seen[canon] = true
			identifiers = append(identifiers, id)
		}
	}
	sort.Slice(identifiers, func(i, j int) bool {
		return identity.Less(
			identity.Canonical(identifiers[i].Scheme, identifiers[i].Value, authorityOf(identifiers[i])),
			identity.Canonical(identifiers[j].Scheme, identifiers[j].Value, authorityOf(identifiers[j])),
		)
	})

	props := mergeEdgeProperties(bucket, memberIdx)

	return mergedEdge{
		sourceRep: key.sourceRep, targetRep: key.targetRep, edgeType: key.edgeType,
		identifiers: identifiers, properties: props,
		canonical:              lowestCanonical(identifiers),
		representativeOrdinal:  minOrdinal,
	}
}

func lowestCanonical(ids []model.Identifier) string {
	if len(ids) == 0 {
		return ""
	}
	lowest := identity.Canonical(ids[0].Scheme, ids[0].Value, authorityOf(ids[0]))
	for _, id := range ids[1:] {
		c := identity.Canonical(id.Scheme, id.Value, authorityOf(id))
		if identity.Less(c, lowest) {
			lowest = c
		}
	}
	return lowest
}
