package merge

import (
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"omtsf/pkg/errors"
	"omtsf/pkg/identity"
	"omtsf/pkg/model"
	"omtsf/pkg/random"
)

// assemble implements merge step 8: assign final node/edge ids after
// sorting groups and edges into the order spec.md §4.5 specifies, then
// frame the result with a fresh salt and merge_metadata record.
func assemble(inputs []Input, groups []mergedGroup, edges []mergedEdge, src random.Source) (model.Document, error) {
	sort.Slice(groups, func(i, j int) bool {
		gi, gj := groups[i], groups[j]
		if gi.canonicalSort == "" || gj.canonicalSort == "" {
			if gi.canonicalSort == gj.canonicalSort {
				return gi.representative < gj.representative
			}
			return gi.canonicalSort != "" // non-empty sorts before empty
		}
		return identity.Less(gi.canonicalSort, gj.canonicalSort)
	})

	repToID := make(map[int]string, len(groups))
	groupCanonical := make(map[int]string, len(groups))
	nodes := make([]model.Node, len(groups))
	for i, g := range groups {
		id := fmt.Sprintf("n-%d", i)
		repToID[g.representative] = id
		groupCanonical[g.representative] = g.canonicalSort
		n := g.node
		n.ID = id
		nodes[i] = n
	}

	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if ca, cb := groupCanonical[a.sourceRep], groupCanonical[b.sourceRep]; ca != cb {
			return sortKeyLess(ca, cb)
		}
		if ta, tb := groupCanonical[a.targetRep], groupCanonical[b.targetRep]; ta != tb {
			return sortKeyLess(ta, tb)
		}
		if a.edgeType != b.edgeType {
			return a.edgeType < b.edgeType
		}
		if a.canonical != b.canonical {
			return sortKeyLess(a.canonical, b.canonical)
		}
		return a.representativeOrdinal < b.representativeOrdinal
	})

	outEdges := make([]model.Edge, len(edges))
	for i, e := range edges {
		outEdges[i] = model.Edge{
			ID:          fmt.Sprintf("e-%d", i),
			Type:        e.edgeType,
			Source:      repToID[e.sourceRep],
			Target:      repToID[e.targetRep],
			Identifiers: e.identifiers,
			Properties:  e.properties,
		}
	}

	salt, err := random.Bytes(src, 32)
	if err != nil {
		return model.Document{}, errors.NewEngineError("merge", err)
	}

	var latestDate string
	var files, reportingEntities []string
	seenFile, seenRE := map[string]bool{}, map[string]bool{}
	for _, in := range inputs {
		if in.Document.SnapshotDate > latestDate {
			latestDate = in.Document.SnapshotDate
		}
		if !seenFile[in.File] {
			seenFile[in.File] = true
			files = append(files, in.File)
		}
		if in.Document.ReportingEntity != nil && !seenRE[*in.Document.ReportingEntity] {
			seenRE[*in.Document.ReportingEntity] = true
			reportingEntities = append(reportingEntities, *in.Document.ReportingEntity)
		}
	}
	sort.Strings(files)
	sort.Strings(reportingEntities)

	conflictCount := countConflicts(nodes, outEdges)

	doc := model.Document{
		OMTSFVersion:    inputs[0].Document.OMTSFVersion,
		SnapshotDate:    latestDate,
		FileSalt:        hex.EncodeToString(salt),
		DisclosureScope: inputs[0].Document.DisclosureScope,
		Nodes:           nodes,
		Edges:           outEdges,
		Extra: map[string]any{
			"merge_metadata": map[string]any{
				"merge_run_id":       uuid.New().String(),
				"source_files":       files,
				"reporting_entities": reportingEntities,
				"merged_at":          time.Now().UTC().Format(time.RFC3339),
				"merged_node_count":  len(nodes),
				"merged_edge_count":  len(outEdges),
				"conflict_count":     conflictCount,
			},
		},
	}
	return doc, nil
}

func countConflicts(nodes []model.Node, edges []model.Edge) int {
	count := 0
	for _, n := range nodes {
		if cm, ok := n.Extra["_conflicts"].(map[string]any); ok {
			count += len(cm)
		}
	}
	for _, e := range edges {
		if cm, ok := e.Properties.Extra["_conflicts"].(map[string]any); ok {
			count += len(cm)
		}
	}
	return count
}

// sortKeyLess orders canonical-identifier sort keys with an empty
// string (no external identifier) sorting last, per spec.md §4.5 step 8.
func sortKeyLess(a, b string) bool {
	if a == b {
		return false
	}
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return identity.Less(a, b)
}
