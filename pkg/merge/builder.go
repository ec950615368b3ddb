package merge

import "omtsf/pkg/model"

// fileEdge pairs an edge with the file it came from, since model.Edge
// carries no notion of provenance and its Source/Target are only
// unique within that file.
type fileEdge struct {
	file string
	edge model.Edge
}

// rewrittenEdge is a fileEdge whose Source/Target have already been
// resolved through the owning file's id map to global node ordinals.
// ordinal is this edge's own position in the concatenated edge
// sequence, used as the final deterministic sort tie-break.
type rewrittenEdge struct {
	ordinal       int
	file          string
	edge          model.Edge
	sourceOrdinal int
	targetOrdinal int
}

// builder performs merge step 1: concatenating every input's nodes
// into one dense global ordinal space and recording, per file, the map
// from that file's local node id to the resulting ordinal.
type builder struct {
	nodes     []model.Node
	nodeFile  []string
	fileEdges []fileEdge
	idMaps    map[string]map[string]int
}

func newBuilder(inputs []Input) *builder {
	b := &builder{idMaps: make(map[string]map[string]int, len(inputs))}
	for _, in := range inputs {
		idMap := make(map[string]int, len(in.Document.Nodes))
		for _, n := range in.Document.Nodes {
			ordinal := len(b.nodes)
			idMap[n.ID] = ordinal
			b.nodes = append(b.nodes, n)
			b.nodeFile = append(b.nodeFile, in.File)
		}
		b.idMaps[in.File] = idMap
		for _, e := range in.Document.Edges {
			b.fileEdges = append(b.fileEdges, fileEdge{file: in.File, edge: e})
		}
	}
	return b
}

func (b *builder) resolve(file, localID string) (int, bool) {
	m, ok := b.idMaps[file]
	if !ok {
		return 0, false
	}
	ord, ok := m[localID]
	return ord, ok
}

// rewrittenEdges resolves every edge's file-local endpoints to global
// ordinals. An edge whose endpoint fails to resolve is dropped here;
// pkg/validate's edge-endpoints-resolve rule is the authority on
// flagging that as a conformance error, so the merge engine does not
// duplicate that diagnostic.
func (b *builder) rewrittenEdges() []rewrittenEdge {
	var out []rewrittenEdge
	ordinal := 0
	for _, fe := range b.fileEdges {
		srcOrd, srcOK := b.resolve(fe.file, fe.edge.Source)
		tgtOrd, tgtOK := b.resolve(fe.file, fe.edge.Target)
		if !srcOK || !tgtOK {
			continue
		}
		out = append(out, rewrittenEdge{
			ordinal: ordinal, file: fe.file, edge: fe.edge,
			sourceOrdinal: srcOrd, targetOrdinal: tgtOrd,
		})
		ordinal++
	}
	return out
}
