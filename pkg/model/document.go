package model

// Document is the root OMTSF record: a self-contained directed
// multigraph of nodes and edges framed by a header of exchange
// metadata. A Document owns every nested Node, Edge, and Identifier; it
// is treated as immutable by every engine in this module — mutation
// happens by constructing a new Document (merge, redact, subgraph
// extraction), never by editing one in place.
type Document struct {
	OMTSFVersion string `validate:"required"`
	SnapshotDate string `validate:"required"`
	FileSalt     string `validate:"required,len=64,hexadecimal"`

	DisclosureScope  DisclosureScope
	PreviousSnapshot *string
	SnapshotSequence *int64
	ReportingEntity  *string

	Nodes []Node
	Edges []Edge

	Extra map[string]any
}

var documentFields = []string{
	"omtsf_version", "snapshot_date", "file_salt", "disclosure_scope",
	"previous_snapshot", "snapshot_sequence", "reporting_entity", "nodes", "edges",
}

func (d Document) jsonFields() []field {
	fields := []field{
		{"omtsf_version", d.OMTSFVersion},
		{"snapshot_date", d.SnapshotDate},
		{"file_salt", d.FileSalt},
	}
	if d.DisclosureScope != "" {
		fields = append(fields, field{"disclosure_scope", d.DisclosureScope})
	}
	if d.PreviousSnapshot != nil {
		fields = append(fields, field{"previous_snapshot", *d.PreviousSnapshot})
	}
	if d.SnapshotSequence != nil {
		fields = append(fields, field{"snapshot_sequence", *d.SnapshotSequence})
	}
	if d.ReportingEntity != nil {
		fields = append(fields, field{"reporting_entity", *d.ReportingEntity})
	}
	// nodes/edges are always emitted, even when empty, so a document's
	// shape is stable across round-trips.
	fields = append(fields, field{"nodes", d.nodesOrEmpty()})
	fields = append(fields, field{"edges", d.edgesOrEmpty()})
	return fields
}

func (d Document) nodesOrEmpty() []Node {
	if d.Nodes == nil {
		return []Node{}
	}
	return d.Nodes
}

func (d Document) edgesOrEmpty() []Edge {
	if d.Edges == nil {
		return []Edge{}
	}
	return d.Edges
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return encodeOrderedJSON(d.jsonFields(), d.Extra)
}

// MarshalCBOR implements cbor.Marshaler.
func (d Document) MarshalCBOR() ([]byte, error) {
	return encodeCBORMap(d.jsonFields(), d.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	raw, extra, err := popKnownJSON(data, documentFields)
	if err != nil {
		return err
	}
	get := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		return jsonUnmarshalInto(v, dst)
	}
	if err := get("omtsf_version", &d.OMTSFVersion); err != nil {
		return err
	}
	if err := get("snapshot_date", &d.SnapshotDate); err != nil {
		return err
	}
	if err := get("file_salt", &d.FileSalt); err != nil {
		return err
	}
	if err := get("disclosure_scope", &d.DisclosureScope); err != nil {
		return err
	}
	if err := get("previous_snapshot", &d.PreviousSnapshot); err != nil {
		return err
	}
	if err := get("snapshot_sequence", &d.SnapshotSequence); err != nil {
		return err
	}
	if err := get("reporting_entity", &d.ReportingEntity); err != nil {
		return err
	}
	if err := get("nodes", &d.Nodes); err != nil {
		return err
	}
	if err := get("edges", &d.Edges); err != nil {
		return err
	}
	d.Extra = extra
	return nil
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (d *Document) UnmarshalCBOR(data []byte) error {
	raw, extra, err := popKnownCBOR(data, documentFields)
	if err != nil {
		return err
	}
	get := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		return cborDecMode.Unmarshal(v, dst)
	}
	if err := get("omtsf_version", &d.OMTSFVersion); err != nil {
		return err
	}
	if err := get("snapshot_date", &d.SnapshotDate); err != nil {
		return err
	}
	if err := get("file_salt", &d.FileSalt); err != nil {
		return err
	}
	if err := get("disclosure_scope", &d.DisclosureScope); err != nil {
		return err
	}
	if err := get("previous_snapshot", &d.PreviousSnapshot); err != nil {
		return err
	}
	if err := get("snapshot_sequence", &d.SnapshotSequence); err != nil {
		return err
	}
	if err := get("reporting_entity", &d.ReportingEntity); err != nil {
		return err
	}
	if err := get("nodes", &d.Nodes); err != nil {
		return err
	}
	if err := get("edges", &d.Edges); err != nil {
		return err
	}
	d.Extra = extra
	return nil
}

// NodeIndex returns a map from node id to its index in d.Nodes.
func (d *Document) NodeIndex() map[string]int {
	idx := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// NodeByID returns the node with the given id, if present.
func (d *Document) NodeByID(id string) (*Node, bool) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// EdgeByID returns the edge with the given id, if present.
func (d *Document) EdgeByID(id string) (*Edge, bool) {
	for i := range d.Edges {
		if d.Edges[i].ID == id {
			return &d.Edges[i], true
		}
	}
	return nil, false
}
