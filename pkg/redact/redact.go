package redact

import (
	"encoding/hex"
	"fmt"

	"omtsf/pkg/errors"
	"omtsf/pkg/model"
	"omtsf/pkg/random"
	"omtsf/pkg/validate"
)

// Redactor holds the inputs to one redaction run. Construct with New.
type Redactor struct {
	doc    *model.Document
	scope  model.DisclosureScope
	retain RetainSet
}

// New builds a Redactor for doc, targeting scope, keeping the nodes
// named in retain identifiable wherever scope classification permits.
func New(doc *model.Document, scope model.DisclosureScope, retain RetainSet) *Redactor {
	if retain == nil {
		retain = NewRetainSet()
	}
	return &Redactor{doc: doc, scope: scope, retain: retain}
}

// Run performs the redaction, returning a new document that satisfies
// the target scope's sensitivity invariants and level-1 conformance.
// src defaults to random.CryptoSource{} when nil.
func (r *Redactor) Run(src random.Source) (model.Document, error) {
	if src == nil {
		src = random.CryptoSource{}
	}

	rawSalt, err := hex.DecodeString(r.doc.FileSalt)
	if err != nil {
		return model.Document{}, errors.NewEngineError("redact", fmt.Errorf("invalid file_salt: %w", err))
	}

	dispositions := make(map[string]nodeDisposition, len(r.doc.Nodes))
	for _, n := range r.doc.Nodes {
		dispositions[n.ID] = classifyNode(n, r.scope, r.retain)
	}

	boundaryRefs := make(map[string]string, len(r.doc.Nodes))
	for _, n := range r.doc.Nodes {
		if dispositions[n.ID] != dispositionReplace {
			continue
		}
		val, err := boundaryReferenceValue(n, rawSalt, src)
		if err != nil {
			return model.Document{}, errors.NewEngineError("redact", err)
		}
		boundaryRefs[n.ID] = val
	}

	keepIdentifiers := func(ids []model.Identifier, nodeType model.NodeType) []model.Identifier {
		var kept []model.Identifier
		for _, id := range ids {
			if scopeAllows(r.scope, effectiveIdentifierSensitivity(id, nodeType)) {
				kept = append(kept, id)
			}
		}
		return kept
	}

	var outNodes []model.Node
	for _, n := range r.doc.Nodes {
		switch dispositions[n.ID] {
		case dispositionOmit:
			continue
		case dispositionReplace:
			outNodes = append(outNodes, model.Node{
				ID:   n.ID,
				Type: model.NodeTypeBoundaryRef,
				Identifiers: []model.Identifier{
					{Scheme: "opaque", Value: boundaryRefs[n.ID]},
				},
			})
		default: // dispositionRetain
			kept := n
			kept.Identifiers = keepIdentifiers(n.Identifiers, n.Type)
			outNodes = append(outNodes, kept)
		}
	}

	var outEdges []model.Edge
	for _, e := range r.doc.Edges {
		sourceDisp, ok := dispositions[e.Source]
		if !ok {
			continue
		}
		targetDisp, ok := dispositions[e.Target]
		if !ok {
			continue
		}
		if classifyEdge(e, r.scope, sourceDisp, targetDisp) != dispositionRetain {
			continue
		}
		out := e
		out.Identifiers = keepIdentifiers(e.Identifiers, "")
		out.Properties = stripEdgeProperties(e.Properties, e.Type, r.scope)
		outEdges = append(outEdges, out)
	}

	out := *r.doc
	out.DisclosureScope = r.scope
	out.Nodes = outNodes
	out.Edges = outEdges

	result := validate.NewRegistry().Run(&out, validate.Config{RunL1: true}, nil)
	if !result.Conformant() {
		return model.Document{}, errors.NewEngineError("redact", &nonConformantError{result: result})
	}

	return out, nil
}

type nonConformantError struct {
	result validate.Result
}

func (e *nonConformantError) Error() string {
	diags := e.result.ByLevel(validate.LevelError)
	return fmt.Sprintf("redacted document failed level-1 conformance (%d findings)", len(diags))
}
