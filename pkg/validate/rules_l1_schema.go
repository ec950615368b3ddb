package validate

import (
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"

	"omtsf/pkg/model"
)

// schemaRules wires github.com/kaptinlin/jsonschema into the registry
// for the two structural checks design note §9 flags as genuinely
// polymorphic: a node's geo attribute (GeoJSON-shaped, not a fixed Go
// struct) and an edge's control_type variant set (a single JSON key
// whose legal values differ by edge type). This mirrors the teacher's
// pkg/helpers.ValidateDocumentData, which compiles a schema once with
// jsonschema.NewCompiler and evaluates it per document rather than
// hand-rolling the checks in Go.
func schemaRules() []Rule {
	return []Rule{
		newRule("node-geo-schema", LevelError, ruleNodeGeoSchema),
		newRule("edge-control-type-schema", LevelError, ruleEdgeControlTypeSchema),
	}
}

const geoSchemaJSON = `{
  "type": "object",
  "required": ["type", "coordinates"],
  "properties": {
    "type": {"enum": ["Point", "Polygon", "MultiPolygon", "LineString"]},
    "coordinates": {"type": "array"}
  }
}`

// controlTypeSchemaJSON gives the disjoint enum of legal control_type
// values per edge type that shares the key (spec.md §3 /
// design note §9).
var controlTypeSchemaJSON = map[model.EdgeType]string{
	model.EdgeTypeOperationalControl: `{"enum": ["board_majority", "management_contract", "voting_agreement", "franchise"]}`,
	model.EdgeTypeBeneficialOwnership: `{"enum": ["voting_rights", "board_appointment", "veto_rights", "other_means"]}`,
}

var (
	schemaCompileOnce sync.Once
	geoSchema         *jsonschema.Schema
	controlTypeSchema map[model.EdgeType]*jsonschema.Schema
	schemaCompileErr  error
)

func compiledSchemas() error {
	schemaCompileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		geoSchema, schemaCompileErr = compiler.Compile([]byte(geoSchemaJSON))
		if schemaCompileErr != nil {
			return
		}
		controlTypeSchema = make(map[model.EdgeType]*jsonschema.Schema, len(controlTypeSchemaJSON))
		for t, raw := range controlTypeSchemaJSON {
			s, err := compiler.Compile([]byte(raw))
			if err != nil {
				schemaCompileErr = err
				return
			}
			controlTypeSchema[t] = s
		}
	})
	return schemaCompileErr
}

func ruleNodeGeoSchema(doc *model.Document, ds DataSource) []Diagnostic {
	if err := compiledSchemas(); err != nil {
		return []Diagnostic{{RuleID: "node-geo-schema", Severity: LevelError, Location: Location{Global: true}, Message: err.Error()}}
	}
	var diags []Diagnostic
	for _, n := range doc.Nodes {
		if n.Geo == nil {
			continue
		}
		result := geoSchema.Validate(n.Geo)
		if !result.IsValid() {
			diags = append(diags, Diagnostic{
				RuleID: "node-geo-schema", Severity: LevelError,
				Location: Location{NodeID: n.ID, NodeField: "geo"},
				Message:  fmt.Sprintf("node %q geo attribute fails schema validation", n.ID),
			})
		}
	}
	return diags
}

func ruleEdgeControlTypeSchema(doc *model.Document, ds DataSource) []Diagnostic {
	if err := compiledSchemas(); err != nil {
		return []Diagnostic{{RuleID: "edge-control-type-schema", Severity: LevelError, Location: Location{Global: true}, Message: err.Error()}}
	}
	var diags []Diagnostic
	for _, e := range doc.Edges {
		if e.Properties.ControlType == nil {
			continue
		}
		schema, ok := controlTypeSchema[e.Type]
		if !ok {
			continue
		}
		result := schema.Validate(*e.Properties.ControlType)
		if !result.IsValid() {
			diags = append(diags, Diagnostic{
				RuleID: "edge-control-type-schema", Severity: LevelError,
				Location: Location{EdgeID: e.ID, EdgeField: "control_type"},
				Message:  fmt.Sprintf("edge %q control_type %q is not a valid variant for type %q", e.ID, *e.Properties.ControlType, e.Type),
			})
		}
	}
	return diags
}
