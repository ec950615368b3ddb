package merge

import (
	"encoding/json"
	"sort"

	"omtsf/pkg/model"
)

// scalarSource is one member's contribution to a scalar field being
// merged: the file it came from (for conflict-ordering) and its value,
// or nil if the member carries no value for that field.
type scalarSource struct {
	file  string
	value any
}

// mergeScalar implements spec.md §4.5 step 6's scalar rule: if every
// present value agrees (compared by JSON serialization, so it works
// uniformly across strings, numbers, bools, and small structs), return
// it; otherwise return nil and every distinct value as a conflict list,
// sorted by (source_file, json_serialization).
func mergeScalar(sources []scalarSource) (merged any, conflict []scalarSource) {
	var first any
	haveFirst := false
	agree := true
	seen := make(map[string]bool)
	var distinct []scalarSource
	for _, s := range sources {
		if s.value == nil {
			continue
		}
		b, _ := json.Marshal(s.value)
		key := string(b)
		if !seen[key] {
			seen[key] = true
			distinct = append(distinct, s)
		}
		if !haveFirst {
			first, haveFirst = s.value, true
			continue
		}
		fb, _ := json.Marshal(first)
		if string(fb) != key {
			agree = false
		}
	}
	if !haveFirst {
		return nil, nil
	}
	if agree {
		return first, nil
	}
	sort.Slice(distinct, func(i, j int) bool {
		if distinct[i].file != distinct[j].file {
			return distinct[i].file < distinct[j].file
		}
		bi, _ := json.Marshal(distinct[i].value)
		bj, _ := json.Marshal(distinct[j].value)
		return string(bi) < string(bj)
	})
	return nil, distinct
}

// recordConflict attaches a _conflicts entry for field when mergeScalar
// found disagreement; a no-op when there was nothing to record.
func recordConflict(conflicts map[string]any, field string, srcs []scalarSource) {
	if len(srcs) == 0 {
		return
	}
	entries := make([]map[string]any, 0, len(srcs))
	for _, s := range srcs {
		entries = append(entries, map[string]any{"source_file": s.file, "value": s.value})
	}
	conflicts[field] = entries
}

func derefStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func derefFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func derefBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

// optionalValue encodes a dual-optional string field into a plain value
// mergeScalar can compare: nil for absent (no assertion was ever made,
// so it takes no part in the agreement check), a tagged map for null
// or some so the two states never compare equal to each other.
func optionalValue(o model.Optional[string]) any {
	if o.IsNull() {
		return map[string]any{"state": "null"}
	}
	if v, ok := o.Get(); ok {
		return map[string]any{"state": "some", "value": v}
	}
	return nil
}

// mergeOptional is mergeScalar specialized to dual-optional string
// fields, decoding the tagged representation optionalValue produced
// back into an Optional.
func mergeOptional(sources []scalarSource) (model.Optional[string], []scalarSource) {
	merged, conflict := mergeScalar(sources)
	if merged == nil {
		return model.Absent[string](), conflict
	}
	m := merged.(map[string]any)
	if m["state"] == "null" {
		return model.Null[string](), conflict
	}
	return model.Some(m["value"].(string)), conflict
}

func authorityOf(id model.Identifier) string {
	if id.Authority == nil {
		return ""
	}
	return *id.Authority
}
