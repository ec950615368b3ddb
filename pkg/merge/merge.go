// Package merge implements the multi-file merge engine (spec.md §4.5):
// deterministic, commutative, associative combination of OMTSF
// documents sharing a common disclosure boundary into one snapshot.
package merge

import (
	"sort"

	"omtsf/pkg/errors"
	"omtsf/pkg/identity"
	"omtsf/pkg/model"
	"omtsf/pkg/random"
	"omtsf/pkg/validate"
)

// Input is one source document being merged, paired with a stable name
// used for conflict provenance and merge_metadata's source_files list.
type Input struct {
	File     string
	Document model.Document
}

// WarningKind enumerates non-fatal conditions the merge engine surfaces
// alongside its output document.
type WarningKind string

const (
	WarningOversizedGroup WarningKind = "oversized_group"
)

// Warning is a single non-fatal condition raised during merge.
type Warning struct {
	Kind    WarningKind
	Message string
}

// Result is the outcome of a successful merge.
type Result struct {
	Document model.Document
	Warnings []Warning
}

// Merge combines inputs into a single document following spec.md §4.5's
// eight-step procedure. checker may be nil; it is only consulted to
// exclude ANNULLED LEIs from entity resolution, the same capability
// pkg/validate's level-3 rules use against a DataSource.
func Merge(inputs []Input, cfg Config, src random.Source, checker identity.LEIStatusChecker) (Result, error) {
	if len(inputs) == 0 {
		return Result{}, errors.NewEngineError("merge", errNoInputs)
	}

	// Step 1: concatenate nodes into one global ordinal space.
	b := newBuilder(inputs)

	// Step 2: build the identifier index, retaining per-entry records so
	// the pairwise predicate can be re-run over index-narrowed candidates.
	entries := identity.BuildEntries(b.nodes, 0, checker)

	// Step 3: union identifier candidates within each canonical bucket.
	uf := identity.NewUnionFind(len(b.nodes))
	for _, es := range entries {
		for i := 0; i < len(es); i++ {
			for j := i + 1; j < len(es); j++ {
				if identity.IdentifiersMatch(es[i].Identifier, es[j].Identifier) {
					uf.Union(es[i].Ordinal, es[j].Ordinal)
				}
			}
		}
	}

	// Step 4: apply same_as edges at or above the confidence threshold.
	rewritten := b.rewrittenEdges()
	for _, re := range rewritten {
		if re.edge.Type != model.EdgeTypeSameAs {
			continue
		}
		conf := model.ConfidencePossible
		if c := re.edge.Properties.Confidence; c != nil {
			conf = *c
		}
		if !conf.MeetsThreshold(cfg.SameAsThreshold) {
			continue
		}
		uf.Union(re.sourceOrdinal, re.targetOrdinal)
	}

	// Step 5: enforce the group-size limit, warning (not failing) on
	// oversized groups.
	groups := uf.Groups()
	var warnings []Warning
	limit := cfg.GroupSizeLimit
	if limit > 0 {
		var oversized []int
		for rep, members := range groups {
			if len(members) > limit {
				oversized = append(oversized, rep)
			}
		}
		sort.Ints(oversized)
		for _, rep := range oversized {
			warnings = append(warnings, Warning{
				Kind:    WarningOversizedGroup,
				Message: oversizedGroupMessage(rep, len(groups[rep]), limit),
			})
		}
	}

	// Step 6: form merged nodes.
	mergedGroups := buildMergedNodes(b, groups)

	// ordinalGroup maps every node ordinal to its group's representative,
	// for step 7's endpoint rewriting.
	ordinalGroup := make(map[int]int, len(b.nodes))
	for rep, members := range groups {
		for _, m := range members {
			ordinalGroup[m] = rep
		}
	}

	// Step 7: rewrite and dedupe edges.
	mergedEdges := buildMergedEdges(rewritten, ordinalGroup)

	// Step 8: assemble the output document.
	doc, err := assemble(inputs, mergedGroups, mergedEdges, src)
	if err != nil {
		return Result{}, err
	}

	result := validate.NewRegistry().Run(&doc, validate.Config{RunL1: true}, nil)
	if !result.Conformant() {
		return Result{}, errors.NewEngineError("merge", &nonConformantError{result: result})
	}

	return Result{Document: doc, Warnings: warnings}, nil
}
