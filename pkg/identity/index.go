package identity

import (
	"sort"
	"strings"

	"omtsf/pkg/model"
)

// schemeInternal is the one identifier scheme that never takes part in
// entity resolution: it exists purely for a producer's own bookkeeping
// and carries no cross-file meaning.
const schemeInternal = "internal"

// LEIStatusChecker reports whether lei is known to be in the GLEIF
// ANNULLED registration state. It is the same capability pkg/validate's
// level-3 external data source exposes; index construction accepts it
// as a narrow function value rather than importing pkg/validate, to
// keep identity free of a dependency on the rule engine.
type LEIStatusChecker func(lei string) (annulled bool)

// Index maps a canonical identifier string to the ordered list of node
// ordinals bearing it (spec.md §4.3).
type Index map[string][]int

// Entry pairs a node ordinal with the specific identifier record that
// produced a canonical key, so a caller that needs to re-run the finer
// pairwise identity predicate (trimmed-value equality, open-ended
// temporal overlap) over candidates sharing a key does not have to
// re-scan every node's identifiers from scratch.
type Entry struct {
	Ordinal    int
	Identifier model.Identifier
}

// EntryIndex maps a canonical identifier string to every (ordinal,
// identifier) pair that produced it.
type EntryIndex map[string][]Entry

// BuildEntries is Build's richer sibling: it retains the actual
// Identifier record behind each canonical key, which the merge and
// diff engines need to evaluate the pairwise node identity predicate
// over candidates the index has already narrowed down.
func BuildEntries(nodes []model.Node, ordinalBase int, checker LEIStatusChecker) EntryIndex {
	idx := make(EntryIndex)
	for i, n := range nodes {
		ordinal := ordinalBase + i
		for _, id := range n.Identifiers {
			if excluded(id, checker) {
				continue
			}
			key := Canonical(id.Scheme, id.Value, authorityOf(id))
			idx[key] = append(idx[key], Entry{Ordinal: ordinal, Identifier: id})
		}
	}
	return idx
}

// Build constructs the identifier index over nodes, keyed by global
// ordinal (the caller decides what "ordinal" means: a bare index into
// nodes for a single-document operation, or an offset into a unified
// space when two documents are concatenated for merge/diff). The
// `internal` scheme is excluded, and so is any identifier flagged
// annulled by checker (nil checker skips that check entirely).
func Build(nodes []model.Node, ordinalBase int, checker LEIStatusChecker) Index {
	entries := BuildEntries(nodes, ordinalBase, checker)
	idx := make(Index, len(entries))
	for key, es := range entries {
		for _, e := range es {
			idx[key] = append(idx[key], e.Ordinal)
		}
	}
	for key := range idx {
		sort.Ints(idx[key])
	}
	return idx
}

func excluded(id model.Identifier, checker LEIStatusChecker) bool {
	scheme := strings.ToLower(id.Scheme)
	if scheme == schemeInternal {
		return true
	}
	if scheme == "lei" && checker != nil && checker(id.Value) {
		return true
	}
	return false
}

func authorityOf(id model.Identifier) string {
	if id.Authority == nil {
		return ""
	}
	return *id.Authority
}

// Keys returned sorted is frequently what callers of Index want (merge
// step 8 sorts groups by canonical identifier); Sorted returns the
// index's keys in UTF-8 byte order.
func (idx Index) Sorted() []string {
	keys := make([]string, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
