// Package merge implements the eight-step merge procedure (spec.md
// §4.5): given two or more documents, it resolves shared entities via
// the identity machinery in pkg/identity and emits a single merged
// document plus a list of warnings.
package merge

import "omtsf/pkg/model"

// Config is the merge engine's configuration surface (spec.md §6).
type Config struct {
	// SameAsThreshold is the minimum confidence a same_as edge must
	// carry to be honored during union. Default possible — see
	// SPEC_FULL.md's resolution of Open Question 1: an absent
	// confidence is itself treated as possible, so a validator that
	// defaulted the threshold to definite would silently ignore the
	// most common case.
	SameAsThreshold model.Confidence `default:"possible"`
	// GroupSizeLimit is the safety ceiling on merge-group membership;
	// groups exceeding it still merge, but emit a warning.
	GroupSizeLimit int `default:"50"`
}

// DefaultConfig returns the spec-documented defaults.
func DefaultConfig() Config {
	return Config{SameAsThreshold: model.ConfidencePossible, GroupSizeLimit: 50}
}
