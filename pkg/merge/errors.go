package merge

import (
	"errors"
	"fmt"
	"strings"

	"omtsf/pkg/validate"
)

var errNoInputs = errors.New("merge: no input documents")

func oversizedGroupMessage(representative, size, limit int) string {
	return fmt.Sprintf("merge group represented by node ordinal %d has %d members, exceeding the configured limit of %d", representative, size, limit)
}

// nonConformantError reports a post-merge level-1 validation failure:
// the merge procedure itself succeeded, but its output violates the
// structural invariants every OMTSF document must hold.
type nonConformantError struct {
	result validate.Result
}

func (e *nonConformantError) Error() string {
	diags := e.result.ByLevel(validate.LevelError)
	msgs := make([]string, 0, len(diags))
	for _, d := range diags {
		msgs = append(msgs, fmt.Sprintf("%s: %s", d.RuleID, d.Message))
	}
	return fmt.Sprintf("merged document failed level-1 conformance: %s", strings.Join(msgs, "; "))
}
