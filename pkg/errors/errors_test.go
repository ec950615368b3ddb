package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorUnwraps(t *testing.T) {
	cause := errors.New("bad magic bytes")
	err := NewDecodeError("unknown encoding", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unknown encoding")
}

func TestEngineErrorUnwraps(t *testing.T) {
	cause := errors.New("csprng exhausted")
	err := NewEngineError("redact.boundaryReference", cause)
	assert.ErrorIs(t, err, cause)
}

func TestQueryErrorKindString(t *testing.T) {
	err := NewQueryError(QueryNoPath, "n-0 -> n-9")
	assert.Equal(t, "query: no_path: n-0 -> n-9", err.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{RuleIDs: []string{"node-id-required"}, Count: 1}
	assert.Contains(t, err.Error(), "node-id-required")
}
