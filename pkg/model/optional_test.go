package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalJSONStates(t *testing.T) {
	tests := []struct {
		name string
		opt  Optional[string]
		want string
	}{
		{name: "some", opt: Some("hello"), want: `"hello"`},
		{name: "null", opt: Null[string](), want: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opt.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestOptionalUnmarshalRoundTrip(t *testing.T) {
	var o Optional[string]
	require.NoError(t, o.UnmarshalJSON([]byte(`"abc"`)))
	assert.True(t, o.IsSome())
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	var n Optional[string]
	require.NoError(t, n.UnmarshalJSON([]byte(`null`)))
	assert.True(t, n.IsNull())
	assert.False(t, n.IsSome())

	var zero Optional[string]
	assert.True(t, zero.IsAbsent())
}

func TestIdentifierValidToDualOptional(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "absent", json: `{"scheme":"lei","value":"X"}`},
		{name: "null", json: `{"scheme":"lei","value":"X","valid_to":null}`},
		{name: "present", json: `{"scheme":"lei","value":"X","valid_to":"2030-01-01"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id Identifier
			require.NoError(t, json.Unmarshal([]byte(tt.json), &id))

			out, err := json.Marshal(id)
			require.NoError(t, err)

			var back Identifier
			require.NoError(t, json.Unmarshal(out, &back))

			switch tt.name {
			case "absent":
				assert.True(t, back.ValidTo.IsAbsent())
			case "null":
				assert.True(t, back.ValidTo.IsNull())
			case "present":
				assert.True(t, back.ValidTo.IsSome())
				v, _ := back.ValidTo.Get()
				assert.Equal(t, "2030-01-01", v)
			}
		})
	}
}
