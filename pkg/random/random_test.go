package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct{ b byte }

func (f fixedSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = f.b
	}
	return len(p), nil
}

func TestBytesUsesSource(t *testing.T) {
	b, err := Bytes(fixedSource{b: 0x42}, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x42, 0x42, 0x42, 0x42}, b)
}

func TestCryptoSourceProducesRequestedLength(t *testing.T) {
	b, err := Bytes(CryptoSource{}, 32)
	require.NoError(t, err)
	assert.Len(t, b, 32)
}
