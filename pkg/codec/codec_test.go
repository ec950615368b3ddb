package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omtsf/pkg/model"
)

func sampleDoc() *model.Document {
	return &model.Document{
		OMTSFVersion: "1.0.0",
		SnapshotDate: "2026-01-15",
		FileSalt:     "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"[:64],
		Nodes: []model.Node{
			{ID: "n-0", Type: model.NodeTypeOrganization},
		},
	}
}

func TestDecodeDetectsJSON(t *testing.T) {
	doc := sampleDoc()
	raw, err := Encode(doc, EncodeOptions{Encoding: EncodingJSON})
	require.NoError(t, err)

	got, err := Decode(raw, DefaultDecodeOptions())
	require.NoError(t, err)
	assert.Equal(t, doc.OMTSFVersion, got.OMTSFVersion)
	assert.Len(t, got.Nodes, 1)
}

func TestDecodeDetectsCBOR(t *testing.T) {
	doc := sampleDoc()
	raw, err := Encode(doc, EncodeOptions{Encoding: EncodingCBOR})
	require.NoError(t, err)
	assert.Equal(t, cborSelfDescribeTag, raw[:3])

	got, err := Decode(raw, DefaultDecodeOptions())
	require.NoError(t, err)
	assert.Equal(t, doc.SnapshotDate, got.SnapshotDate)
}

func TestDecodeDetectsZstdAndRedetectsInnerEncoding(t *testing.T) {
	doc := sampleDoc()
	raw, err := Encode(doc, EncodeOptions{Encoding: EncodingCBOR, Compress: true})
	require.NoError(t, err)
	assert.Equal(t, zstdMagic, raw[:4])

	got, err := Decode(raw, DefaultDecodeOptions())
	require.NoError(t, err)
	assert.Equal(t, doc.OMTSFVersion, got.OMTSFVersion)
}

func TestDecodeRejectsUnrecognizedMagic(t *testing.T) {
	_, err := Decode([]byte("not a document"), DefaultDecodeOptions())
	assert.Error(t, err)
}

func TestDecodeRejectsOversizedInput(t *testing.T) {
	_, err := Decode([]byte(`{"omtsf_version":"1.0.0"}`), DecodeOptions{MaxInputBytes: 4})
	assert.Error(t, err)
}

func TestEncodeJSONPrettyIndents(t *testing.T) {
	doc := sampleDoc()
	raw, err := Encode(doc, EncodeOptions{Encoding: EncodingJSON, Pretty: true})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  ")
}

func TestDecompressZstdBoundedRejectsOversizedOutput(t *testing.T) {
	big := make([]byte, 1<<20)
	compressed, err := compressZstd(big)
	require.NoError(t, err)

	_, err = decompressZstdBounded(compressed, 10)
	assert.Error(t, err)
}
