// Package codec implements OMTSF's on-the-wire serialization: magic-byte
// encoding detection, JSON and CBOR document codecs, and optional zstd
// framing (spec.md §4.1, §6). It is the only package that touches raw
// bytes; every other engine operates on a parsed *model.Document.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	omtsferrors "omtsf/pkg/errors"
	"omtsf/pkg/model"
)

// Encoding names the wire format a Document is serialized as.
type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingCBOR
)

// zstdMagic is the four-byte zstd frame magic number (RFC 8878 §3.1.1).
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// cborSelfDescribeTag is the three-byte CBOR self-describing tag
// (major type 6, tag 55799) this module prepends on every CBOR write
// and uses, alongside the zstd and JSON prefixes, to detect encoding on
// read.
var cborSelfDescribeTag = []byte{0xD9, 0xD9, 0xF7}

// DefaultMaxInputBytes bounds the size of an encoded document this
// package will attempt to decode, per spec.md §5's configurable input
// ceiling.
const DefaultMaxInputBytes = 256 * 1024 * 1024

// DefaultDecompressionRatio bounds decompressed size as a multiple of
// the configured maximum input size, guarding against a zstd bomb.
const DefaultDecompressionRatio = 4

// DecodeOptions bounds the cost Decode is willing to pay on untrusted
// input.
type DecodeOptions struct {
	MaxInputBytes      int64
	MaxDecompressRatio  int64
}

// DefaultDecodeOptions returns the spec.md §5 defaults.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		MaxInputBytes:      DefaultMaxInputBytes,
		MaxDecompressRatio: DefaultDecompressionRatio,
	}
}

// Decode detects data's encoding by magic prefix (zstd, CBOR, or JSON,
// in that order — a zstd frame is decompressed and its result
// re-detected, since a compressed payload can itself be JSON or CBOR)
// and parses it into a Document.
func Decode(data []byte, opts DecodeOptions) (*model.Document, error) {
	if opts.MaxInputBytes > 0 && int64(len(data)) > opts.MaxInputBytes {
		return nil, omtsferrors.NewDecodeError("input exceeds maximum size", nil)
	}
	if len(data) == 0 {
		return nil, omtsferrors.NewDecodeError("empty input", nil)
	}

	if bytes.HasPrefix(data, zstdMagic) {
		ratio := opts.MaxDecompressRatio
		if ratio <= 0 {
			ratio = DefaultDecompressionRatio
		}
		maxInput := opts.MaxInputBytes
		if maxInput <= 0 {
			maxInput = DefaultMaxInputBytes
		}
		decompressed, err := decompressZstdBounded(data, maxInput*ratio)
		if err != nil {
			return nil, omtsferrors.NewDecodeError("zstd decompression failed", err)
		}
		inner := DecodeOptions{MaxInputBytes: maxInput * ratio, MaxDecompressRatio: 1}
		return Decode(decompressed, inner)
	}

	if bytes.HasPrefix(data, cborSelfDescribeTag) {
		return decodeCBOR(data[len(cborSelfDescribeTag):])
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return decodeJSON(trimmed)
	}

	return nil, omtsferrors.NewDecodeError("unrecognized magic bytes", nil)
}

func decodeJSON(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, omtsferrors.NewDecodeError("invalid JSON document", err)
	}
	return &doc, nil
}

func decodeCBOR(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := cborDecMode.Unmarshal(data, &doc); err != nil {
		return nil, omtsferrors.NewDecodeError("invalid CBOR document", err)
	}
	return &doc, nil
}

// EncodeOptions configures Encode's output shape.
type EncodeOptions struct {
	Encoding Encoding
	Compress bool
	// Pretty requests indented JSON output; ignored for CBOR.
	Pretty bool
}

// Encode serializes doc as configured by opts. CBOR output is always
// prefixed with the three-byte self-describing tag; JSON output
// respects opts.Pretty for indentation.
func Encode(doc *model.Document, opts EncodeOptions) ([]byte, error) {
	var out []byte
	var err error
	switch opts.Encoding {
	case EncodingJSON:
		out, err = encodeJSON(doc, opts.Pretty)
	case EncodingCBOR:
		out, err = encodeCBOR(doc)
	default:
		return nil, fmt.Errorf("codec: unknown encoding %d", opts.Encoding)
	}
	if err != nil {
		return nil, err
	}
	if opts.Compress {
		return compressZstd(out)
	}
	return out, nil
}

func encodeJSON(doc *model.Document, pretty bool) ([]byte, error) {
	if !pretty {
		return json.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func encodeCBOR(doc *model.Document) ([]byte, error) {
	body, err := cborEncMode.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(cborSelfDescribeTag)+len(body))
	out = append(out, cborSelfDescribeTag...)
	out = append(out, body...)
	return out, nil
}
