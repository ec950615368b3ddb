package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// compressZstd wraps data in a zstd frame at the library's default
// compression level.
func compressZstd(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompressZstdBounded decompresses data, refusing to produce more
// than maxBytes of output — the guard against a decompression bomb
// spec.md §5 requires (Decode passes 4x the configured maximum input
// size by default).
func decompressZstdBounded(data []byte, maxBytes int64) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	limited := io.LimitReader(zr, maxBytes+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > maxBytes {
		return nil, fmt.Errorf("codec: decompressed size exceeds bound of %d bytes", maxBytes)
	}
	return out, nil
}
