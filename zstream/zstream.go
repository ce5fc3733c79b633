// Package zstream wraps the zlib compression primitives used for IDAT
// payloads. The codec core treats compression as an external collaborator;
// this package is that collaborator, backed by github.com/klauspost/compress.
package zstream

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	errs "github.com/Wombatlord/png-codec/errors"
)

// Compression levels, re-exported so callers need not import the backing
// compressor directly.
const (
	NoCompression      = zlib.NoCompression
	BestSpeed          = zlib.BestSpeed
	BestCompression    = zlib.BestCompression
	DefaultCompression = zlib.DefaultCompression
)

// Inflate decompresses a zlib stream, failing on malformed input.
func Inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.PhaseInflate, errs.KindCorruptStream, err, "open zlib stream")
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.PhaseInflate, errs.KindCorruptStream, err, "inflate IDAT payload")
	}
	return out, nil
}

// Deflate compresses data as a zlib stream at the given level.
func Deflate(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, errs.Wrap(errs.PhaseDeflate, errs.KindInvalidInput, err, "invalid compression level")
	}
	if _, err := w.Write(data); err != nil {
		return nil, errs.Wrap(errs.PhaseDeflate, errs.KindInvalidInput, err, "deflate filtered stream")
	}
	if err := w.Close(); err != nil {
		return nil, errs.Wrap(errs.PhaseDeflate, errs.KindInvalidInput, err, "flush zlib stream")
	}
	return buf.Bytes(), nil
}
