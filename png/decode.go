package png

import (
	"go.uber.org/zap"

	errs "github.com/Wombatlord/png-codec/errors"
	"github.com/Wombatlord/png-codec/png/internal/binary"
	"github.com/Wombatlord/png-codec/zstream"
)

// ParseDatastream splits a signature-prefixed PNG datastream into its ordered
// chunks. Every chunk's CRC is verified against its type tag and payload, and
// all contiguous IDAT chunks are folded into a single merged IDAT, so callers
// only ever see one. Parsing stops at IEND; a stream that ends without one
// fails with a missing-terminator error.
func ParseDatastream(data []byte) ([]Chunk, error) {
	if len(data) < len(Signature) || string(data[:len(Signature)]) != string(Signature[:]) {
		return nil, errs.BadSignature(data)
	}

	r := binary.NewReader(data[len(Signature):])
	truncated := func(section string, err error) error {
		return errs.Wrap(errs.PhaseParse, errs.KindTruncated, r.WrapError(section, err), section)
	}

	var chunks []Chunk
	var idatRun []Chunk

	flushIDAT := func() {
		if len(idatRun) == 0 {
			return
		}
		chunks = append(chunks, MergeIDAT(idatRun))
		idatRun = nil
	}

	for r.Remaining() > 0 {
		length, err := r.ReadU32()
		if err != nil {
			return nil, truncated("chunk length", err)
		}
		tag, err := r.ReadTag()
		if err != nil {
			return nil, truncated("chunk type", err)
		}

		// Payload plus the trailing CRC must fit in what is left.
		if int(length)+4 > r.Remaining() {
			return nil, errs.Truncated(tag, length, r.Remaining())
		}

		payload, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, truncated("chunk payload", err)
		}
		declared, err := r.ReadU32()
		if err != nil {
			return nil, truncated("chunk checksum", err)
		}

		if actual := chunkCRC(tag, payload); actual != declared {
			return nil, errs.ChecksumMismatch(tag, length, declared, actual)
		}

		chunk := Chunk{Length: length, Tag: tag, Payload: payload, CRC: declared}

		if tag == TagIDAT {
			idatRun = append(idatRun, chunk)
			continue
		}
		flushIDAT()
		chunks = append(chunks, chunk)

		if tag == TagIEND {
			Logger().Debug("parsed datastream",
				zap.Int("chunks", len(chunks)),
				zap.Int("bytes", len(data)),
			)
			return chunks, nil
		}
	}

	return nil, errs.MissingTerminator()
}

// Decode decodes a complete PNG datastream into raw RGBA pixels. The fixed
// validation order is signature, chunk framing and CRC, header constraints,
// then scanline reconstruction, so a malformed header is reported before any
// pixel-level work.
func Decode(data []byte) (*Image, error) {
	chunks, err := ParseDatastream(data)
	if err != nil {
		return nil, err
	}

	if len(chunks) == 0 || chunks[0].Tag != TagIHDR {
		tag := ""
		if len(chunks) > 0 {
			tag = chunks[0].Tag
		}
		return nil, errs.New(errs.PhaseParse, errs.KindInvalidInput).
			Want(TagIHDR).
			Got(tag).
			Detail("datastream must begin with an IHDR chunk").
			Build()
	}

	header, err := DecodeHeader(chunks[0].Payload)
	if err != nil {
		return nil, err
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}

	idat, ok := findChunk(chunks, TagIDAT)
	if !ok {
		return nil, errs.InvalidInput(errs.PhaseParse, "datastream has no IDAT chunk")
	}

	filtered, err := zstream.Inflate(idat.Payload)
	if err != nil {
		return nil, err
	}

	pix, trace, err := Reconstruct(filtered, int(header.Height), header.Stride())
	if err != nil {
		return nil, err
	}

	Logger().Debug("decoded image",
		zap.Uint32("width", header.Width),
		zap.Uint32("height", header.Height),
		zap.Int("raw_bytes", len(pix)),
	)

	return &Image{
		Pix:         pix,
		Width:       int(header.Width),
		Height:      int(header.Height),
		FilterTrace: trace,
	}, nil
}

func findChunk(chunks []Chunk, tag string) (Chunk, bool) {
	for _, c := range chunks {
		if c.Tag == tag {
			return c, true
		}
	}
	return Chunk{}, false
}
