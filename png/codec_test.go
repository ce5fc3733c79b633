package png_test

import (
	"bytes"
	"errors"
	"testing"

	errs "github.com/Wombatlord/png-codec/errors"
	"github.com/Wombatlord/png-codec/png"
	"github.com/Wombatlord/png-codec/png/internal/binary"
)

func mustEncode(t *testing.T, raw []byte, w, h int) []byte {
	t.Helper()
	data, err := png.Encode(raw, w, h)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const w, h = 6, 4
	raw := gradientImage(w, h)

	data := mustEncode(t, raw, w, h)

	if !bytes.HasPrefix(data, png.Signature[:]) {
		t.Error("datastream does not start with the PNG signature")
	}

	img, err := png.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != w || img.Height != h {
		t.Errorf("dimensions %dx%d, want %dx%d", img.Width, img.Height, w, h)
	}
	if !bytes.Equal(img.Pix, raw) {
		t.Error("decoded pixels differ from the encoded source")
	}
	if len(img.FilterTrace) != h {
		t.Errorf("expected %d filter trace entries, got %d", h, len(img.FilterTrace))
	}
}

func TestDecodeScenario3x3(t *testing.T) {
	raw, w, h := rgb3x3()

	data, err := png.EncodeWithFilters(raw, w, h, []png.FilterKind{png.FilterNone})
	if err != nil {
		t.Fatalf("EncodeWithFilters: %v", err)
	}

	img, err := png.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(img.Pix, raw) {
		t.Errorf("expected the original 36-byte buffer back, got % x", img.Pix)
	}
	if r, g, b, a := img.At(0, 0); r != 0xFF || g != 0 || b != 0 || a != 0xFF {
		t.Errorf("pixel (0,0) = %d,%d,%d,%d, want red", r, g, b, a)
	}
	if r, g, b, a := img.At(2, 2); r != 0 || g != 0 || b != 0xFF || a != 0xFF {
		t.Errorf("pixel (2,2) = %d,%d,%d,%d, want blue", r, g, b, a)
	}
}

func TestIDATSplitAndMerge(t *testing.T) {
	const w, h = 8, 8
	raw := gradientImage(w, h)

	reference := mustEncode(t, raw, w, h)
	refImg, err := png.Decode(reference)
	if err != nil {
		t.Fatalf("Decode reference: %v", err)
	}

	// Any positive bound must decode identically once the IDAT run is merged,
	// including the degenerate one-byte-per-chunk case.
	for _, bound := range []int{1, 3, 16, 1 << 20} {
		e := png.Encoder{MaxChunkSize: bound}
		data, err := e.Encode(raw, w, h)
		if err != nil {
			t.Fatalf("Encode with bound %d: %v", bound, err)
		}

		chunks, err := png.ParseDatastream(data)
		if err != nil {
			t.Fatalf("ParseDatastream with bound %d: %v", bound, err)
		}
		idats := 0
		for _, c := range chunks {
			if c.Tag == png.TagIDAT {
				idats++
			}
		}
		if idats != 1 {
			t.Errorf("bound %d: parser exposed %d IDAT chunks, want 1 merged", bound, idats)
		}

		img, err := png.Decode(data)
		if err != nil {
			t.Fatalf("Decode with bound %d: %v", bound, err)
		}
		if !bytes.Equal(img.Pix, refImg.Pix) {
			t.Errorf("bound %d: pixels differ from unsplit encoding", bound)
		}
	}
}

func TestMergeIDATIsPure(t *testing.T) {
	a := png.NewChunk(png.TagIDAT, []byte{1, 2, 3})
	b := png.NewChunk(png.TagIDAT, []byte{4, 5})

	merged := png.MergeIDAT([]png.Chunk{a, b})

	if merged.Length != 5 || !bytes.Equal(merged.Payload, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("unexpected merged chunk: %+v", merged)
	}
	if want := png.NewChunk(png.TagIDAT, []byte{1, 2, 3, 4, 5}); merged.CRC != want.CRC {
		t.Error("merged CRC was not recomputed over the concatenated payload")
	}
	// Inputs are untouched and the merged payload is fresh storage.
	if a.Length != 3 || b.Length != 2 {
		t.Error("merge mutated an input chunk")
	}
	merged.Payload[0] = 99
	if a.Payload[0] != 1 {
		t.Error("merged payload aliases an input chunk")
	}
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	raw, w, h := rgb3x3()
	data := mustEncode(t, raw, w, h)
	data[0] ^= 0xFF

	_, err := png.Decode(data)
	if !errors.Is(err, &errs.Error{Phase: errs.PhaseParse, Kind: errs.KindBadSignature}) {
		t.Errorf("expected bad_signature error, got %v", err)
	}

	if _, err := png.Decode([]byte{0x89, 0x50}); err == nil {
		t.Error("expected error for undersized datastream")
	}
}

func TestDecodeChecksumEnforcement(t *testing.T) {
	raw, w, h := rgb3x3()
	data := mustEncode(t, raw, w, h)

	// Flip one bit in the IHDR payload (offset 8 signature + 8 chunk header)
	// and one in the first IDAT payload byte; both must fail checksum.
	ihdrPayload := 8 + 8
	idatPayload := 8 + 8 + png.HeaderSize + 4 + 8

	for _, off := range []int{ihdrPayload, idatPayload} {
		corrupted := bytes.Clone(data)
		corrupted[off] ^= 0x01

		_, err := png.Decode(corrupted)
		if err == nil {
			t.Fatalf("offset %d: corruption decoded silently", off)
		}
		var perr *errs.Error
		if !errors.As(err, &perr) || perr.Kind != errs.KindChecksumMismatch {
			t.Errorf("offset %d: expected checksum_mismatch, got %v", off, err)
		}
		if perr.Chunk == "" {
			t.Errorf("offset %d: checksum error does not name the chunk", off)
		}
	}
}

func TestParseRejectsTruncatedChunk(t *testing.T) {
	// A chunk declaring more payload than the stream holds.
	stream := append([]byte{}, png.Signature[:]...)
	stream = append(stream, 0x00, 0x00, 0xFF, 0xFF) // length 65535
	stream = append(stream, "IHDR"...)
	stream = append(stream, 1, 2, 3)

	_, err := png.ParseDatastream(stream)
	if !errors.Is(err, &errs.Error{Phase: errs.PhaseParse, Kind: errs.KindTruncated}) {
		t.Errorf("expected truncated error, got %v", err)
	}
}

func TestParseLocatesTruncationPoint(t *testing.T) {
	// A stream that ends mid chunk header: four length bytes, two tag bytes.
	stream := append([]byte{}, png.Signature[:]...)
	stream = append(stream, 0x00, 0x00, 0x00, 0x0D)
	stream = append(stream, "IH"...)

	_, err := png.ParseDatastream(stream)
	if !errors.Is(err, &errs.Error{Phase: errs.PhaseParse, Kind: errs.KindTruncated}) {
		t.Fatalf("expected truncated error, got %v", err)
	}

	var perr *binary.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error chain does not carry a parse position: %v", err)
	}
	if perr.Section != "chunk type" {
		t.Errorf("expected section %q, got %q", "chunk type", perr.Section)
	}
	if perr.Position != 4 {
		t.Errorf("expected position 4 (after the length field), got %d", perr.Position)
	}
}

func TestParseRejectsMissingIEND(t *testing.T) {
	header := validHeader()
	chunks := []png.Chunk{png.NewChunk(png.TagIHDR, png.EncodeHeader(header))}
	stream := png.SerializeChunks(chunks)

	_, err := png.ParseDatastream(stream)
	if !errors.Is(err, &errs.Error{Phase: errs.PhaseParse, Kind: errs.KindMissingTerminator}) {
		t.Errorf("expected missing_terminator error, got %v", err)
	}
}

func TestDecodeRejectsUnsupportedHeaders(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*png.Header)
		field  string
	}{
		{"color type 2", func(h *png.Header) { h.ColorType = 2 }, "color_type"},
		{"bit depth 16", func(h *png.Header) { h.BitDepth = 16 }, "bit_depth"},
		{"interlaced", func(h *png.Header) { h.Interlace = 1 }, "interlace_method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHeader()
			tt.mutate(&h)

			// The IDAT payload is garbage on purpose: header validation must
			// reject the stream before inflation or reconstruction runs.
			stream := png.SerializeChunks([]png.Chunk{
				png.NewChunk(png.TagIHDR, png.EncodeHeader(h)),
				png.NewChunk(png.TagIDAT, []byte{0xDE, 0xAD}),
				png.NewChunk(png.TagIEND, nil),
			})

			_, err := png.Decode(stream)
			if err == nil {
				t.Fatal("expected unsupported header error")
			}
			var perr *errs.Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *errs.Error, got %T", err)
			}
			if perr.Kind != errs.KindUnsupportedHeader {
				t.Errorf("expected unsupported_header, got %s", perr.Kind)
			}
			if perr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, perr.Field)
			}
		})
	}
}

func TestDecodeRequiresLeadingIHDR(t *testing.T) {
	stream := png.SerializeChunks([]png.Chunk{
		png.NewChunk(png.TagIDAT, []byte{1, 2}),
		png.NewChunk(png.TagIEND, nil),
	})
	if _, err := png.Decode(stream); err == nil {
		t.Error("expected error when IHDR is not the first chunk")
	}
}

func TestDecodeRejectsMissingIDAT(t *testing.T) {
	stream := png.SerializeChunks([]png.Chunk{
		png.NewChunk(png.TagIHDR, png.EncodeHeader(validHeader())),
		png.NewChunk(png.TagIEND, nil),
	})
	if _, err := png.Decode(stream); err == nil {
		t.Error("expected error for datastream without IDAT")
	}
}

func TestSerializeParsesBack(t *testing.T) {
	chunks := []png.Chunk{
		png.NewChunk(png.TagIHDR, png.EncodeHeader(validHeader())),
		png.NewChunk(png.TagIDAT, []byte{9, 8, 7}),
		png.NewChunk(png.TagIEND, nil),
	}

	parsed, err := png.ParseDatastream(png.SerializeChunks(chunks))
	if err != nil {
		t.Fatalf("ParseDatastream: %v", err)
	}
	if len(parsed) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(parsed))
	}
	for i, c := range parsed {
		if c.Tag != chunks[i].Tag || !bytes.Equal(c.Payload, chunks[i].Payload) || c.CRC != chunks[i].CRC {
			t.Errorf("chunk %d does not survive serialize/parse: %+v", i, c)
		}
	}
}
