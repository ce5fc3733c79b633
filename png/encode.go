package png

import (
	"go.uber.org/zap"

	errs "github.com/Wombatlord/png-codec/errors"
	"github.com/Wombatlord/png-codec/png/internal/binary"
	"github.com/Wombatlord/png-codec/zstream"
)

// DefaultMaxChunkSize bounds the payload of each emitted IDAT chunk. Any
// positive bound produces a stream that decodes identically once the parser
// merges the IDAT run.
const DefaultMaxChunkSize = 8192

// Encoder packages raw RGBA pixels into a complete PNG datastream. The zero
// value is ready to use with default chunking and compression settings.
type Encoder struct {
	// MaxChunkSize caps each IDAT payload in bytes. Zero means
	// DefaultMaxChunkSize; negative means a single unbounded IDAT.
	MaxChunkSize int

	// Level is the deflate compression level passed to the compressor.
	// Zero means zstream.DefaultCompression.
	Level int
}

// Encode filters, compresses and frames a raw RGBA buffer of the given
// dimensions into a signature-prefixed PNG datastream.
func (e *Encoder) Encode(raw []byte, width, height int) ([]byte, error) {
	filtered, choices, err := FilterScanlines(raw, width, height)
	if err != nil {
		return nil, err
	}

	compressed, err := zstream.Deflate(filtered, e.level())
	if err != nil {
		return nil, err
	}

	chunks, err := e.frame(compressed, width, height)
	if err != nil {
		return nil, err
	}

	Logger().Debug("encoded image",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("filtered_bytes", len(filtered)),
		zap.Int("compressed_bytes", len(compressed)),
		zap.Int("idat_chunks", len(chunks)-2),
		zap.Stringers("filters", choices),
	)

	return SerializeChunks(chunks), nil
}

// frame wraps a compressed filtered stream in the required chunk order:
// IHDR, the IDAT run, IEND.
func (e *Encoder) frame(compressed []byte, width, height int) ([]Chunk, error) {
	header := Header{
		Width:       uint32(width),
		Height:      uint32(height),
		BitDepth:    BitDepth8,
		ColorType:   ColorTruecolorAlpha,
		Compression: CompressionDeflate,
		FilterMeth:  FilterAdaptive,
		Interlace:   InterlaceNone,
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}

	chunks := make([]Chunk, 0, 3)
	chunks = append(chunks, NewChunk(TagIHDR, EncodeHeader(header)))
	chunks = append(chunks, e.splitIDAT(compressed)...)
	chunks = append(chunks, NewChunk(TagIEND, nil))
	return chunks, nil
}

// splitIDAT cuts the compressed payload into IDAT chunks no larger than the
// configured bound. An empty payload still yields one empty IDAT so the
// required chunk ordering holds.
func (e *Encoder) splitIDAT(compressed []byte) []Chunk {
	bound := e.MaxChunkSize
	if bound == 0 {
		bound = DefaultMaxChunkSize
	}
	if bound < 0 || bound >= len(compressed) {
		return []Chunk{NewChunk(TagIDAT, compressed)}
	}

	chunks := make([]Chunk, 0, (len(compressed)+bound-1)/bound)
	for off := 0; off < len(compressed); off += bound {
		end := min(off+bound, len(compressed))
		chunks = append(chunks, NewChunk(TagIDAT, compressed[off:end]))
	}
	return chunks
}

func (e *Encoder) level() int {
	if e.Level == 0 {
		return zstream.DefaultCompression
	}
	return e.Level
}

// Encode packages raw RGBA pixels with the default Encoder settings.
func Encode(raw []byte, width, height int) ([]byte, error) {
	var e Encoder
	return e.Encode(raw, width, height)
}

// SerializeChunks writes the signature followed by each chunk's
// length, tag, payload and CRC in the given order.
func SerializeChunks(chunks []Chunk) []byte {
	w := binary.NewWriter()
	w.WriteBytes(Signature[:])
	for _, c := range chunks {
		w.WriteU32(c.Length)
		w.WriteTag(c.Tag)
		w.WriteBytes(c.Payload)
		w.WriteU32(c.CRC)
	}
	return w.Bytes()
}

// EncodeWithFilters is like Encode but applies a caller-supplied per-row
// filter sequence instead of the selection heuristic. The sequence repeats
// cyclically when shorter than the image height.
func EncodeWithFilters(raw []byte, width, height int, kinds []FilterKind) ([]byte, error) {
	filtered, err := ApplyFilters(raw, width, height, kinds)
	if err != nil {
		return nil, err
	}

	compressed, err := zstream.Deflate(filtered, zstream.DefaultCompression)
	if err != nil {
		return nil, err
	}

	var e Encoder
	chunks, err := e.frame(compressed, width, height)
	if err != nil {
		return nil, err
	}
	return SerializeChunks(chunks), nil
}

// ApplyFilters forward-transforms raw pixels under a fixed per-row filter
// sequence, cycling the sequence over the image rows. The output is the
// filtered wire stream of 1+stride bytes per row, ready for compression;
// Reconstruct is its exact inverse for any sequence of valid kinds.
func ApplyFilters(raw []byte, width, height int, kinds []FilterKind) ([]byte, error) {
	if len(kinds) == 0 {
		return nil, errs.InvalidInput(errs.PhaseEncode, "filter sequence must not be empty")
	}
	for _, k := range kinds {
		if !k.Valid() {
			return nil, errs.New(errs.PhaseEncode, errs.KindUnknownFilter).
				Got(byte(k)).
				Detail("filter sequence entry outside 0..4").
				Build()
		}
	}
	if width <= 0 || height <= 0 {
		return nil, errs.InvalidInput(errs.PhaseEncode, "width and height must be positive")
	}
	stride := width * BytesPerPixel
	if len(raw) != height*stride {
		return nil, errs.New(errs.PhaseEncode, errs.KindInvalidInput).
			Want(height*stride).
			Got(len(raw)).
			Detail("raw buffer length does not match %dx%d RGBA", width, height).
			Build()
	}

	out := make([]byte, 0, height*(stride+1))
	scratch := make([]byte, stride)
	prev := make([]byte, stride)

	for row := 0; row < height; row++ {
		cur := raw[row*stride : (row+1)*stride]
		kind := kinds[row%len(kinds)]
		filterRow(scratch, kind, cur, prev)
		out = append(out, byte(kind))
		out = append(out, scratch...)
		prev = cur
	}
	return out, nil
}
