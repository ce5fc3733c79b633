package png

import (
	"hash/crc32"
)

// Chunk is one framed record of a PNG datastream. Chunks are immutable after
// construction; MergeIDAT produces a fresh value rather than mutating inputs.
type Chunk struct {
	Length  uint32 // payload length as declared on the wire
	Tag     string // 4-byte ASCII chunk type
	Payload []byte
	CRC     uint32 // CRC32 over Tag||Payload
}

// NewChunk constructs a chunk for the given tag and payload, computing the
// CRC over the tag and payload bytes.
func NewChunk(tag string, payload []byte) Chunk {
	return Chunk{
		Length:  uint32(len(payload)),
		Tag:     tag,
		Payload: payload,
		CRC:     chunkCRC(tag, payload),
	}
}

// chunkCRC computes the PNG chunk checksum: CRC32 (IEEE) over the type tag
// followed by the payload.
func chunkCRC(tag string, payload []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, []byte(tag))
	return crc32.Update(crc, crc32.IEEETable, payload)
}

// MergeIDAT folds a run of IDAT chunks into a single logical chunk: payloads
// concatenated in order, length summed, CRC recomputed over the concatenation.
// The result shares no storage with the inputs. Merging zero chunks yields an
// empty IDAT chunk.
func MergeIDAT(chunks []Chunk) Chunk {
	var total int
	for _, c := range chunks {
		total += len(c.Payload)
	}
	payload := make([]byte, 0, total)
	for _, c := range chunks {
		payload = append(payload, c.Payload...)
	}
	return NewChunk(TagIDAT, payload)
}

// Header holds the decoded IHDR fields.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	FilterMeth  uint8
	Interlace   uint8
}

// Stride returns the raw byte width of one scanline.
func (h Header) Stride() int {
	return int(h.Width) * BytesPerPixel
}

// NeighborWindow holds the byte under transform together with its three
// filter neighbors: a is the byte one pixel to the left, b the byte directly
// above, c the byte above-left. Neighbors that fall outside the image are zero.
type NeighborWindow struct {
	X byte
	A byte
	B byte
	C byte
}

// window samples the neighbor bytes for position col of the current row.
// cur supplies same-row neighbors (raw source at encode time, the row under
// reconstruction at decode time) and prev the previous row; callers pass an
// all-zero prev for row 0.
func window(x byte, col int, cur, prev []byte) NeighborWindow {
	w := NeighborWindow{X: x, B: prev[col]}
	if col >= BytesPerPixel {
		w.A = cur[col-BytesPerPixel]
		w.C = prev[col-BytesPerPixel]
	}
	return w
}

// Image is the decode product: a raw RGBA buffer plus dimensions and the
// per-row filter tags observed during reconstruction.
type Image struct {
	Pix         []byte // Height*Width*4 bytes, rows top to bottom
	Width       int
	Height      int
	FilterTrace []FilterKind // diagnostics only; one entry per row
}

// Stride returns the byte width of one row of Pix.
func (im *Image) Stride() int {
	return im.Width * BytesPerPixel
}

// At returns the RGBA bytes of the pixel at (x, y). The caller is expected
// to stay in bounds.
func (im *Image) At(x, y int) (r, g, b, a byte) {
	off := y*im.Stride() + x*BytesPerPixel
	return im.Pix[off], im.Pix[off+1], im.Pix[off+2], im.Pix[off+3]
}
