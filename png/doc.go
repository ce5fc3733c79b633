// Package png implements a bidirectional codec for a restricted PNG subset:
// 8-bit truecolor with alpha, non-interlaced, critical chunks only.
//
// The subset is enforced, not approximated. Headers outside
// bit depth 8 / color type 6 / compression 0 / filter method 0 /
// interlace 0 are rejected before any pixel work, and the chunk parser
// accepts exactly one IHDR, one or more IDAT, and a terminating IEND.
//
// # Decoding
//
// Decode a full datastream into raw RGBA pixels:
//
//	img, err := png.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// img.Pix holds img.Height*img.Width*4 bytes, rows top to bottom.
//
// The lower-level stages are exported separately: ParseDatastream frames and
// CRC-checks the chunk stream (merging the IDAT run into one chunk),
// DecodeHeader and Header.Validate handle IHDR, and Reconstruct inverts the
// scanline filtering of an already-inflated byte stream.
//
// # Encoding
//
// Encode raw RGBA pixels into a datastream:
//
//	data, err := png.Encode(img.Pix, img.Width, img.Height)
//
// A filter is chosen per scanline by the minimum sum of absolute differences
// heuristic; ties resolve to the lowest filter tag, so encoding is fully
// deterministic. Use an Encoder value to bound the IDAT payload size or set
// the compression level:
//
//	e := png.Encoder{MaxChunkSize: 1 << 14}
//	data, err := e.Encode(pix, w, h)
//
// EncodeWithFilters bypasses selection and applies a fixed per-row filter
// sequence, which is mostly useful for generating test vectors.
//
// # Filters
//
// The five scanline filters (None, Sub, Up, Average, Paeth) operate per byte
// on a NeighborWindow of the byte under transform and its left, above, and
// above-left neighbors, all arithmetic modulo 256. Decoding samples neighbors
// from the buffer being reconstructed, which makes each image a strictly
// sequential scan; independent images may be decoded concurrently since the
// package holds no cross-call state.
//
// Compression is delegated to package zstream; this package never touches
// files or sockets.
package png
