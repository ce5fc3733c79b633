package png

import (
	errs "github.com/Wombatlord/png-codec/errors"
)

// Reconstruct inverts the scanline filtering of an inflated filtered byte
// stream, producing height*stride bytes of raw pixels. Each of the height
// rows is 1+stride bytes on the wire: a filter tag followed by the filtered
// bytes. Rows are reconstructed top to bottom, each byte left to right
// against the row under construction and the previous reconstructed row,
// with an all-zero virtual row above row 0.
//
// The returned FilterKind slice records the tag of each row; it is a
// diagnostic artifact and plays no part in the pixel output.
func Reconstruct(filtered []byte, height, stride int) ([]byte, []FilterKind, error) {
	if height <= 0 || stride <= 0 {
		return nil, nil, errs.InvalidInput(errs.PhaseDecode, "height and stride must be positive")
	}
	want := height * (stride + 1)
	if len(filtered) != want {
		return nil, nil, errs.New(errs.PhaseDecode, errs.KindTruncated).
			Want(want).
			Got(len(filtered)).
			Detail("inflated stream length does not match %d rows of 1+%d bytes", height, stride).
			Build()
	}

	out := make([]byte, height*stride)
	trace := make([]FilterKind, 0, height)
	prev := make([]byte, stride) // virtual zero row above row 0

	for row := 0; row < height; row++ {
		off := row * (stride + 1)
		kind := FilterKind(filtered[off])
		if !kind.Valid() {
			return nil, nil, errs.UnknownFilter(row, byte(kind))
		}
		trace = append(trace, kind)

		dst := out[row*stride : (row+1)*stride]
		reconstructRow(dst, kind, filtered[off+1:off+1+stride], prev)
		prev = dst
	}

	return out, trace, nil
}
