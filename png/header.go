package png

import (
	errs "github.com/Wombatlord/png-codec/errors"
	"github.com/Wombatlord/png-codec/png/internal/binary"
)

// DecodeHeader decodes the 13-byte IHDR payload: two big-endian uint32
// dimension fields followed by five single-byte fields.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) != HeaderSize {
		return Header{}, errs.New(errs.PhaseParse, errs.KindTruncated).
			Chunk(TagIHDR).
			Want(HeaderSize).
			Got(len(data)).
			Detail("IHDR payload must be exactly 13 bytes").
			Build()
	}

	r := binary.NewReader(data)
	var h Header
	h.Width, _ = r.ReadU32()
	h.Height, _ = r.ReadU32()
	h.BitDepth, _ = r.ReadByte()
	h.ColorType, _ = r.ReadByte()
	h.Compression, _ = r.ReadByte()
	h.FilterMeth, _ = r.ReadByte()
	h.Interlace, _ = r.ReadByte()
	return h, nil
}

// EncodeHeader encodes the header to its exact 13-byte wire layout, the
// inverse of DecodeHeader.
func EncodeHeader(h Header) []byte {
	w := binary.NewWriter()
	w.WriteU32(h.Width)
	w.WriteU32(h.Height)
	w.Byte(h.BitDepth)
	w.Byte(h.ColorType)
	w.Byte(h.Compression)
	w.Byte(h.FilterMeth)
	w.Byte(h.Interlace)
	return w.Bytes()
}

// Validate rejects any header outside the supported subset with a distinct
// error naming the violated field. It runs before any chunk payload or pixel
// processing.
func (h Header) Validate() error {
	if h.Width == 0 {
		return errs.UnsupportedHeader("width", "> 0", h.Width)
	}
	if h.Height == 0 {
		return errs.UnsupportedHeader("height", "> 0", h.Height)
	}
	if h.Compression != CompressionDeflate {
		return errs.UnsupportedHeader("compression_method", CompressionDeflate, h.Compression)
	}
	if h.FilterMeth != FilterAdaptive {
		return errs.UnsupportedHeader("filter_method", FilterAdaptive, h.FilterMeth)
	}
	if h.ColorType != ColorTruecolorAlpha {
		return errs.UnsupportedHeader("color_type", ColorTruecolorAlpha, h.ColorType)
	}
	if h.BitDepth != BitDepth8 {
		return errs.UnsupportedHeader("bit_depth", BitDepth8, h.BitDepth)
	}
	if h.Interlace != InterlaceNone {
		return errs.UnsupportedHeader("interlace_method", InterlaceNone, h.Interlace)
	}
	return nil
}
