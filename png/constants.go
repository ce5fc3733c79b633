package png

// Signature is the fixed 8-byte prefix of every PNG datastream.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Chunk type tags for the critical chunks this codec handles.
const (
	TagIHDR = "IHDR" // image header (13-byte payload)
	TagIDAT = "IDAT" // compressed image data
	TagIEND = "IEND" // datastream terminator (empty payload)
)

// HeaderSize is the fixed IHDR payload length in bytes.
const HeaderSize = 13

// The supported IHDR subset. Anything outside these values is rejected
// before pixel work begins.
const (
	BitDepth8           uint8 = 8 // 8 bits per sample
	ColorTruecolorAlpha uint8 = 6 // RGBA, 4 samples per pixel
	CompressionDeflate  uint8 = 0 // zlib/DEFLATE, the only method PNG defines
	FilterAdaptive      uint8 = 0 // per-scanline adaptive filtering
	InterlaceNone       uint8 = 0 // sequential scan order
)

// BytesPerPixel is fixed at 4 because only truecolor with alpha is supported.
const BytesPerPixel = 4

// FilterKind identifies one of the five scanline filter types, chosen
// independently per scanline. The numeric values are the on-wire tags.
type FilterKind byte

const (
	FilterNone    FilterKind = 0
	FilterSub     FilterKind = 1
	FilterUp      FilterKind = 2
	FilterAverage FilterKind = 3
	FilterPaeth   FilterKind = 4
)

// filterKinds lists every kind in tag order. Filter selection evaluates
// candidates in this order, so ties resolve to the lowest tag.
var filterKinds = [...]FilterKind{FilterNone, FilterSub, FilterUp, FilterAverage, FilterPaeth}

// String returns the filter name as used in the PNG specification.
func (k FilterKind) String() string {
	switch k {
	case FilterNone:
		return "None"
	case FilterSub:
		return "Sub"
	case FilterUp:
		return "Up"
	case FilterAverage:
		return "Average"
	case FilterPaeth:
		return "Paeth"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the five defined filter types.
func (k FilterKind) Valid() bool {
	return k <= FilterPaeth
}
