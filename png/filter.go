package png

// filterFunc transforms one byte of a scanline given its neighbor window.
// All arithmetic wraps modulo 256; Go's byte subtraction and addition give
// exactly the PNG-specified behavior.
type filterFunc func(NeighborWindow) byte

func filterNoneByte(w NeighborWindow) byte { return w.X }
func reconNoneByte(w NeighborWindow) byte  { return w.X }

func filterSubByte(w NeighborWindow) byte { return w.X - w.A }
func reconSubByte(w NeighborWindow) byte  { return w.X + w.A }

func filterUpByte(w NeighborWindow) byte { return w.X - w.B }
func reconUpByte(w NeighborWindow) byte  { return w.X + w.B }

// Average uses the floor of the full-precision mean, so the sum is widened
// before halving.
func filterAverageByte(w NeighborWindow) byte {
	return w.X - byte((int(w.A)+int(w.B))/2)
}

func reconAverageByte(w NeighborWindow) byte {
	return w.X + byte((int(w.A)+int(w.B))/2)
}

func filterPaethByte(w NeighborWindow) byte {
	return w.X - paethPredictor(w.A, w.B, w.C)
}

func reconPaethByte(w NeighborWindow) byte {
	return w.X + paethPredictor(w.A, w.B, w.C)
}

// paethPredictor estimates the byte under transform from its three neighbors,
// returning whichever neighbor is closest to a+b-c. Ties favor a over b over c.
func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Filter and reconstruction dispatch, indexed by FilterKind tag value.
var (
	filterFuncs = [...]filterFunc{
		FilterNone:    filterNoneByte,
		FilterSub:     filterSubByte,
		FilterUp:      filterUpByte,
		FilterAverage: filterAverageByte,
		FilterPaeth:   filterPaethByte,
	}

	reconFuncs = [...]filterFunc{
		FilterNone:    reconNoneByte,
		FilterSub:     reconSubByte,
		FilterUp:      reconUpByte,
		FilterAverage: reconAverageByte,
		FilterPaeth:   reconPaethByte,
	}
)

// filterRow forward-transforms one raw scanline into dst. Neighbors are
// sampled from the raw rows themselves: cur and prev are both unfiltered
// source rows, fully known at encode time.
func filterRow(dst []byte, kind FilterKind, cur, prev []byte) {
	f := filterFuncs[kind]
	for col := range cur {
		dst[col] = f(window(cur[col], col, cur, prev))
	}
}

// reconstructRow inverts one filtered scanline into dst. Neighbors are
// sampled from the output under construction: byte N depends on byte N-4 of
// dst and on the fully reconstructed previous row, which forces the strict
// left-to-right order.
func reconstructRow(dst []byte, kind FilterKind, filt, prev []byte) {
	f := reconFuncs[kind]
	for col := range filt {
		dst[col] = f(window(filt[col], col, dst, prev))
	}
}
