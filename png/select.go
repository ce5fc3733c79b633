package png

import (
	errs "github.com/Wombatlord/png-codec/errors"
)

// FilterScanlines forward-transforms a raw RGBA buffer into the filtered wire
// stream (1+stride bytes per row), choosing a filter independently for each
// row. Every row is transformed under all five filters against the true
// previous raw row; candidates are scored by the minimum sum of absolute
// differences heuristic and the lowest score wins. Kinds are evaluated in tag
// order, so equal scores deterministically resolve to the lowest tag.
//
// The returned FilterKind slice records the choice made for each row. The
// winning candidate's bytes are emitted exactly as scored, so selection and
// application cannot disagree.
func FilterScanlines(raw []byte, width, height int) ([]byte, []FilterKind, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, errs.InvalidInput(errs.PhaseEncode, "width and height must be positive")
	}
	stride := width * BytesPerPixel
	if len(raw) != height*stride {
		return nil, nil, errs.New(errs.PhaseEncode, errs.KindInvalidInput).
			Want(height*stride).
			Got(len(raw)).
			Detail("raw buffer length does not match %dx%d RGBA", width, height).
			Build()
	}

	out := make([]byte, 0, height*(stride+1))
	choices := make([]FilterKind, 0, height)

	// One scratch row per candidate filter, reused across rows.
	var candidates [len(filterKinds)][]byte
	for i := range candidates {
		candidates[i] = make([]byte, stride)
	}

	prev := make([]byte, stride) // virtual zero row above row 0

	for row := 0; row < height; row++ {
		cur := raw[row*stride : (row+1)*stride]

		best := FilterNone
		bestScore := -1
		for _, kind := range filterKinds {
			filterRow(candidates[kind], kind, cur, prev)
			score := sumAbsoluteDifferences(candidates[kind])
			if bestScore < 0 || score < bestScore {
				best = kind
				bestScore = score
			}
		}

		choices = append(choices, best)
		out = append(out, byte(best))
		out = append(out, candidates[best]...)
		prev = cur
	}

	return out, choices, nil
}

// sumAbsoluteDifferences scores one filtered row: each byte is read as a
// signed two's-complement value and its absolute value accumulated. Smaller
// sums cluster filtered bytes near zero, which the deflate stage rewards.
func sumAbsoluteDifferences(row []byte) int {
	score := 0
	for _, b := range row {
		score += abs(int(int8(b)))
	}
	return score
}
