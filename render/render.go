// Package render paints decoded RGBA buffers onto a terminal using 24-bit
// ANSI color. It sits strictly downstream of the codec: its only input is the
// raw pixel buffer plus dimensions that png.Decode produces.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	errs "github.com/Wombatlord/png-codec/errors"
)

// cell is the glyph pair drawn per pixel; two full blocks make a roughly
// square cell in most terminal fonts.
const cell = "██"

// blank replaces cells whose alpha falls below the opacity threshold.
const blank = "  "

// DefaultOpacity is the minimum alpha at which a pixel is painted rather
// than left blank.
const DefaultOpacity = 200

// Renderer writes terminal previews of raw RGBA buffers.
type Renderer struct {
	// Opacity is the alpha threshold below which pixels render as blank
	// cells. Zero means DefaultOpacity.
	Opacity uint8

	// Ruler prepends a column-number header row and prefixes each scanline
	// with its row index.
	Ruler bool
}

// New returns a Renderer with default settings.
func New() *Renderer {
	return &Renderer{Opacity: DefaultOpacity}
}

func (r *Renderer) opacity() uint8 {
	if r.Opacity == 0 {
		return DefaultOpacity
	}
	return r.Opacity
}

// Render paints a width*height RGBA buffer to w, one terminal line per
// scanline.
func (r *Renderer) Render(w io.Writer, pix []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return errs.InvalidInput(errs.PhaseDecode, "width and height must be positive")
	}
	stride := width * 4
	if len(pix) != height*stride {
		return errs.New(errs.PhaseDecode, errs.KindInvalidInput).
			Want(height*stride).
			Got(len(pix)).
			Detail("pixel buffer length does not match %dx%d RGBA", width, height).
			Build()
	}

	var b strings.Builder
	if r.Ruler {
		b.WriteByte('\t')
		for x := 0; x < width; x++ {
			fmt.Fprintf(&b, "%2d", x%100)
		}
		b.WriteByte('\n')
	}

	threshold := r.opacity()
	for y := 0; y < height; y++ {
		if r.Ruler {
			fmt.Fprintf(&b, "%d\t", y)
		}
		row := pix[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			px := row[x*4 : x*4+4]
			b.WriteString(r.paint(px[0], px[1], px[2], px[3], threshold))
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) paint(red, green, blue, alpha, threshold byte) string {
	if alpha < threshold {
		return blank
	}
	color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", red, green, blue))
	return lipgloss.NewStyle().Foreground(color).Render(cell)
}
