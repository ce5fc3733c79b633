package render_test

import (
	"strings"
	"testing"

	"github.com/Wombatlord/png-codec/render"
)

func TestRenderLineCount(t *testing.T) {
	// 2x3 fully opaque white image.
	pix := make([]byte, 3*2*4)
	for i := range pix {
		pix[i] = 0xFF
	}

	var out strings.Builder
	if err := render.New().Render(&out, pix, 2, 3); err != nil {
		t.Fatalf("Render: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if !strings.Contains(line, "██") {
			t.Errorf("line %d has no painted cells: %q", i, line)
		}
	}
}

func TestRenderTransparentCellsAreBlank(t *testing.T) {
	// One opaque red pixel beside one fully transparent pixel.
	pix := []byte{
		0xFF, 0x00, 0x00, 0xFF,
		0xFF, 0xFF, 0xFF, 0x00,
	}

	var out strings.Builder
	if err := render.New().Render(&out, pix, 2, 1); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "██") {
		t.Error("expected the opaque pixel to paint a cell")
	}
	if !strings.Contains(got, "  ") {
		t.Error("expected the transparent pixel to render as blank")
	}
}

func TestRenderRuler(t *testing.T) {
	pix := make([]byte, 2*2*4)
	r := render.New()
	r.Ruler = true

	var out strings.Builder
	if err := r.Render(&out, pix, 2, 2); err != nil {
		t.Fatalf("Render: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "0\t") || !strings.HasPrefix(lines[2], "1\t") {
		t.Errorf("expected row index prefixes, got %q / %q", lines[1], lines[2])
	}
}

func TestRenderRejectsBadBuffer(t *testing.T) {
	var out strings.Builder
	if err := render.New().Render(&out, make([]byte, 7), 2, 1); err == nil {
		t.Error("expected error for mis-sized pixel buffer")
	}
	if err := render.New().Render(&out, nil, 0, 1); err == nil {
		t.Error("expected error for zero width")
	}
}
