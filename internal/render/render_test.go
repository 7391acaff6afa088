package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/catacombing/epitaph/internal/geometry"
	"github.com/catacombing/epitaph/internal/icons"
)

func newRenderer(t *testing.T, w, h int, scale float64) *Renderer {
	t.Helper()
	r, err := New(12)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Resize(geometry.NewSize(w, h), scale); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestResizeRejectsZero(t *testing.T) {
	r, err := New(12)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Resize(geometry.NewSize(0, 100), 1); err == nil {
		t.Fatal("expected an error for a zero width")
	}
}

func TestFillRespectsClip(t *testing.T) {
	r := newRenderer(t, 100, 50, 1)
	red := color.RGBA{R: 255, A: 255}

	r.SetClip(image.Rect(0, 0, 50, 50))
	r.FillRect(image.Rect(0, 0, 100, 50), red)
	r.ClearClip()

	if got := r.Frame().RGBAAt(25, 25); got != red {
		t.Fatalf("inside clip got %v, want %v", got, red)
	}
	if got := r.Frame().RGBAAt(75, 25); got == red {
		t.Fatal("fill leaked outside the clip region")
	}
}

func TestDrawIconTints(t *testing.T) {
	r := newRenderer(t, 64, 64, 1)
	red := color.RGBA{R: 255, A: 255}

	// button-on is a solid rounded rect, so the center must carry the tint.
	r.DrawIcon(icons.ButtonOn, image.Rect(0, 0, 64, 64), red)

	got := r.Frame().RGBAAt(32, 32)
	if got.R < 200 || got.G > 50 || got.B > 50 || got.A < 200 {
		t.Fatalf("center pixel %v does not carry the tint", got)
	}
}

func TestTextMeasuresAndScales(t *testing.T) {
	r1 := newRenderer(t, 200, 50, 1)
	w1 := r1.TextWidth("12:34")
	if w1 <= 0 {
		t.Fatalf("got text width %d", w1)
	}

	// Doubling the scale factor rebuilds the face roughly twice as large.
	r2 := newRenderer(t, 400, 100, 2)
	w2 := r2.TextWidth("12:34")
	if w2 < w1*3/2 {
		t.Fatalf("scaled text width %d did not grow from %d", w2, w1)
	}
}

func TestDrawTextLeavesInk(t *testing.T) {
	r := newRenderer(t, 200, 50, 1)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	r.DrawText("000", 10, 30, white)

	inked := false
	for x := 10; x < 60 && !inked; x++ {
		for y := 10; y < 40 && !inked; y++ {
			if r.Frame().RGBAAt(x, y).A > 0 {
				inked = true
			}
		}
	}
	if !inked {
		t.Fatal("no pixels drawn for text")
	}
}
