// Package render rasterizes panel and drawer content into RGBA frames.
//
// It is the opaque rendering collaborator of the shell core: callers issue
// draw commands against the current frame and commit the result through
// their window surface. Icons come from embedded SVGs, text from an
// embedded font face sized by the output scale factor.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/catacombing/epitaph/internal/geometry"
	"github.com/catacombing/epitaph/internal/icons"
)

type svgKey struct {
	icon  icons.Icon
	w, h  int
	color color.RGBA
}

// Renderer draws into an internal RGBA frame sized to the window's physical
// pixels.
type Renderer struct {
	frame *image.RGBA
	size  geometry.Size[int]
	scale float64
	clip  image.Rectangle

	fontSize float64
	face     font.Face

	svgCache map[svgKey]*image.RGBA
}

// New creates a renderer with a 1x1 frame; Resize must be called with the
// configured window size before drawing.
func New(fontSize float64) (*Renderer, error) {
	r := &Renderer{
		size:     geometry.NewSize(1, 1),
		scale:    1,
		fontSize: fontSize,
		svgCache: make(map[svgKey]*image.RGBA),
	}
	if err := r.rebuildFace(); err != nil {
		return nil, err
	}
	r.frame = image.NewRGBA(image.Rect(0, 0, 1, 1))
	r.clip = r.frame.Bounds()
	return r, nil
}

// Resize reallocates the frame for a new physical size and scale factor.
func (r *Renderer) Resize(size geometry.Size[int], scale float64) error {
	if size.IsZero() {
		return fmt.Errorf("cannot resize renderer to %dx%d", size.Width, size.Height)
	}
	rebuild := scale != r.scale
	r.size = size
	r.scale = scale
	r.frame = image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	r.clip = r.frame.Bounds()
	if rebuild {
		return r.rebuildFace()
	}
	return nil
}

func (r *Renderer) rebuildFace() error {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    r.fontSize * r.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("creating font face: %w", err)
	}
	r.face = face
	return nil
}

// Frame returns the current frame.
func (r *Renderer) Frame() *image.RGBA {
	return r.frame
}

// Size returns the current physical frame size.
func (r *Renderer) Size() geometry.Size[int] {
	return r.size
}

// Scale returns the current scale factor.
func (r *Renderer) Scale() float64 {
	return r.scale
}

// SetClip restricts subsequent draws to rect.
func (r *Renderer) SetClip(rect image.Rectangle) {
	r.clip = rect.Intersect(r.frame.Bounds())
}

// ClearClip removes the clip region.
func (r *Renderer) ClearClip() {
	r.clip = r.frame.Bounds()
}

func (r *Renderer) dst() *image.RGBA {
	if r.clip == r.frame.Bounds() {
		return r.frame
	}
	return r.frame.SubImage(r.clip).(*image.RGBA)
}

// Clear fills the entire frame, ignoring the clip region.
func (r *Renderer) Clear(c color.RGBA) {
	draw.Draw(r.frame, r.frame.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
}

// FillRect fills rect with a solid color.
func (r *Renderer) FillRect(rect image.Rectangle, c color.RGBA) {
	draw.Draw(r.dst(), rect, &image.Uniform{c}, image.Point{}, draw.Src)
}

// DrawIcon rasterizes an icon into rect, tinted with the given color. The
// rasterized bitmap is cached per (icon, size, color).
func (r *Renderer) DrawIcon(icon icons.Icon, rect image.Rectangle, c color.RGBA) {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	key := svgKey{icon: icon, w: w, h: h, color: c}
	img, ok := r.svgCache[key]
	if !ok {
		img = rasterizeSVG(icon, w, h, c)
		r.svgCache[key] = img
	}

	draw.Draw(r.dst(), rect, img, image.Point{}, draw.Over)
}

// rasterizeSVG renders an embedded SVG at the given size with currentColor
// substituted.
func rasterizeSVG(icon icons.Icon, w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	src, err := icons.Source(icon)
	if err != nil {
		log.Printf("SVG lookup error: %v", err)
		return img
	}

	hexColor := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	src = strings.ReplaceAll(src, "currentColor", hexColor)

	parsed, err := oksvg.ReadIconStream(strings.NewReader(src))
	if err != nil {
		log.Printf("SVG parse error for %s: %v", icon, err)
		return img
	}

	parsed.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	parsed.Draw(raster, 1.0)

	return img
}

// DrawText draws text with its baseline at (x, y).
func (r *Renderer) DrawText(text string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  r.dst(),
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// TextWidth returns the advance of text in physical pixels.
func (r *Renderer) TextWidth(text string) int {
	return font.MeasureString(r.face, text).Ceil()
}

// Metrics returns the current face metrics.
func (r *Renderer) Metrics() font.Metrics {
	return r.face.Metrics()
}
