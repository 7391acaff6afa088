// Package drawer implements the pull-down drawer window: the module grid
// layout, per-module touch routing and offset-clipped rendering.
package drawer

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/catacombing/epitaph/internal/config"
	"github.com/catacombing/epitaph/internal/geometry"
	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/module"
	"github.com/catacombing/epitaph/internal/render"
	"github.com/catacombing/epitaph/internal/surface"
)

// TouchStart reports how the drawer consumed a touch-down event.
type TouchStart struct {
	// ModuleTouched is true when the touch landed on a module; the
	// caller must not start a drag/tap gesture for it.
	ModuleTouched bool

	// Dirty is true when the touch already changed rendered state.
	Dirty bool
}

// Drawer is the drawer window façade.
type Drawer struct {
	surface  surface.Surface
	renderer *render.Renderer
	cfg      *config.Store

	// size is the physical window size; zero until configured.
	size  geometry.Size[int]
	scale float64

	// Per-module touch tracking. The primary drag/tap gesture is owned
	// by the shell; only touches that land on modules are tracked here.
	moduleTouched bool
	touchID       int
	touchModule   int
	touchPos      geometry.Position[float64]
}

// New creates the drawer for the given backing surface.
func New(surf surface.Surface, cfg *config.Store) (*Drawer, error) {
	renderer, err := render.New(cfg.Get().Layout.FontSize)
	if err != nil {
		return nil, err
	}
	return &Drawer{surface: surf, renderer: renderer, cfg: cfg, scale: 1}, nil
}

// Configure updates the window to a new logical size.
func (d *Drawer) Configure(size geometry.Size[int]) {
	d.resize(size.Scale(d.scale))
}

// SetScaleFactor updates the output scale factor, rescaling the current
// physical size accordingly.
func (d *Drawer) SetScaleFactor(scale float64) {
	factorChange := scale / d.scale
	d.scale = scale
	d.resize(d.size.Scale(factorChange))
}

func (d *Drawer) resize(size geometry.Size[int]) {
	d.size = size
	if size.IsZero() {
		return
	}
	if err := d.renderer.Resize(size, d.scale); err != nil {
		log.Printf("Drawer renderer resize failed: %v", err)
	}
}

// Show maps the drawer window.
func (d *Drawer) Show() error {
	return d.surface.Show()
}

// Hide unmaps the drawer window.
func (d *Drawer) Hide() {
	d.surface.Hide()
}

// Visible reports whether the drawer window is mapped.
func (d *Drawer) Visible() bool {
	return d.surface.Visible()
}

// Size returns the current physical window size.
func (d *Drawer) Size() geometry.Size[int] {
	return d.size
}

// MaxOffset returns the drawer offset when fully open, in logical pixels.
func (d *Drawer) MaxOffset() float64 {
	return float64(d.size.Height) / d.scale
}

func (d *Drawer) positioner() Positioner {
	return NewPositioner(d.size, d.scale, d.cfg.Get().Layout)
}

// Draw renders the module grid revealed up to offset (logical pixels) and
// commits the frame. The offset is clamped to [0, MaxOffset] here, at
// render time; interactive dragging may transiently push it outside.
func (d *Drawer) Draw(items []module.Item, offset float64) error {
	cfg := d.cfg.Get()

	offPhys := int(math.Round(offset * d.scale))
	if offPhys < 0 {
		offPhys = 0
	}
	if offPhys > d.size.Height {
		offPhys = d.size.Height
	}

	d.renderer.Clear(color.RGBA{})

	pos := d.positioner()
	panelPhys := int(math.Round(float64(cfg.Layout.PanelHeight) * d.scale))

	// The grid is anchored to the bottom edge of the revealed band, so
	// the drawer slides down from under the panel.
	yShift := offPhys - d.size.Height
	bandTop := offPhys - (d.size.Height - panelPhys)
	if bandTop < 0 {
		bandTop = 0
	}
	band := image.Rect(0, bandTop, d.size.Width, offPhys)

	d.renderer.SetClip(band)
	d.renderer.FillRect(band, cfg.Colors.Background.RGBA())

	iconPhys := int(math.Round(float64(cfg.Layout.IconHeight) * d.scale))
	boxes := pos.Boxes(items)
	for i, item := range items {
		box := boxes[i].Add(image.Pt(0, yShift))
		switch item.Kind {
		case module.ItemSlider:
			d.drawSlider(item.Slider, box, iconPhys, cfg.Colors)
		case module.ItemToggle:
			d.drawToggle(item.Toggle, box, iconPhys, cfg.Colors)
		}
	}
	d.renderer.ClearClip()

	d.surface.Commit(d.renderer.Frame())
	d.surface.RequestFrame()
	return nil
}

func (d *Drawer) drawToggle(toggle module.Toggle, box image.Rectangle, iconSize int, colors config.ColorConfig) {
	backdrop, tint := icons.ButtonOff, colors.ModuleInactive.RGBA()
	if toggle.Enabled() {
		backdrop, tint = icons.ButtonOn, colors.ModuleActive.RGBA()
	}
	d.renderer.DrawIcon(backdrop, box, tint)
	d.renderer.DrawIcon(toggle.Icon(), centered(box, iconSize, iconSize), colors.Foreground.RGBA())
}

func (d *Drawer) drawSlider(slider module.Slider, box image.Rectangle, iconSize int, colors config.ColorConfig) {
	d.renderer.DrawIcon(icons.ButtonOff, box, colors.ModuleInactive.RGBA())

	fill := int(float64(box.Dx()) * clamp01(slider.Value()))
	if fill > 0 {
		fillBox := image.Rect(box.Min.X, box.Min.Y, box.Min.X+fill, box.Max.Y)
		d.renderer.DrawIcon(icons.ButtonOn, fillBox, colors.ModuleActive.RGBA())
	}

	d.renderer.DrawIcon(slider.Icon(), centered(box, iconSize, iconSize), colors.Foreground.RGBA())
}

// TouchDown routes a touch-down to the module under it, if any. Returns
// whether a module consumed the touch; otherwise the caller owns the touch
// as a drag/tap candidate.
func (d *Drawer) TouchDown(id int, position geometry.Position[float64], items []module.Item) TouchStart {
	pos := position.Scale(d.scale)

	index, fx, _, ok := d.positioner().ModulePosition(items, pos)
	if !ok {
		return TouchStart{}
	}

	d.moduleTouched = true
	d.touchID = id
	d.touchModule = index
	d.touchPos = pos

	// Sliders respond immediately on press; this is the only path that
	// mutates a module mid-press.
	if item := items[index]; item.Kind == module.ItemSlider {
		if err := item.Slider.SetValue(clamp01(fx)); err != nil {
			log.Printf("Slider %s update failed: %v", item.Slider.ID(), err)
		}
		return TouchStart{ModuleTouched: true, Dirty: true}
	}

	return TouchStart{ModuleTouched: true}
}

// TouchMotion forwards motion of a module-owned touch. Returns whether a
// redraw is required.
func (d *Drawer) TouchMotion(id int, position geometry.Position[float64], items []module.Item) bool {
	if !d.moduleTouched || id != d.touchID || d.touchModule >= len(items) {
		return false
	}
	pos := position.Scale(d.scale)
	d.touchPos = pos

	item := items[d.touchModule]
	if item.Kind != module.ItemSlider {
		return false
	}

	// Sliders track the finger's X across the whole row, even once it
	// leaves the slider's box.
	p := d.positioner()
	fx := (pos.X - float64(p.EdgePadding())) / float64(p.SliderSize().Width)

	before := item.Slider.Value()
	if err := item.Slider.SetValue(clamp01(fx)); err != nil {
		log.Printf("Slider %s update failed: %v", item.Slider.ID(), err)
	}
	return item.Slider.Value() != before
}

// TouchUp finalizes a module-owned touch: toggles flip when the finger
// lifts over the module it pressed, sliders get their release hook.
// Returns whether a redraw is required.
func (d *Drawer) TouchUp(id int, items []module.Item) bool {
	if !d.moduleTouched || id != d.touchID {
		return false
	}

	touched := d.touchModule
	pos := d.touchPos
	d.moduleTouched = false

	if touched >= len(items) {
		return false
	}

	switch item := items[touched]; item.Kind {
	case module.ItemToggle:
		// Only flip if the finger is still over the pressed module.
		index, _, _, ok := d.positioner().ModulePosition(items, pos)
		if !ok || index != touched {
			return false
		}
		if err := item.Toggle.Toggle(); err != nil {
			log.Printf("Toggle %s failed: %v", item.Toggle.ID(), err)
		}
		return true
	case module.ItemSlider:
		if err := item.Slider.OnRelease(); err != nil {
			log.Printf("Slider %s release failed: %v", item.Slider.ID(), err)
		}
		return true
	}
	return false
}

// OwnsTouch reports whether id is a module-owned touch.
func (d *Drawer) OwnsTouch(id int) bool {
	return d.moduleTouched && id == d.touchID
}

func centered(box image.Rectangle, w, h int) image.Rectangle {
	x := box.Min.X + (box.Dx()-w)/2
	y := box.Min.Y + (box.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
