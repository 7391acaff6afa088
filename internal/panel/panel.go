// Package panel implements the always-visible status strip along the top
// edge of the output.
package panel

import (
	"image"
	"log"
	"math"

	"github.com/catacombing/epitaph/internal/config"
	"github.com/catacombing/epitaph/internal/geometry"
	"github.com/catacombing/epitaph/internal/module"
	"github.com/catacombing/epitaph/internal/render"
	"github.com/catacombing/epitaph/internal/surface"
)

// Panel is the status strip window façade.
type Panel struct {
	surface  surface.Surface
	renderer *render.Renderer
	cfg      *config.Store

	// size is the physical window size; zero until configured.
	size  geometry.Size[int]
	scale float64
}

// New creates the panel for the given backing surface.
func New(surf surface.Surface, cfg *config.Store) (*Panel, error) {
	renderer, err := render.New(cfg.Get().Layout.FontSize)
	if err != nil {
		return nil, err
	}
	return &Panel{surface: surf, renderer: renderer, cfg: cfg, scale: 1}, nil
}

// Configure updates the window to a new logical size.
func (p *Panel) Configure(size geometry.Size[int]) {
	p.resize(size.Scale(p.scale))
}

// SetScaleFactor updates the output scale factor, rescaling the current
// physical size accordingly.
func (p *Panel) SetScaleFactor(scale float64) {
	factorChange := scale / p.scale
	p.scale = scale
	p.resize(p.size.Scale(factorChange))
}

func (p *Panel) resize(size geometry.Size[int]) {
	p.size = size
	if size.IsZero() {
		return
	}
	if err := p.renderer.Resize(size, p.scale); err != nil {
		log.Printf("Panel renderer resize failed: %v", err)
	}
}

// Show maps the panel window.
func (p *Panel) Show() error {
	return p.surface.Show()
}

// Visible reports whether the panel window is mapped.
func (p *Panel) Visible() bool {
	return p.surface.Visible()
}

// Size returns the current physical window size.
func (p *Panel) Size() geometry.Size[int] {
	return p.size
}

// Draw renders the status modules and commits the frame. Modules are laid
// out in three runs anchored to the left and right edges and the center.
func (p *Panel) Draw(left, center, right []module.PanelModule, backgrounds []module.BackgroundModule) error {
	cfg := p.cfg.Get()
	px := func(v int) int { return int(math.Round(float64(v) * p.scale)) }

	p.renderer.Clear(cfg.Colors.Background.RGBA())

	// Activity tints fill the strip from the left, proportional to the
	// module's level. Later modules paint over earlier ones.
	for _, bg := range backgrounds {
		value := clamp01(bg.Value())
		if value <= 0 {
			continue
		}
		width := int(float64(p.size.Width) * value)
		p.renderer.FillRect(image.Rect(0, 0, width, p.size.Height), bg.Color(cfg.Colors))
	}

	padding := px(cfg.Layout.PanelPadding)
	moduleWidth := px(cfg.Layout.PanelModuleWidth)

	if len(left) > 0 {
		p.drawRun(left, padding, padding, moduleWidth, cfg.Colors)
	}
	if len(center) > 0 {
		width := p.runWidth(center, padding, moduleWidth)
		p.drawRun(center, (p.size.Width-width)/2, padding, moduleWidth, cfg.Colors)
	}
	if len(right) > 0 {
		width := p.runWidth(right, padding, moduleWidth)
		p.drawRun(right, p.size.Width-width-padding, padding, moduleWidth, cfg.Colors)
	}

	p.surface.SetOpaqueRegion(p.size.Scale(1 / p.scale))
	p.surface.Commit(p.renderer.Frame())
	p.surface.RequestFrame()
	return nil
}

// runWidth measures a run of modules, including inter-module padding.
func (p *Panel) runWidth(modules []module.PanelModule, padding, moduleWidth int) int {
	width := 0
	for i, m := range modules {
		if i > 0 {
			width += padding
		}
		width += p.contentWidth(m.Content(), moduleWidth)
	}
	return width
}

func (p *Panel) contentWidth(content module.Content, moduleWidth int) int {
	if content.Kind == module.ContentText {
		return p.renderer.TextWidth(content.Text)
	}
	return moduleWidth
}

// drawRun paints modules left to right starting at x.
func (p *Panel) drawRun(modules []module.PanelModule, x, padding, moduleWidth int, colors config.ColorConfig) {
	metrics := p.renderer.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	baseline := (p.size.Height-ascent-descent)/2 + ascent

	for i, m := range modules {
		if i > 0 {
			x += padding
		}
		content := m.Content()
		switch content.Kind {
		case module.ContentText:
			p.renderer.DrawText(content.Text, x, baseline, colors.Foreground.RGBA())
			x += p.renderer.TextWidth(content.Text)
		case module.ContentIcon:
			side := moduleWidth
			if side > p.size.Height {
				side = p.size.Height
			}
			y := (p.size.Height - side) / 2
			box := image.Rect(x, y, x+moduleWidth, y+side)
			p.renderer.DrawIcon(content.Icon, box, colors.Foreground.RGBA())
			x += moduleWidth
		}
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
