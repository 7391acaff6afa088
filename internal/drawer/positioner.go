package drawer

import (
	"image"
	"math"

	"github.com/catacombing/epitaph/internal/config"
	"github.com/catacombing/epitaph/internal/geometry"
	"github.com/catacombing/epitaph/internal/module"
)

// Positioner computes the drawer's module grid geometry for one window size
// and scale factor. It is pure: recomputed per draw, never mutated.
//
// Rendering and hit-testing both consume Boxes, so their ordering is
// identical by construction; a divergence would make taps land on the
// wrong control.
type Positioner struct {
	size          geometry.Size[int]
	panelHeight   int
	moduleSize    int
	modulePadding int
	edgePadding   int
	sliderSize    geometry.Size[int]
	columns       int
}

// NewPositioner derives the grid geometry from the physical window size,
// the output scale factor and the configured logical paddings.
func NewPositioner(size geometry.Size[int], scale float64, layout config.LayoutConfig) Positioner {
	px := func(v int) int { return int(math.Round(float64(v) * scale)) }

	moduleSize := px(layout.ModuleSize)
	modulePadding := px(layout.ModulePadding)
	edgePadding := px(layout.EdgePadding)

	// Fit as many columns as the padded content width allows, then
	// recenter so the remainder splits evenly between both margins.
	contentWidth := size.Width - 2*edgePadding
	paddedModule := moduleSize + modulePadding
	columns := (contentWidth + modulePadding) / paddedModule
	if columns < 1 {
		columns = 1
	}
	edgePadding = (size.Width + modulePadding - columns*paddedModule) / 2

	return Positioner{
		size:          size,
		panelHeight:   px(layout.PanelHeight),
		moduleSize:    moduleSize,
		modulePadding: modulePadding,
		edgePadding:   edgePadding,
		sliderSize:    geometry.NewSize(size.Width-2*edgePadding, px(layout.SliderHeight)),
		columns:       columns,
	}
}

// Columns returns the number of toggle columns per row.
func (p Positioner) Columns() int {
	return p.columns
}

// SliderSize returns the physical slider cell size.
func (p Positioner) SliderSize() geometry.Size[int] {
	return p.sliderSize
}

// EdgePadding returns the recentered physical edge padding.
func (p Positioner) EdgePadding() int {
	return p.edgePadding
}

// Position returns the top-left corner of a grid cell, below the panel
// band at the top of the drawer.
func (p Positioner) Position(column, row int) (int, int) {
	paddedModule := p.moduleSize + p.modulePadding
	x := p.edgePadding + column*paddedModule
	y := p.panelHeight + p.edgePadding + row*paddedModule
	return x, y
}

// Boxes returns the bounding box of every drawer item, in item order.
// Toggles consume one cell; sliders consume a full row and force a line
// break before and after.
func (p Positioner) Boxes(items []module.Item) []image.Rectangle {
	boxes := make([]image.Rectangle, 0, len(items))

	column, row := 0, 0
	for _, item := range items {
		switch item.Kind {
		case module.ItemSlider:
			if column != 0 {
				column = 0
				row++
			}
			x, y := p.Position(0, row)
			y += (p.moduleSize - p.sliderSize.Height) / 2
			boxes = append(boxes, image.Rect(x, y, x+p.sliderSize.Width, y+p.sliderSize.Height))
			row++
		default:
			x, y := p.Position(column, row)
			boxes = append(boxes, image.Rect(x, y, x+p.moduleSize, y+p.moduleSize))
			column++
			if column >= p.columns {
				column = 0
				row++
			}
		}
	}

	return boxes
}

// ModulePosition maps a physical touch point to the item under it, with
// fractional coordinates in [0, 1] relative to the item's box. Touches on
// padding gaps miss.
func (p Positioner) ModulePosition(items []module.Item, pos geometry.Position[float64]) (int, float64, float64, bool) {
	point := image.Pt(int(pos.X), int(pos.Y))
	for i, box := range p.Boxes(items) {
		if !point.In(box) {
			continue
		}
		fx := (pos.X - float64(box.Min.X)) / float64(box.Dx())
		fy := (pos.Y - float64(box.Min.Y)) / float64(box.Dy())
		return i, fx, fy, true
	}
	return 0, 0, 0, false
}
