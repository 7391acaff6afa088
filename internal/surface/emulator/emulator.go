// Package emulator provides a desktop window standing in for the Wayland
// layer-shell binding, so the shell can be developed without a phone. The
// mouse acts as a single touch point: press, drag and release are delivered
// to the shell as a touch-down/motion/up stream.
package emulator

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/catacombing/epitaph/internal/geometry"
	"github.com/catacombing/epitaph/internal/surface"
)

// touchID is the id assigned to the emulated touch point.
const touchID = 1

// Options configure the emulated output.
type Options struct {
	// Size is the logical output size.
	Size geometry.Size[int]

	// Scale is the emulated output scale factor.
	Scale float64

	// PanelHeight is the logical height of the panel strip, used for
	// touch routing when the drawer is hidden.
	PanelHeight int
}

// Emulator owns the desktop window and the two emulated surfaces.
type Emulator struct {
	mu sync.Mutex

	opts   Options
	panel  *emuSurface
	drawer *emuSurface

	ctx    context.Context
	cancel context.CancelFunc

	pressed bool
	lastPos geometry.Position[float64]
	// target is the surface owning the current touch, pinned at press
	// time so motion and release follow the same surface.
	target *emuSurface
}

// New creates an emulator for the given output options.
func New(opts Options) *Emulator {
	e := &Emulator{opts: opts}
	e.panel = &emuSurface{emu: e, visible: true}
	e.drawer = &emuSurface{emu: e}
	return e
}

// Panel returns the panel surface.
func (e *Emulator) Panel() surface.Surface {
	return e.panel
}

// Drawer returns the drawer surface.
func (e *Emulator) Drawer() surface.Surface {
	return e.drawer
}

// Run opens the window and blocks until ctx is cancelled or the window is
// closed. Handlers must be attached before calling Run.
func (e *Emulator) Run(ctx context.Context, panelHandler, drawerHandler surface.EventHandler) error {
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.panel.handler = panelHandler
	e.drawer.handler = drawerHandler

	physical := geometry.ConvertSize[int](e.opts.Size).Scale(e.opts.Scale)
	ebiten.SetWindowSize(physical.Width, physical.Height)
	ebiten.SetWindowTitle("epitaph")
	ebiten.SetScreenClearedEveryFrame(true)

	// Initial configure, the way a layer-shell surface receives its
	// first configure event after mapping.
	panelHandler.ScaleFactorChanged(e.opts.Scale)
	drawerHandler.ScaleFactorChanged(e.opts.Scale)
	panelHandler.Configure(geometry.NewSize(e.opts.Size.Width, e.opts.PanelHeight))
	drawerHandler.Configure(e.opts.Size)

	err := ebiten.RunGame(&game{emu: e})
	e.cancel()
	if err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// dispatchTouch translates mouse state into touch events.
func (e *Emulator) dispatchTouch() {
	x, y := ebiten.CursorPosition()
	pos := geometry.Pos(float64(x)/e.opts.Scale, float64(y)/e.opts.Scale)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		e.mu.Lock()
		target := e.routeTouch(pos)
		e.target = target
		e.pressed = true
		e.lastPos = pos
		e.mu.Unlock()
		if target != nil {
			target.handler.TouchDown(touchID, pos)
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		e.mu.Lock()
		target := e.target
		e.target = nil
		e.pressed = false
		e.mu.Unlock()
		if target != nil {
			target.handler.TouchUp(touchID)
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		e.mu.Lock()
		target := e.target
		moved := e.pressed && pos != e.lastPos
		e.lastPos = pos
		e.mu.Unlock()
		if moved && target != nil {
			target.handler.TouchMotion(touchID, pos)
		}
	}
}

// routeTouch picks the surface under the touch point: the panel strip sits
// above the drawer, so it owns its band even while the drawer is mapped.
// Touches outside both are dropped, like touches belonging to a sibling
// window.
func (e *Emulator) routeTouch(pos geometry.Position[float64]) *emuSurface {
	if pos.Y < float64(e.opts.PanelHeight) {
		return e.panel
	}
	if e.drawer.visible {
		return e.drawer
	}
	return nil
}

// deliverFrames fires pending frame callbacks after a presented frame.
func (e *Emulator) deliverFrames() {
	for _, s := range []*emuSurface{e.panel, e.drawer} {
		e.mu.Lock()
		fire := s.visible && s.framePending
		s.framePending = false
		e.mu.Unlock()
		if fire {
			s.handler.Frame()
		}
	}
}

type game struct {
	emu *Emulator
}

func (g *game) Update() error {
	select {
	case <-g.emu.ctx.Done():
		return ebiten.Termination
	default:
	}

	g.emu.dispatchTouch()
	g.emu.deliverFrames()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	g.emu.mu.Lock()
	panelImg := g.emu.panel.presentImage()
	drawerImg := g.emu.drawer.presentImage()
	drawerVisible := g.emu.drawer.visible
	g.emu.mu.Unlock()

	// The panel is the topmost layer; the drawer slides out underneath it.
	if drawerVisible && drawerImg != nil {
		screen.DrawImage(drawerImg, nil)
	}
	if panelImg != nil {
		screen.DrawImage(panelImg, nil)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	physical := geometry.ConvertSize[int](g.emu.opts.Size).Scale(g.emu.opts.Scale)
	return physical.Width, physical.Height
}

// emuSurface implements surface.Surface for one emulated window.
type emuSurface struct {
	emu     *Emulator
	handler surface.EventHandler

	visible      bool
	framePending bool

	committed *image.RGBA
	present   *ebiten.Image
	dirty     bool
}

func (s *emuSurface) Show() error {
	s.emu.mu.Lock()
	defer s.emu.mu.Unlock()
	s.visible = true
	return nil
}

func (s *emuSurface) Hide() {
	s.emu.mu.Lock()
	defer s.emu.mu.Unlock()
	s.visible = false
	s.framePending = false
	s.committed = nil
	s.dirty = true
}

func (s *emuSurface) Visible() bool {
	s.emu.mu.Lock()
	defer s.emu.mu.Unlock()
	return s.visible
}

func (s *emuSurface) RequestFrame() {
	s.emu.mu.Lock()
	defer s.emu.mu.Unlock()
	s.framePending = true
}

func (s *emuSurface) SetOpaqueRegion(geometry.Size[int]) {}

func (s *emuSurface) Commit(frame *image.RGBA) {
	// Snapshot the pixels: the renderer reuses its frame buffer.
	snapshot := image.NewRGBA(frame.Bounds())
	copy(snapshot.Pix, frame.Pix)

	s.emu.mu.Lock()
	defer s.emu.mu.Unlock()
	s.committed = snapshot
	s.dirty = true
}

// presentImage converts the last committed frame to an ebiten image. Must
// be called with the emulator lock held, from the game goroutine.
func (s *emuSurface) presentImage() *ebiten.Image {
	if s.committed == nil {
		return nil
	}
	if s.dirty {
		bounds := s.committed.Bounds()
		if s.present == nil || s.present.Bounds() != bounds {
			s.present = ebiten.NewImage(bounds.Dx(), bounds.Dy())
		}
		s.present.WritePixels(s.committed.Pix)
		s.dirty = false
	}
	return s.present
}
