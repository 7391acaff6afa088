// Package shell owns the gesture, animation and damage state driving the
// panel and drawer windows. All state lives on a single event loop; the
// windowing layer and module data sources post into it.
package shell

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/catacombing/epitaph/internal/config"
	"github.com/catacombing/epitaph/internal/drawer"
	"github.com/catacombing/epitaph/internal/geometry"
	"github.com/catacombing/epitaph/internal/module"
	"github.com/catacombing/epitaph/internal/panel"
	"github.com/catacombing/epitaph/internal/surface"
)

// Compositor is the subset of compositor IPC the gesture machine uses.
type Compositor interface {
	SetDisplayPower(on bool) error
}

// Shell ties the panel and drawer windows to the touch gesture machine.
//
// Methods on Shell must only run on its event loop; the exported handlers
// and the Notifier re-post into it.
type Shell struct {
	loop       *Loop
	cfg        *config.Store
	registry   *module.Registry
	compositor Compositor

	// buildModule constructs a module by config name, used to pick up
	// module list changes on config reload. May be nil.
	buildModule func(id string) (module.Module, bool)
	runCtx      context.Context

	panel  *panel.Panel
	drawer *drawer.Drawer

	panelFrame  frameState
	drawerFrame frameState

	scale float64

	// Primary gesture tracking. Module touches inside the drawer are
	// tracked by the drawer itself.
	touchActive bool
	touchID     int
	opening     bool
	isDrag      bool
	startPos    geometry.Position[float64]
	lastPos     geometry.Position[float64]

	// offset is the drawer's current reveal in logical pixels. Drags may
	// push it transiently out of [0, max]; rendering clamps.
	offset float64

	tapTimer *Timer

	animating     bool
	animTarget    float64
	animTimer     *Timer
	lastAnimFrame time.Time

	// now is the animation clock; swapped out in tests.
	now func() time.Time
}

// New creates the shell on top of the two window surfaces. buildModule may
// be nil to pin the module set for the process lifetime.
func New(loop *Loop, cfg *config.Store, registry *module.Registry, panelSurf, drawerSurf surface.Surface, compositor Compositor, buildModule func(id string) (module.Module, bool)) (*Shell, error) {
	p, err := panel.New(panelSurf, cfg)
	if err != nil {
		return nil, err
	}
	d, err := drawer.New(drawerSurf, cfg)
	if err != nil {
		return nil, err
	}

	s := &Shell{
		loop:        loop,
		cfg:         cfg,
		registry:    registry,
		compositor:  compositor,
		buildModule: buildModule,
		panel:       p,
		drawer:      d,
		panelFrame:  frameState{name: "Panel"},
		drawerFrame: frameState{name: "Drawer"},
		scale:       1,
		now:         time.Now,
	}

	// Config changes restyle everything and may change the module list;
	// reconcile the registry, then redraw both windows.
	cfg.OnChange(func(c config.Config) {
		s.Notify(func() { s.applyModuleList(c.EnabledModules()) })
	})

	return s, nil
}

// Run initializes the modules, maps the panel and dispatches events until
// ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.runCtx = ctx
	s.registry.Init(ctx, s)
	defer s.registry.Stop()

	if err := s.panel.Show(); err != nil {
		return err
	}
	s.loop.Post(func() {
		s.panelFrame.markDirty()
		s.panelFrame.drawIfReady(panelWindow{s})
	})

	s.loop.Run(ctx)
	return nil
}

// Notify implements module.Notifier: the state mutation runs on the loop,
// followed by a redraw of both windows.
func (s *Shell) Notify(apply func()) {
	s.loop.Post(func() {
		apply()
		s.panelFrame.unstall(panelWindow{s})
		s.drawerFrame.unstall(drawerWindow{s})
	})
}

// applyModuleList reconciles the registry with the configured module set,
// so editing the modules key takes effect without a restart.
func (s *Shell) applyModuleList(ids []string) {
	if s.runCtx == nil {
		return
	}
	s.registry.Apply(s.runCtx, s, ids, s.buildModule)
}

// PanelHandler returns the event handler for the panel surface.
func (s *Shell) PanelHandler() surface.EventHandler {
	return panelHandler{s}
}

// DrawerHandler returns the event handler for the drawer surface.
func (s *Shell) DrawerHandler() surface.EventHandler {
	return drawerHandler{s}
}

// drawable adapters. The drawer window pulls its item list and offset at
// submit time, so a frame always renders the current state.

type panelWindow struct{ s *Shell }

func (w panelWindow) Ready() bool {
	return w.s.panel.Visible() && !w.s.panel.Size().IsZero()
}

func (w panelWindow) Submit() error {
	return w.s.panel.Draw(
		w.s.registry.PanelModules(module.AlignLeft),
		w.s.registry.PanelModules(module.AlignCenter),
		w.s.registry.PanelModules(module.AlignRight),
		w.s.registry.BackgroundModules(),
	)
}

type drawerWindow struct{ s *Shell }

func (w drawerWindow) Ready() bool {
	return w.s.drawer.Visible() && !w.s.drawer.Size().IsZero()
}

func (w drawerWindow) Submit() error {
	return w.s.drawer.Draw(w.s.registry.DrawerItems(), w.s.offset)
}

// Event handlers, re-posting windowing events onto the loop.

type panelHandler struct{ s *Shell }

func (h panelHandler) Configure(size geometry.Size[int]) {
	h.s.loop.Post(func() {
		h.s.panel.Configure(size)
		h.s.panelFrame.unstall(panelWindow{h.s})
	})
}

func (h panelHandler) ScaleFactorChanged(scale float64) {
	h.s.loop.Post(func() { h.s.setScaleFactor(scale) })
}

func (h panelHandler) Frame() {
	h.s.loop.Post(func() { h.s.panelFrame.drawIfReady(panelWindow{h.s}) })
}

func (h panelHandler) TouchDown(id int, pos geometry.Position[float64]) {
	h.s.loop.Post(func() { h.s.panelTouchDown(id, pos) })
}

func (h panelHandler) TouchMotion(id int, pos geometry.Position[float64]) {
	h.s.loop.Post(func() { h.s.touchMotion(id, pos) })
}

func (h panelHandler) TouchUp(id int) {
	h.s.loop.Post(func() { h.s.touchUp(id) })
}

func (h panelHandler) Closed() {
	log.Printf("Panel surface closed")
}

type drawerHandler struct{ s *Shell }

func (h drawerHandler) Configure(size geometry.Size[int]) {
	h.s.loop.Post(func() {
		h.s.drawer.Configure(size)
		h.s.drawerFrame.unstall(drawerWindow{h.s})
	})
}

func (h drawerHandler) ScaleFactorChanged(scale float64) {
	h.s.loop.Post(func() { h.s.setScaleFactor(scale) })
}

func (h drawerHandler) Frame() {
	h.s.loop.Post(func() { h.s.drawerFrame.drawIfReady(drawerWindow{h.s}) })
}

func (h drawerHandler) TouchDown(id int, pos geometry.Position[float64]) {
	h.s.loop.Post(func() { h.s.drawerTouchDown(id, pos) })
}

func (h drawerHandler) TouchMotion(id int, pos geometry.Position[float64]) {
	h.s.loop.Post(func() { h.s.touchMotion(id, pos) })
}

func (h drawerHandler) TouchUp(id int) {
	h.s.loop.Post(func() { h.s.touchUp(id) })
}

func (h drawerHandler) Closed() {
	log.Printf("Drawer surface closed")
}

func (s *Shell) setScaleFactor(scale float64) {
	s.scale = scale
	s.panel.SetScaleFactor(scale)
	s.drawer.SetScaleFactor(scale)
	s.panelFrame.unstall(panelWindow{s})
	s.drawerFrame.unstall(drawerWindow{s})
}

// panelTouchDown starts an opening gesture: the drawer is mapped
// immediately so the very first motion can reveal it.
func (s *Shell) panelTouchDown(id int, pos geometry.Position[float64]) {
	if s.touchActive {
		return
	}
	s.stopAnimation()

	s.touchActive = true
	s.touchID = id
	s.opening = true
	s.isDrag = false
	s.startPos = pos
	s.lastPos = pos

	if err := s.drawer.Show(); err != nil {
		log.Printf("Showing drawer failed: %v", err)
		s.touchActive = false
		return
	}
	s.drawerFrame.markDirty()
	s.drawerFrame.drawIfReady(drawerWindow{s})
}

// drawerTouchDown routes a touch to the module under it; a miss becomes a
// closing drag/tap candidate.
func (s *Shell) drawerTouchDown(id int, pos geometry.Position[float64]) {
	if s.touchActive || s.drawer.OwnsTouch(id) {
		return
	}

	start := s.drawer.TouchDown(id, pos, s.registry.DrawerItems())
	if start.ModuleTouched {
		if start.Dirty {
			s.drawerFrame.markDirty()
			s.drawerFrame.drawIfReady(drawerWindow{s})
		}
		return
	}

	s.stopAnimation()
	s.touchActive = true
	s.touchID = id
	s.opening = false
	s.isDrag = false
	s.startPos = pos
	s.lastPos = pos
}

func (s *Shell) touchMotion(id int, pos geometry.Position[float64]) {
	if s.drawer.OwnsTouch(id) {
		if s.drawer.TouchMotion(id, pos, s.registry.DrawerItems()) {
			s.drawerFrame.markDirty()
			s.drawerFrame.drawIfReady(drawerWindow{s})
		}
		return
	}

	if !s.touchActive || id != s.touchID {
		return
	}

	if !s.isDrag {
		// The tap threshold is compared in physical pixels, so the same
		// finger travel behaves identically across scale factors.
		distance := s.startPos.DistanceSquared(pos) * s.scale * s.scale
		if distance > s.cfg.Get().Input.MaxTapDistance {
			s.isDrag = true
		}
	}

	if s.isDrag {
		s.offset += pos.Y - s.lastPos.Y
		s.drawerFrame.markDirty()
		s.drawerFrame.drawIfReady(drawerWindow{s})
	}
	s.lastPos = pos
}

func (s *Shell) touchUp(id int) {
	if s.drawer.OwnsTouch(id) {
		if s.drawer.TouchUp(id, s.registry.DrawerItems()) {
			s.drawerFrame.markDirty()
			s.drawerFrame.drawIfReady(drawerWindow{s})
		}
		return
	}

	if !s.touchActive || id != s.touchID {
		return
	}
	s.touchActive = false

	if s.isDrag {
		s.releaseDrag()
		return
	}

	if s.opening {
		s.panelTap()
	} else {
		// Tapping the drawer background closes it.
		s.startAnimation(0)
	}
}

// releaseDrag picks the animation target from the offset at release.
// Opening drags complete once they pass a quarter of the drawer height;
// closing drags bail out once they drop below three quarters.
func (s *Shell) releaseDrag() {
	max := s.drawer.MaxOffset()
	fraction := s.cfg.Get().Animation.Threshold

	threshold := max * fraction
	if !s.opening {
		threshold = max * (1 - fraction)
	}

	if s.offset >= threshold {
		s.startAnimation(max)
	} else {
		s.startAnimation(0)
	}
}

// panelTap distinguishes single from double taps. A second tap within the
// interval turns the display off; otherwise the timer fires and toggles the
// drawer. The interval is read when the timer is armed, so a config reload
// between taps applies immediately.
func (s *Shell) panelTap() {
	if s.tapTimer != nil {
		s.tapTimer.Stop()
		s.tapTimer = nil
		if err := s.compositor.SetDisplayPower(false); err != nil {
			log.Printf("Display power request failed: %v", err)
		}
		s.startAnimation(0)
		return
	}

	interval := s.cfg.Get().Input.MultiTapInterval.Std()
	s.tapTimer = s.loop.After(interval, func() {
		s.tapTimer = nil
		s.toggleDrawer()
	})
}

func (s *Shell) toggleDrawer() {
	max := s.drawer.MaxOffset()
	if s.offset < max/2 {
		s.startAnimation(max)
	} else {
		s.startAnimation(0)
	}
}

// startAnimation drives the offset toward target, which is fixed for the
// whole animation. Each tick steps by the configured rate and the measured
// elapsed time, so a dropped tick doesn't slow the animation down.
func (s *Shell) startAnimation(target float64) {
	s.stopAnimation()
	s.animating = true
	s.animTarget = target
	s.lastAnimFrame = s.now()
	s.scheduleAnimTick()
}

func (s *Shell) stopAnimation() {
	if s.animTimer != nil {
		s.animTimer.Stop()
		s.animTimer = nil
	}
	s.animating = false
}

func (s *Shell) scheduleAnimTick() {
	interval := s.cfg.Get().Animation.Interval.Std()
	s.animTimer = s.loop.After(interval, s.animTick)
}

func (s *Shell) animTick() {
	if !s.animating {
		return
	}

	now := s.now()
	elapsed := now.Sub(s.lastAnimFrame).Seconds()
	s.lastAnimFrame = now

	step := s.cfg.Get().Animation.StepRate * elapsed
	if s.offset < s.animTarget {
		s.offset = math.Min(s.offset+step, s.animTarget)
	} else {
		s.offset = math.Max(s.offset-step, s.animTarget)
	}

	s.drawerFrame.markDirty()
	s.drawerFrame.drawIfReady(drawerWindow{s})

	if s.offset == s.animTarget {
		s.animating = false
		s.animTimer = nil
		if s.offset == 0 {
			s.drawer.Hide()
		}
		return
	}
	s.scheduleAnimTick()
}
