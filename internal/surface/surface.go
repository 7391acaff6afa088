// Package surface defines the boundary between the shell core and the
// windowing/protocol layer.
//
// The windowing layer delivers already-resolved logical sizes and scale
// factors through EventHandler and receives frames through Surface. The
// shell never talks to a display protocol directly; a Wayland layer-shell
// binding and the desktop emulator both sit behind these two interfaces.
package surface

import (
	"image"

	"github.com/catacombing/epitaph/internal/geometry"
)

// Surface is one shell window as seen from the core.
type Surface interface {
	// Show maps the window. Showing an already-mapped window is a no-op.
	Show() error

	// Hide unmaps the window. A hidden window never receives a buffer.
	Hide()

	// Visible reports whether the window is currently mapped.
	Visible() bool

	// RequestFrame asks for the next compositor frame callback. A second
	// request while one is outstanding is a no-op.
	RequestFrame()

	// SetOpaqueRegion marks the given logical area as opaque as a
	// compositing optimization hint.
	SetOpaqueRegion(size geometry.Size[int])

	// Commit attaches and commits a finished frame.
	Commit(frame *image.RGBA)
}

// EventHandler receives windowing events for one surface. Implementations
// must be safe to call from the windowing layer's goroutine; the shell's
// handlers re-post into its serial event loop.
type EventHandler interface {
	// Configure delivers a new logical window size.
	Configure(size geometry.Size[int])

	// ScaleFactorChanged delivers a new output scale factor.
	ScaleFactorChanged(scale float64)

	// Frame delivers a compositor frame callback.
	Frame()

	// TouchDown/TouchMotion/TouchUp deliver a touch point stream in
	// logical coordinates. Events for one id arrive strictly in order.
	TouchDown(id int, pos geometry.Position[float64])
	TouchMotion(id int, pos geometry.Position[float64])
	TouchUp(id int)

	// Closed reports that the windowing layer destroyed the surface.
	Closed()
}

// NopHandler is an EventHandler that ignores everything. Embed it to
// implement only the events of interest.
type NopHandler struct{}

func (NopHandler) Configure(geometry.Size[int])              {}
func (NopHandler) ScaleFactorChanged(float64)                {}
func (NopHandler) Frame()                                    {}
func (NopHandler) TouchDown(int, geometry.Position[float64]) {}
func (NopHandler) TouchMotion(int, geometry.Position[float64]) {
}
func (NopHandler) TouchUp(int) {}
func (NopHandler) Closed()     {}
