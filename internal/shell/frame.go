package shell

import "log"

// drawable is one shell window as seen by the damage tracker.
type drawable interface {
	// Ready reports whether the window may legally receive a buffer:
	// it must be mapped and have a configured, non-zero size.
	Ready() bool

	// Submit renders the current content, commits the buffer and
	// requests the next frame callback.
	Submit() error
}

// frameState tracks per-window damage independently of the compositor's
// frame callback protocol.
//
// dirty means content changed and a redraw is owed at the next opportunity.
// stalled means a draw was skipped because conditions weren't met, so no
// frame callback is pending and a later unstall must force the draw itself.
type frameState struct {
	name    string
	dirty   bool
	stalled bool
}

// markDirty records that content changed without drawing.
func (f *frameState) markDirty() {
	f.dirty = true
}

// drawIfReady submits a frame when there is damage and the window can
// legally be drawn to; otherwise it records the stall.
func (f *frameState) drawIfReady(w drawable) {
	if !f.dirty || !w.Ready() {
		f.stalled = true
		return
	}
	f.dirty = false
	if err := w.Submit(); err != nil {
		log.Printf("%s rendering failed: %v", f.name, err)
	}
}

// unstall marks the window dirty and, if the window was stalled, forces an
// immediate draw attempt: a stalled window has no frame callback pending
// and would otherwise never redraw.
func (f *frameState) unstall(w drawable) {
	f.dirty = true
	wasStalled := f.stalled
	f.stalled = false
	if wasStalled {
		f.drawIfReady(w)
	}
}
