package drawer

import (
	"bytes"
	"image"
	"path/filepath"
	"testing"

	"github.com/catacombing/epitaph/internal/config"
	"github.com/catacombing/epitaph/internal/geometry"
	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/module"
)

type fakeSurface struct {
	visible   bool
	committed *image.RGBA
	frames    int
}

func (f *fakeSurface) Show() error                        { f.visible = true; return nil }
func (f *fakeSurface) Hide()                              { f.visible = false }
func (f *fakeSurface) Visible() bool                      { return f.visible }
func (f *fakeSurface) RequestFrame()                      { f.frames++ }
func (f *fakeSurface) SetOpaqueRegion(geometry.Size[int]) {}

func (f *fakeSurface) Commit(frame *image.RGBA) {
	// Snapshot the pixels; the renderer reuses its frame buffer.
	f.committed = image.NewRGBA(frame.Bounds())
	copy(f.committed.Pix, frame.Pix)
}

type stubToggle struct {
	module.Base
	enabled bool
}

func (t *stubToggle) Toggle() error    { t.enabled = !t.enabled; return nil }
func (t *stubToggle) Enabled() bool    { return t.enabled }
func (t *stubToggle) Icon() icons.Icon { return icons.FlashlightOff }

func newTestDrawer(t *testing.T) (*Drawer, *fakeSurface) {
	t.Helper()
	store, err := config.NewStore(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatal(err)
	}
	surf := &fakeSurface{visible: true}
	d, err := New(surf, store)
	if err != nil {
		t.Fatal(err)
	}
	d.SetScaleFactor(1)
	d.Configure(geometry.NewSize(360, 720))
	return d, surf
}

func TestDrawClampsOvershotOffset(t *testing.T) {
	d, surf := newTestDrawer(t)
	items := []module.Item{{Kind: module.ItemToggle, Toggle: &stubToggle{Base: module.NewBase("toggle")}}}

	// Drags can push the offset far past the window height; the rendered
	// frame must be identical to the fully open one.
	if err := d.Draw(items, 1490); err != nil {
		t.Fatal(err)
	}
	overshot := surf.committed

	if err := d.Draw(items, d.MaxOffset()); err != nil {
		t.Fatal(err)
	}
	open := surf.committed

	if overshot.Bounds() != open.Bounds() {
		t.Fatalf("frame bounds differ: %v vs %v", overshot.Bounds(), open.Bounds())
	}
	if !bytes.Equal(overshot.Pix, open.Pix) {
		t.Fatal("overshot offset did not render as fully open")
	}
}

func TestDrawClampsNegativeOffset(t *testing.T) {
	d, surf := newTestDrawer(t)
	items := []module.Item{{Kind: module.ItemToggle, Toggle: &stubToggle{Base: module.NewBase("toggle")}}}

	if err := d.Draw(items, -50); err != nil {
		t.Fatal(err)
	}
	negative := surf.committed

	if err := d.Draw(items, 0); err != nil {
		t.Fatal(err)
	}
	closed := surf.committed

	if !bytes.Equal(negative.Pix, closed.Pix) {
		t.Fatal("negative offset did not render as fully closed")
	}

	// A fully closed drawer reveals nothing.
	for _, p := range closed.Pix {
		if p != 0 {
			t.Fatal("closed drawer rendered visible pixels")
		}
	}
}
