package panel

import (
	"image"
	"image/color"
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
	opaque    geometry.Size[int]
}

func (f *fakeSurface) Show() error   { f.visible = true; return nil }
func (f *fakeSurface) Hide()         { f.visible = false }
func (f *fakeSurface) Visible() bool { return f.visible }
func (f *fakeSurface) RequestFrame() {}

func (f *fakeSurface) SetOpaqueRegion(size geometry.Size[int]) { f.opaque = size }

func (f *fakeSurface) Commit(frame *image.RGBA) {
	f.committed = image.NewRGBA(frame.Bounds())
	copy(f.committed.Pix, frame.Pix)
}

type textModule struct {
	module.Base
	align module.Alignment
	text  string
}

func (m *textModule) Alignment() module.Alignment { return m.align }
func (m *textModule) Content() module.Content     { return module.Text(m.text) }

type iconModule struct {
	module.Base
	align module.Alignment
}

func (m *iconModule) Alignment() module.Alignment { return m.align }
func (m *iconModule) Content() module.Content     { return module.IconContent(icons.Battery100) }

type tintModule struct {
	module.Base
	value float64
	tint  color.RGBA
}

func (m *tintModule) Value() float64 { return m.value }

func (m *tintModule) Color(config.ColorConfig) color.RGBA { return m.tint }

func newTestPanel(t *testing.T) (*Panel, *fakeSurface) {
	t.Helper()
	store, err := config.NewStore(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatal(err)
	}

	surf := &fakeSurface{visible: true}
	p, err := New(surf, store)
	if err != nil {
		t.Fatal(err)
	}
	p.SetScaleFactor(1)
	p.Configure(geometry.NewSize(360, 20))
	return p, surf
}

func TestDrawCommitsOpaqueFrame(t *testing.T) {
	p, surf := newTestPanel(t)

	mod := &textModule{Base: module.NewBase("clock"), align: module.AlignCenter, text: "12:34"}
	if err := p.Draw(nil, []module.PanelModule{mod}, nil, nil); err != nil {
		t.Fatal(err)
	}

	if surf.committed == nil {
		t.Fatal("no frame committed")
	}
	if surf.committed.Bounds() != image.Rect(0, 0, 360, 20) {
		t.Fatalf("committed bounds %v", surf.committed.Bounds())
	}
	if surf.opaque != geometry.NewSize(360, 20) {
		t.Fatalf("opaque region %v, want full strip", surf.opaque)
	}

	// Untouched corner carries the background color.
	want := config.Default().Colors.Background.RGBA()
	if got := surf.committed.RGBAAt(2, 2); got != want {
		t.Fatalf("background pixel %v, want %v", got, want)
	}
}

func TestBackgroundTintFillsProportionally(t *testing.T) {
	p, surf := newTestPanel(t)

	red := color.RGBA{R: 200, A: 255}
	tint := &tintModule{Base: module.NewBase("volume"), value: 0.5, tint: red}
	if err := p.Draw(nil, nil, nil, []module.BackgroundModule{tint}); err != nil {
		t.Fatal(err)
	}

	if got := surf.committed.RGBAAt(90, 10); got != red {
		t.Fatalf("left half pixel %v, want tint %v", got, red)
	}
	bg := config.Default().Colors.Background.RGBA()
	if got := surf.committed.RGBAAt(270, 10); got != bg {
		t.Fatalf("right half pixel %v, want background %v", got, bg)
	}
}

func TestAlignmentRunsStayInTheirThirds(t *testing.T) {
	p, surf := newTestPanel(t)

	left := &iconModule{Base: module.NewBase("left"), align: module.AlignLeft}
	right := &iconModule{Base: module.NewBase("right"), align: module.AlignRight}
	if err := p.Draw([]module.PanelModule{left}, nil, []module.PanelModule{right}, nil); err != nil {
		t.Fatal(err)
	}

	bg := config.Default().Colors.Background.RGBA()
	foundLeft, foundRight := false, false
	for x := 0; x < 60; x++ {
		for y := 0; y < 20; y++ {
			if surf.committed.RGBAAt(x, y) != bg {
				foundLeft = true
			}
			if surf.committed.RGBAAt(359-x, y) != bg {
				foundRight = true
			}
		}
	}
	if !foundLeft || !foundRight {
		t.Fatalf("icon runs missing: left=%v right=%v", foundLeft, foundRight)
	}
}
