package brightness

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func fakeBacklight(t *testing.T, max, current string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "backlight0")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "max_brightness"), []byte(max+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "brightness"), []byte(current+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	old := backlightRoot
	backlightRoot = root
	t.Cleanup(func() { backlightRoot = old })
	return dir
}

func TestInitReadsCurrentLevel(t *testing.T) {
	fakeBacklight(t, "200", "100")

	m := New()
	if err := m.Init(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if m.Value() != 0.5 {
		t.Fatalf("got value %v, want 0.5", m.Value())
	}
}

func TestSetValueSnapsAndWrites(t *testing.T) {
	dir := fakeBacklight(t, "200", "0")

	m := New()
	if err := m.Init(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	if err := m.SetValue(0.52); err != nil {
		t.Fatal(err)
	}
	if m.Value() != 0.5 {
		t.Fatalf("got value %v, want snapped 0.5", m.Value())
	}

	data, err := os.ReadFile(filepath.Join(dir, "brightness"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "100" {
		t.Fatalf("wrote brightness %q, want 100", data)
	}

	// The same snapped value must not rewrite.
	if err := os.WriteFile(filepath.Join(dir, "brightness"), []byte("sentinel"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.SetValue(0.51); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(filepath.Join(dir, "brightness"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "sentinel" {
		t.Fatal("unchanged snapped value rewrote the backlight")
	}
}

func TestSetValueClamps(t *testing.T) {
	fakeBacklight(t, "200", "100")

	m := New()
	if err := m.Init(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	if err := m.SetValue(1.4); err != nil {
		t.Fatal(err)
	}
	if m.Value() != 1 {
		t.Fatalf("got value %v, want clamped 1", m.Value())
	}
	if err := m.SetValue(-0.3); err != nil {
		t.Fatal(err)
	}
	if m.Value() != 0 {
		t.Fatalf("got value %v, want clamped 0", m.Value())
	}
}
