// Package brightness controls the display backlight through sysfs.
package brightness

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/module"
)

// snapStep quantizes slider input so tiny finger jitter doesn't spam
// backlight writes.
const snapStep = 0.05

// backlightRoot is a variable so tests can point at a fake sysfs tree.
var backlightRoot = "/sys/class/backlight"

type Module struct {
	module.Base

	path  string
	max   int
	value float64
}

func New() *Module {
	return &Module{Base: module.NewBase("brightness")}
}

func (m *Module) Init(ctx context.Context, notifier module.Notifier) error {
	if err := m.Base.Init(ctx, notifier); err != nil {
		return err
	}

	entries, err := os.ReadDir(backlightRoot)
	if err != nil {
		return fmt.Errorf("listing backlights: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no backlight found in %s", backlightRoot)
	}
	m.path = filepath.Join(backlightRoot, entries[0].Name())

	m.max, err = readInt(filepath.Join(m.path, "max_brightness"))
	if err != nil {
		return err
	}
	if m.max <= 0 {
		return fmt.Errorf("backlight %s reports max brightness %d", m.path, m.max)
	}

	current, err := readInt(filepath.Join(m.path, "brightness"))
	if err != nil {
		return err
	}
	m.value = float64(current) / float64(m.max)

	return nil
}

// SetValue applies the brightness immediately; the quantization makes
// repeated motion events at the same snapped value free.
func (m *Module) SetValue(value float64) error {
	snapped := math.Round(value/snapStep) * snapStep
	snapped = math.Max(0, math.Min(1, snapped))
	if snapped == m.value {
		return nil
	}
	m.value = snapped

	raw := int(math.Round(snapped * float64(m.max)))
	return os.WriteFile(filepath.Join(m.path, "brightness"), []byte(strconv.Itoa(raw)), 0o644)
}

func (m *Module) OnRelease() error {
	return nil
}

func (m *Module) Value() float64 {
	return m.value
}

func (m *Module) Icon() icons.Icon {
	return icons.Brightness
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	return n, nil
}
