// Package flashlight toggles the camera flash LED through sysfs.
package flashlight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/module"
)

// ledsRoot is a variable so tests can point at a fake sysfs tree.
var ledsRoot = "/sys/class/leds"

type Module struct {
	module.Base

	path string
	max  int
	on   bool
}

func New() *Module {
	return &Module{Base: module.NewBase("flashlight")}
}

func (m *Module) Init(ctx context.Context, notifier module.Notifier) error {
	if err := m.Base.Init(ctx, notifier); err != nil {
		return err
	}

	path, err := findFlash()
	if err != nil {
		return err
	}
	m.path = path

	m.max, err = readInt(filepath.Join(path, "max_brightness"))
	if err != nil {
		return err
	}

	current, err := readInt(filepath.Join(path, "brightness"))
	if err != nil {
		return err
	}
	m.on = current > 0

	return nil
}

func (m *Module) Toggle() error {
	m.on = !m.on
	raw := 0
	if m.on {
		raw = m.max
	}
	return os.WriteFile(filepath.Join(m.path, "brightness"), []byte(strconv.Itoa(raw)), 0o644)
}

func (m *Module) Enabled() bool {
	return m.on
}

func (m *Module) Icon() icons.Icon {
	if m.on {
		return icons.FlashlightOn
	}
	return icons.FlashlightOff
}

// findFlash returns the first LED device that looks like a camera flash.
func findFlash() (string, error) {
	entries, err := os.ReadDir(ledsRoot)
	if err != nil {
		return "", fmt.Errorf("listing leds: %w", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), "flash") || strings.Contains(entry.Name(), "torch") {
			return filepath.Join(ledsRoot, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no flash led found in %s", ledsRoot)
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
