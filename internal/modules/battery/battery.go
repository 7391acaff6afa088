// Package battery shows the charge level of the first system battery.
package battery

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/module"
)

const pollInterval = 30 * time.Second

// supplyRoot is a variable so tests can point at a fake sysfs tree.
var supplyRoot = "/sys/class/power_supply"

type state struct {
	capacity int
	charging bool
}

type Module struct {
	module.Base

	// path is the sysfs directory of the battery.
	path  string
	state state
}

func New() *Module {
	return &Module{Base: module.NewBase("battery")}
}

func (m *Module) Init(ctx context.Context, notifier module.Notifier) error {
	if err := m.Base.Init(ctx, notifier); err != nil {
		return err
	}

	path, err := findBattery()
	if err != nil {
		return err
	}
	m.path = path

	current, err := readState(path)
	if err != nil {
		return err
	}
	m.state = current

	go m.run(current)
	return nil
}

func (m *Module) run(last state) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.Context().Done():
			return
		case <-ticker.C:
			current, err := readState(m.path)
			if err != nil {
				log.Printf("Battery read failed: %v", err)
				continue
			}
			if current == last {
				continue
			}
			last = current
			m.Notify(func() { m.state = current })
		}
	}
}

func (m *Module) Alignment() module.Alignment {
	return module.AlignRight
}

func (m *Module) Content() module.Content {
	return module.IconContent(icon(m.state))
}

func icon(s state) icons.Icon {
	bucket := (s.capacity + 19) / 20 * 20
	if bucket < 20 {
		bucket = 20
	}
	if bucket > 100 {
		bucket = 100
	}
	if s.charging {
		return icons.Icon(fmt.Sprintf("battery-charging-%d", bucket))
	}
	return icons.Icon(fmt.Sprintf("battery-%d", bucket))
}

// findBattery returns the sysfs directory of the first battery supply.
func findBattery() (string, error) {
	entries, err := os.ReadDir(supplyRoot)
	if err != nil {
		return "", fmt.Errorf("listing power supplies: %w", err)
	}
	for _, entry := range entries {
		path := filepath.Join(supplyRoot, entry.Name())
		kind, err := os.ReadFile(filepath.Join(path, "type"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(kind)) == "Battery" {
			return path, nil
		}
	}
	return "", fmt.Errorf("no battery found in %s", supplyRoot)
}

func readState(path string) (state, error) {
	var s state

	capacity, err := os.ReadFile(filepath.Join(path, "capacity"))
	if err != nil {
		return s, fmt.Errorf("reading capacity: %w", err)
	}
	s.capacity, err = strconv.Atoi(strings.TrimSpace(string(capacity)))
	if err != nil {
		return s, fmt.Errorf("parsing capacity: %w", err)
	}

	status, err := os.ReadFile(filepath.Join(path, "status"))
	if err != nil {
		return s, fmt.Errorf("reading status: %w", err)
	}
	s.charging = strings.TrimSpace(string(status)) == "Charging"

	return s, nil
}
