// Package gps toggles the modem's GPS location source from the drawer.
package gps

import (
	"context"
	"log"

	"github.com/catacombing/epitaph/internal/dbus"
	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/module"
)

type Module struct {
	module.Base

	mm      *dbus.ModemManager
	enabled bool
}

func New() *Module {
	return &Module{Base: module.NewBase("gps")}
}

func (m *Module) Init(ctx context.Context, notifier module.Notifier) error {
	if err := m.Base.Init(ctx, notifier); err != nil {
		return err
	}

	mm, err := dbus.NewModemManager()
	if err != nil {
		return err
	}
	m.mm = mm

	enabled, err := mm.GPSEnabled()
	if err != nil {
		return err
	}
	m.enabled = enabled

	last := enabled
	return mm.Subscribe(m.Context(), func() {
		current, err := m.mm.GPSEnabled()
		if err != nil {
			log.Printf("GPS state read failed: %v", err)
			return
		}
		if current == last {
			return
		}
		last = current
		m.Notify(func() { m.enabled = current })
	})
}

func (m *Module) Toggle() error {
	m.enabled = !m.enabled
	return m.mm.SetGPSEnabled(m.enabled)
}

func (m *Module) Enabled() bool {
	return m.enabled
}

func (m *Module) Icon() icons.Icon {
	if m.enabled {
		return icons.GpsOn
	}
	return icons.GpsOff
}
