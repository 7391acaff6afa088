// Package cellular shows modem state in the panel and toggles the radio
// from the drawer.
package cellular

import (
	"context"
	"log"

	"github.com/catacombing/epitaph/internal/dbus"
	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/module"
)

type Module struct {
	module.Base

	mm    *dbus.ModemManager
	state dbus.ModemState
}

func New() *Module {
	return &Module{Base: module.NewBase("cellular")}
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

	state, err := mm.ModemState()
	if err != nil {
		return err
	}
	m.state = state

	last := state
	return mm.Subscribe(m.Context(), func() {
		current, err := m.mm.ModemState()
		if err != nil {
			log.Printf("Modem state read failed: %v", err)
			return
		}
		if current == last {
			return
		}
		last = current
		m.Notify(func() { m.state = current })
	})
}

func (m *Module) Alignment() module.Alignment {
	return module.AlignRight
}

func (m *Module) Content() module.Content {
	return module.IconContent(m.Icon())
}

func (m *Module) Toggle() error {
	m.state.Enabled = !m.state.Enabled
	return m.mm.SetModemEnabled(m.state.Enabled)
}

func (m *Module) Enabled() bool {
	return m.state.Enabled
}

func (m *Module) Icon() icons.Icon {
	return icon(m.state)
}

func icon(s dbus.ModemState) icons.Icon {
	if !s.Present || !s.Enabled {
		return icons.CellularDisabled
	}
	if !s.Registered {
		return icons.Cellular0
	}
	switch {
	case s.SignalQuality <= 10:
		return icons.Cellular0
	case s.SignalQuality <= 20:
		return icons.Cellular20
	case s.SignalQuality <= 40:
		return icons.Cellular40
	case s.SignalQuality <= 60:
		return icons.Cellular60
	case s.SignalQuality <= 80:
		return icons.Cellular80
	default:
		return icons.Cellular100
	}
}
