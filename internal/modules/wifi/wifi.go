// Package wifi shows wifi state in the panel and toggles the radio from the
// drawer.
package wifi

import (
	"context"
	"log"

	"github.com/catacombing/epitaph/internal/dbus"
	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/module"
)

type Module struct {
	module.Base

	nm    *dbus.NetworkManager
	state dbus.WifiState
}

func New() *Module {
	return &Module{Base: module.NewBase("wifi")}
}

func (m *Module) Init(ctx context.Context, notifier module.Notifier) error {
	if err := m.Base.Init(ctx, notifier); err != nil {
		return err
	}

	nm, err := dbus.NewNetworkManager()
	if err != nil {
		return err
	}
	m.nm = nm

	state, err := nm.WifiState()
	if err != nil {
		return err
	}
	m.state = state

	// Coalesce bus chatter: last tracks what was delivered and only runs
	// on the subscribe goroutine.
	last := state
	return nm.Subscribe(m.Context(), func() {
		current, err := m.nm.WifiState()
		if err != nil {
			log.Printf("Wifi state read failed: %v", err)
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

// Toggle flips the radio. The visual state updates optimistically; the bus
// signal corrects it if the request failed.
func (m *Module) Toggle() error {
	m.state.Enabled = !m.state.Enabled
	return m.nm.SetWifiEnabled(m.state.Enabled)
}

func (m *Module) Enabled() bool {
	return m.state.Enabled
}

func (m *Module) Icon() icons.Icon {
	return icon(m.state)
}

func icon(s dbus.WifiState) icons.Icon {
	if !s.Enabled {
		return icons.WifiDisabled
	}

	connected := map[uint8]icons.Icon{
		25: icons.WifiConnected25, 50: icons.WifiConnected50,
		75: icons.WifiConnected75, 100: icons.WifiConnected100,
	}
	disconnected := map[uint8]icons.Icon{
		25: icons.WifiDisconnected25, 50: icons.WifiDisconnected50,
		75: icons.WifiDisconnected75, 100: icons.WifiDisconnected100,
	}

	bucket := uint8(100)
	switch {
	case s.Strength <= 25:
		bucket = 25
	case s.Strength <= 50:
		bucket = 50
	case s.Strength <= 75:
		bucket = 75
	}

	if s.Connected {
		return connected[bucket]
	}
	return disconnected[bucket]
}
