// Package orientation toggles the compositor's orientation lock from the
// drawer.
package orientation

import (
	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/ipc"
	"github.com/catacombing/epitaph/internal/module"
)

type Module struct {
	module.Base

	client *ipc.Client

	// locked mirrors the last lock request; the compositor has no query
	// for it, so the shell starts from unlocked.
	locked bool
}

func New(client *ipc.Client) *Module {
	return &Module{Base: module.NewBase("orientation"), client: client}
}

func (m *Module) Toggle() error {
	m.locked = !m.locked
	return m.client.SetOrientationLock(m.locked)
}

func (m *Module) Enabled() bool {
	return m.locked
}

func (m *Module) Icon() icons.Icon {
	if m.locked {
		return icons.OrientationLocked
	}
	return icons.OrientationUnlocked
}
