// Package scale adjusts the compositor's output scale from the drawer.
package scale

import (
	"context"
	"math"

	"github.com/catacombing/epitaph/internal/icons"
	"github.com/catacombing/epitaph/internal/ipc"
	"github.com/catacombing/epitaph/internal/module"
)

const (
	minScale = 0.5
	maxScale = 3.0
	snapStep = 0.5
)

type Module struct {
	module.Base

	client *ipc.Client

	// scale is the last applied value, pending the one shown while the
	// slider is held. Rescaling relayouts every surface, so the write is
	// deferred until the touch lifts.
	scale   float64
	pending float64
}

func New(client *ipc.Client) *Module {
	return &Module{Base: module.NewBase("scale"), client: client}
}

func (m *Module) Init(ctx context.Context, notifier module.Notifier) error {
	if err := m.Base.Init(ctx, notifier); err != nil {
		return err
	}

	current, err := m.client.Scale()
	if err != nil {
		return err
	}
	m.scale = math.Max(minScale, math.Min(maxScale, current))
	m.pending = m.scale
	return nil
}

func (m *Module) SetValue(value float64) error {
	target := minScale + value*(maxScale-minScale)
	snapped := math.Round(target/snapStep) * snapStep
	m.pending = math.Max(minScale, math.Min(maxScale, snapped))
	return nil
}

func (m *Module) OnRelease() error {
	if m.pending == m.scale {
		return nil
	}
	m.scale = m.pending
	return m.client.SetScale(m.scale)
}

func (m *Module) Value() float64 {
	return (m.pending - minScale) / (maxScale - minScale)
}

func (m *Module) Icon() icons.Icon {
	return icons.Scale
}
