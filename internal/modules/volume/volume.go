// Package volume tints the panel background while the output volume is off
// its default, using PulseAudio as the data source.
package volume

import (
	"context"
	"image/color"
	"log"
	"math"

	"github.com/lawl/pulseaudio"

	"github.com/catacombing/epitaph/internal/config"
	"github.com/catacombing/epitaph/internal/module"
)

type Module struct {
	module.Base

	client *pulseaudio.Client
	volume float64
}

func New() *Module {
	return &Module{Base: module.NewBase("volume")}
}

func (m *Module) Init(ctx context.Context, notifier module.Notifier) error {
	if err := m.Base.Init(ctx, notifier); err != nil {
		return err
	}

	client, err := pulseaudio.NewClient()
	if err != nil {
		return err
	}
	m.client = client

	volume, err := client.Volume()
	if err != nil {
		client.Close()
		return err
	}
	m.volume = float64(volume)

	updates, err := client.Updates()
	if err != nil {
		client.Close()
		return err
	}

	go m.run(updates, m.volume)
	return nil
}

func (m *Module) run(updates <-chan struct{}, last float64) {
	for {
		select {
		case <-m.Context().Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			volume, err := m.client.Volume()
			if err != nil {
				log.Printf("Volume read failed: %v", err)
				continue
			}
			current := float64(volume)
			if current == last {
				continue
			}
			last = current
			m.Notify(func() { m.volume = current })
		}
	}
}

func (m *Module) Stop() error {
	if m.client != nil {
		m.client.Close()
	}
	return m.Base.Stop()
}

// Value is the tinted fraction of the panel. Volume wraps at 100%: exactly
// 100% shows no tint, 150% shows half the strip in the warning color.
func (m *Module) Value() float64 {
	if m.volume <= 0 {
		return 0
	}
	return math.Mod(m.volume, 1)
}

func (m *Module) Color(colors config.ColorConfig) color.RGBA {
	if m.volume > 1 {
		return colors.VolumeBadBG.RGBA()
	}
	return colors.VolumeBG.RGBA()
}
