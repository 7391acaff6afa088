// Package clock shows the current time in the panel.
package clock

import (
	"context"
	"time"

	"github.com/catacombing/epitaph/internal/module"
)

type Module struct {
	module.Base
}

func New() *Module {
	return &Module{Base: module.NewBase("clock")}
}

func (m *Module) Init(ctx context.Context, notifier module.Notifier) error {
	if err := m.Base.Init(ctx, notifier); err != nil {
		return err
	}
	go m.run()
	return nil
}

// run wakes at every full minute; the content itself is formatted at draw
// time, so the notification only triggers the redraw.
func (m *Module) run() {
	for {
		now := time.Now()
		next := now.Truncate(time.Minute).Add(time.Minute)
		select {
		case <-m.Context().Done():
			return
		case <-time.After(next.Sub(now)):
			m.Notify(func() {})
		}
	}
}

func (m *Module) Alignment() module.Alignment {
	return module.AlignCenter
}

func (m *Module) Content() module.Content {
	return module.Text(time.Now().Format("15:04"))
}
