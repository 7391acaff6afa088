// Package date shows the current date in the panel.
package date

import (
	"context"
	"time"

	"github.com/catacombing/epitaph/internal/module"
)

type Module struct {
	module.Base
}

func New() *Module {
	return &Module{Base: module.NewBase("date")}
}

func (m *Module) Init(ctx context.Context, notifier module.Notifier) error {
	if err := m.Base.Init(ctx, notifier); err != nil {
		return err
	}
	go m.run()
	return nil
}

// run wakes at midnight to flip the date.
func (m *Module) run() {
	for {
		now := time.Now()
		next := nextMidnight(now)
		select {
		case <-m.Context().Done():
			return
		case <-time.After(next.Sub(now)):
			m.Notify(func() {})
		}
	}
}

// nextMidnight returns the start of the next day in now's location. Day
// boundaries follow the local wall clock, not UTC.
func nextMidnight(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
}

func (m *Module) Alignment() module.Alignment {
	return module.AlignLeft
}

func (m *Module) Content() module.Content {
	return module.Text(time.Now().Format("Mon 02 Jan"))
}
