// Package modules assembles the configured module set.
package modules

import (
	"log"

	"github.com/catacombing/epitaph/internal/ipc"
	"github.com/catacombing/epitaph/internal/module"
	"github.com/catacombing/epitaph/internal/modules/battery"
	"github.com/catacombing/epitaph/internal/modules/brightness"
	"github.com/catacombing/epitaph/internal/modules/cellular"
	"github.com/catacombing/epitaph/internal/modules/clock"
	"github.com/catacombing/epitaph/internal/modules/date"
	"github.com/catacombing/epitaph/internal/modules/flashlight"
	"github.com/catacombing/epitaph/internal/modules/gps"
	"github.com/catacombing/epitaph/internal/modules/orientation"
	"github.com/catacombing/epitaph/internal/modules/scale"
	"github.com/catacombing/epitaph/internal/modules/volume"
	"github.com/catacombing/epitaph/internal/modules/wifi"
)

// New instantiates a single module by its config name. The second return
// reports whether the name is known.
func New(name string, compositor *ipc.Client) (module.Module, bool) {
	switch name {
	case "clock":
		return clock.New(), true
	case "date":
		return date.New(), true
	case "battery":
		return battery.New(), true
	case "wifi":
		return wifi.New(), true
	case "cellular":
		return cellular.New(), true
	case "gps":
		return gps.New(), true
	case "brightness":
		return brightness.New(), true
	case "scale":
		return scale.New(compositor), true
	case "flashlight":
		return flashlight.New(), true
	case "orientation":
		return orientation.New(compositor), true
	case "volume":
		return volume.New(), true
	}
	return nil, false
}

// Build instantiates the named modules in order. Unknown names are logged
// and skipped, so a stale config entry doesn't take the shell down.
func Build(names []string, compositor *ipc.Client) []module.Module {
	var mods []module.Module
	for _, name := range names {
		m, ok := New(name, compositor)
		if !ok {
			log.Printf("Unknown module %q in config (skipping)", name)
			continue
		}
		mods = append(mods, m)
	}
	return mods
}
