package wifi

import (
	"testing"

	"github.com/catacombing/epitaph/internal/dbus"
	"github.com/catacombing/epitaph/internal/icons"
)

func TestIconSelection(t *testing.T) {
	tests := []struct {
		name  string
		state dbus.WifiState
		want  icons.Icon
	}{
		{"disabled", dbus.WifiState{}, icons.WifiDisabled},
		{"disabled with stale strength", dbus.WifiState{Strength: 90}, icons.WifiDisabled},
		{"enabled disconnected", dbus.WifiState{Enabled: true}, icons.WifiDisconnected25},
		{"weak", dbus.WifiState{Enabled: true, Connected: true, Strength: 10}, icons.WifiConnected25},
		{"medium", dbus.WifiState{Enabled: true, Connected: true, Strength: 50}, icons.WifiConnected50},
		{"good", dbus.WifiState{Enabled: true, Connected: true, Strength: 70}, icons.WifiConnected75},
		{"full", dbus.WifiState{Enabled: true, Connected: true, Strength: 100}, icons.WifiConnected100},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := icon(test.state); got != test.want {
				t.Errorf("icon(%+v) = %s, want %s", test.state, got, test.want)
			}
		})
	}
}
