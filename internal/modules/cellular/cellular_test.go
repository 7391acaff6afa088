package cellular

import (
	"testing"

	"github.com/catacombing/epitaph/internal/dbus"
	"github.com/catacombing/epitaph/internal/icons"
)

func TestIconSelection(t *testing.T) {
	tests := []struct {
		name  string
		state dbus.ModemState
		want  icons.Icon
	}{
		{"no modem", dbus.ModemState{}, icons.CellularDisabled},
		{"radio off", dbus.ModemState{Present: true}, icons.CellularDisabled},
		{"searching", dbus.ModemState{Present: true, Enabled: true}, icons.Cellular0},
		{"registered no signal", dbus.ModemState{Present: true, Enabled: true, Registered: true, SignalQuality: 5}, icons.Cellular0},
		{"weak", dbus.ModemState{Present: true, Enabled: true, Registered: true, SignalQuality: 15}, icons.Cellular20},
		{"half", dbus.ModemState{Present: true, Enabled: true, Registered: true, SignalQuality: 55}, icons.Cellular60},
		{"full", dbus.ModemState{Present: true, Enabled: true, Registered: true, SignalQuality: 95}, icons.Cellular100},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := icon(test.state); got != test.want {
				t.Errorf("icon(%+v) = %s, want %s", test.state, got, test.want)
			}
		})
	}
}
