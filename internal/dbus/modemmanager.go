package dbus

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	mmService       = "org.freedesktop.ModemManager1"
	mmPath          = "/org/freedesktop/ModemManager1"
	mmModemIface    = "org.freedesktop.ModemManager1.Modem"
	mmLocationIface = "org.freedesktop.ModemManager1.Modem.Location"

	// MM_MODEM_STATE_REGISTERED and above mean the modem has service.
	mmStateRegistered = int32(8)
	// MM_MODEM_STATE_DISABLED and below mean the radio is off.
	mmStateDisabled = int32(3)

	// MM_MODEM_LOCATION_SOURCE_GPS_NMEA
	mmLocationSourceGPS = uint32(1 << 2)
)

// ModemState is a snapshot of the first modem.
type ModemState struct {
	// Present is false when no modem exists on the bus.
	Present bool

	Enabled    bool
	Registered bool

	// SignalQuality is the registered network's signal in percent.
	SignalQuality uint8
}

// ModemManager reads cellular and location state from the ModemManager
// daemon.
type ModemManager struct {
	conn *dbus.Conn
}

// NewModemManager connects to the system bus.
func NewModemManager() (*ModemManager, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to system bus: %w", err)
	}
	return &ModemManager{conn: conn}, nil
}

// firstModem returns the object path of the first managed modem.
func (mm *ModemManager) firstModem() (dbus.ObjectPath, error) {
	var objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	root := mm.conn.Object(mmService, mmPath)
	if err := root.Call("org.freedesktop.DBus.ObjectManager.GetManagedObjects", 0).Store(&objects); err != nil {
		return "", fmt.Errorf("listing modems: %w", err)
	}
	for path, ifaces := range objects {
		if _, ok := ifaces[mmModemIface]; ok {
			return path, nil
		}
	}
	return "", nil
}

// ModemState returns the current cellular snapshot.
func (mm *ModemManager) ModemState() (ModemState, error) {
	var state ModemState

	path, err := mm.firstModem()
	if err != nil {
		return state, err
	}
	if path == "" {
		return state, nil
	}
	state.Present = true

	modem := mm.conn.Object(mmService, path)

	rawState, err := modem.GetProperty(mmModemIface + ".State")
	if err != nil {
		return state, fmt.Errorf("reading modem state: %w", err)
	}
	var modemState int32
	if err := rawState.Store(&modemState); err != nil {
		return state, err
	}
	state.Enabled = modemState > mmStateDisabled
	state.Registered = modemState >= mmStateRegistered

	if state.Registered {
		quality, err := modem.GetProperty(mmModemIface + ".SignalQuality")
		if err == nil {
			// The property is (uu): percent and a recency flag.
			var pair []interface{}
			if quality.Store(&pair) == nil && len(pair) == 2 {
				if percent, ok := pair[0].(uint32); ok {
					state.SignalQuality = uint8(percent)
				}
			}
		}
	}

	return state, nil
}

// SetModemEnabled powers the first modem's radio up or down.
func (mm *ModemManager) SetModemEnabled(enabled bool) error {
	path, err := mm.firstModem()
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("no modem present")
	}
	return mm.conn.Object(mmService, path).Call(mmModemIface+".Enable", 0, enabled).Err
}

// GPSEnabled reports whether the first modem has its GPS source enabled.
func (mm *ModemManager) GPSEnabled() (bool, error) {
	path, err := mm.firstModem()
	if err != nil {
		return false, err
	}
	if path == "" {
		return false, nil
	}

	enabled, err := mm.conn.Object(mmService, path).GetProperty(mmLocationIface + ".Enabled")
	if err != nil {
		return false, fmt.Errorf("reading location sources: %w", err)
	}
	var sources uint32
	if err := enabled.Store(&sources); err != nil {
		return false, err
	}
	return sources&mmLocationSourceGPS != 0, nil
}

// SetGPSEnabled switches the first modem's GPS location source.
func (mm *ModemManager) SetGPSEnabled(enabled bool) error {
	path, err := mm.firstModem()
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("no modem present")
	}

	modem := mm.conn.Object(mmService, path)
	current, err := modem.GetProperty(mmLocationIface + ".Enabled")
	if err != nil {
		return fmt.Errorf("reading location sources: %w", err)
	}
	var sources uint32
	if err := current.Store(&sources); err != nil {
		return err
	}

	if enabled {
		sources |= mmLocationSourceGPS
	} else {
		sources &^= mmLocationSourceGPS
	}
	return modem.Call(mmLocationIface+".Setup", 0, sources, false).Err
}

// Subscribe invokes onChange for every ModemManager property change until
// ctx is cancelled.
func (mm *ModemManager) Subscribe(ctx context.Context, onChange func()) error {
	if err := mm.conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchSender(mmService),
	); err != nil {
		return fmt.Errorf("subscribing to ModemManager signals: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	mm.conn.Signal(signals)

	go func() {
		defer mm.conn.RemoveSignal(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				if sig != nil {
					onChange()
				}
			}
		}
	}()

	return nil
}
