// Package dbus wraps the system bus services the status modules read from:
// NetworkManager for wifi and ModemManager for cellular and location.
//
// Every watcher follows the same shape: a snapshot getter for the current
// state plus a Subscribe that invokes a callback on relevant bus signals.
// Callbacks run on the connection's signal goroutine; modules hand off to
// the shell loop through their notifier.
package dbus

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	nmService     = "org.freedesktop.NetworkManager"
	nmPath        = "/org/freedesktop/NetworkManager"
	nmDeviceIface = "org.freedesktop.NetworkManager.Device"
	nmAPIface     = "org.freedesktop.NetworkManager.AccessPoint"

	// NM_DEVICE_TYPE_WIFI
	nmDeviceTypeWifi = uint32(2)
)

// WifiState is a snapshot of the wifi radio.
type WifiState struct {
	Enabled   bool
	Connected bool

	// Strength is the active access point's signal in percent.
	Strength uint8
}

// NetworkManager reads wifi state from the NetworkManager daemon.
type NetworkManager struct {
	conn *dbus.Conn
}

// NewNetworkManager connects to the system bus.
func NewNetworkManager() (*NetworkManager, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to system bus: %w", err)
	}
	return &NetworkManager{conn: conn}, nil
}

// WifiState returns the current wifi snapshot.
func (nm *NetworkManager) WifiState() (WifiState, error) {
	var state WifiState

	root := nm.conn.Object(nmService, nmPath)
	enabled, err := root.GetProperty(nmService + ".WirelessEnabled")
	if err != nil {
		return state, fmt.Errorf("reading WirelessEnabled: %w", err)
	}
	if err := enabled.Store(&state.Enabled); err != nil {
		return state, err
	}
	if !state.Enabled {
		return state, nil
	}

	var devices []dbus.ObjectPath
	if err := root.Call(nmService+".GetDevices", 0).Store(&devices); err != nil {
		return state, fmt.Errorf("listing devices: %w", err)
	}

	for _, path := range devices {
		device := nm.conn.Object(nmService, path)

		kind, err := device.GetProperty(nmDeviceIface + ".DeviceType")
		if err != nil {
			continue
		}
		var deviceType uint32
		if kind.Store(&deviceType) != nil || deviceType != nmDeviceTypeWifi {
			continue
		}

		ap, err := device.GetProperty(nmDeviceIface + ".Wireless.ActiveAccessPoint")
		if err != nil {
			continue
		}
		var apPath dbus.ObjectPath
		if ap.Store(&apPath) != nil || apPath == "/" {
			continue
		}

		strength, err := nm.conn.Object(nmService, apPath).GetProperty(nmAPIface + ".Strength")
		if err != nil {
			continue
		}
		state.Connected = true
		strength.Store(&state.Strength)
		return state, nil
	}

	return state, nil
}

// SetWifiEnabled switches the wifi radio.
func (nm *NetworkManager) SetWifiEnabled(enabled bool) error {
	root := nm.conn.Object(nmService, nmPath)
	if err := root.SetProperty(nmService+".WirelessEnabled", dbus.MakeVariant(enabled)); err != nil {
		return fmt.Errorf("setting WirelessEnabled: %w", err)
	}
	return nil
}

// Subscribe invokes onChange for every NetworkManager property change until
// ctx is cancelled. Callers re-read the snapshot; the signal payload is not
// interpreted.
func (nm *NetworkManager) Subscribe(ctx context.Context, onChange func()) error {
	if err := nm.conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchSender(nmService),
	); err != nil {
		return fmt.Errorf("subscribing to NetworkManager signals: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	nm.conn.Signal(signals)

	go func() {
		defer nm.conn.RemoveSignal(signals)
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
