// Package icons holds the embedded SVG assets used by the panel and drawer.
package icons

import (
	"embed"
	"fmt"
)

//go:embed assets/*.svg
var assets embed.FS

// Icon identifies an embedded SVG.
type Icon string

const (
	Battery20          Icon = "battery-20"
	Battery40          Icon = "battery-40"
	Battery60          Icon = "battery-60"
	Battery80          Icon = "battery-80"
	Battery100         Icon = "battery-100"
	BatteryCharging20  Icon = "battery-charging-20"
	BatteryCharging40  Icon = "battery-charging-40"
	BatteryCharging60  Icon = "battery-charging-60"
	BatteryCharging80  Icon = "battery-charging-80"
	BatteryCharging100 Icon = "battery-charging-100"

	WifiDisabled        Icon = "wifi-disabled"
	WifiConnected25     Icon = "wifi-connected-25"
	WifiConnected50     Icon = "wifi-connected-50"
	WifiConnected75     Icon = "wifi-connected-75"
	WifiConnected100    Icon = "wifi-connected-100"
	WifiDisconnected25  Icon = "wifi-disconnected-25"
	WifiDisconnected50  Icon = "wifi-disconnected-50"
	WifiDisconnected75  Icon = "wifi-disconnected-75"
	WifiDisconnected100 Icon = "wifi-disconnected-100"

	CellularDisabled Icon = "cellular-disabled"
	Cellular0        Icon = "cellular-0"
	Cellular20       Icon = "cellular-20"
	Cellular40       Icon = "cellular-40"
	Cellular60       Icon = "cellular-60"
	Cellular80       Icon = "cellular-80"
	Cellular100      Icon = "cellular-100"

	Brightness          Icon = "brightness"
	Scale               Icon = "scale"
	FlashlightOn        Icon = "flashlight-on"
	FlashlightOff       Icon = "flashlight-off"
	OrientationLocked   Icon = "orientation-locked"
	OrientationUnlocked Icon = "orientation-unlocked"
	GpsOn               Icon = "gps-on"
	GpsOff              Icon = "gps-off"

	// Toggle button and slider backdrops.
	ButtonOn  Icon = "button-on"
	ButtonOff Icon = "button-off"
)

// Source returns the SVG document for an icon.
func Source(icon Icon) (string, error) {
	data, err := assets.ReadFile(fmt.Sprintf("assets/%s.svg", icon))
	if err != nil {
		return "", fmt.Errorf("unknown icon %q: %w", icon, err)
	}
	return string(data), nil
}
