// Package config provides shell configuration loaded from a YAML file and
// layered with environment variables. Values are hot-reloadable: consumers
// must re-read the snapshot for every decision that depends on one (for
// example the double-tap interval is read when the tap timer is armed, not
// cached at startup).
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full shell configuration.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Layout    LayoutConfig    `yaml:"layout"`
	Colors    ColorConfig     `yaml:"colors"`
	Animation AnimationConfig `yaml:"animation"`

	// Modules lists enabled modules in panel/drawer order. An empty list
	// enables the default set.
	Modules []string `yaml:"modules"`
}

// InputConfig holds touch input tuning.
type InputConfig struct {
	// MaxTapDistance is the square of the maximum travel in physical
	// pixels before touch input is considered a drag.
	MaxTapDistance float64 `yaml:"max_tap_distance"`

	// MultiTapInterval is the maximum time between taps to be considered
	// a double-tap.
	MultiTapInterval Duration `yaml:"multi_tap_interval"`
}

// LayoutConfig holds dimensions in logical pixels at scale factor 1.
type LayoutConfig struct {
	PanelHeight   int `yaml:"panel_height"`
	ModuleSize    int `yaml:"module_size"`
	SliderHeight  int `yaml:"slider_height"`
	ModulePadding int `yaml:"module_padding"`
	EdgePadding   int `yaml:"edge_padding"`
	IconHeight    int `yaml:"icon_height"`

	// PanelModuleWidth is the icon width for panel status modules.
	PanelModuleWidth int `yaml:"panel_module_width"`
	// PanelPadding separates panel modules from each other and the edges.
	PanelPadding int `yaml:"panel_padding"`
	// FontSize is the panel text size in logical pixels.
	FontSize float64 `yaml:"font_size"`
}

// ColorConfig holds the shell color scheme.
type ColorConfig struct {
	Background     Color `yaml:"background"`
	Foreground     Color `yaml:"foreground"`
	ModuleActive   Color `yaml:"module_active"`
	ModuleInactive Color `yaml:"module_inactive"`
	VolumeBG       Color `yaml:"volume_bg"`
	VolumeBadBG    Color `yaml:"volume_bad_bg"`
}

// AnimationConfig holds drawer animation tuning.
type AnimationConfig struct {
	// Threshold is the fraction of the full drawer height beyond which a
	// released opening drag completes instead of falling back.
	Threshold float64 `yaml:"threshold"`

	// StepRate is the animation speed in logical pixels per second.
	StepRate float64 `yaml:"step_rate"`

	// Interval is the time between animation ticks.
	Interval Duration `yaml:"interval"`
}

// DefaultModules is the module order used when the config lists none.
var DefaultModules = []string{
	"brightness", "scale", "date", "clock", "cellular", "wifi",
	"battery", "orientation", "flashlight", "gps", "volume",
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input: InputConfig{
			MaxTapDistance:   400,
			MultiTapInterval: Duration(200 * time.Millisecond),
		},
		Layout: LayoutConfig{
			PanelHeight:      20,
			ModuleSize:       64,
			SliderHeight:     48,
			ModulePadding:    16,
			EdgePadding:      24,
			IconHeight:       32,
			PanelModuleWidth: 20,
			PanelPadding:     5,
			FontSize:         12,
		},
		Colors: ColorConfig{
			Background:     Color{R: 24, G: 24, B: 24, A: 255},
			Foreground:     Color{R: 255, G: 255, B: 255, A: 255},
			ModuleActive:   Color{R: 85, G: 85, B: 85, A: 255},
			ModuleInactive: Color{R: 51, G: 51, B: 51, A: 255},
			VolumeBG:       Color{R: 117, G: 42, B: 42, A: 255},
			VolumeBadBG:    Color{R: 170, G: 0, B: 0, A: 255},
		},
		Animation: AnimationConfig{
			Threshold: 0.25,
			StepRate:  2400,
			Interval:  Duration(time.Second / 120),
		},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	if p := os.Getenv("EPITAPH_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "epitaph", "epitaph.yml")
}

// Load reads the config file at path, layering it over the defaults. A
// missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		applyEnv(&cfg)
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers environment overrides on top of the file. Environment
// variables always win.
func applyEnv(cfg *Config) {
	if v := os.Getenv("EPITAPH_MULTI_TAP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Input.MultiTapInterval = Duration(d)
		}
	}
	if v := os.Getenv("EPITAPH_MAX_TAP_DISTANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Input.MaxTapDistance = f
		}
	}
	if v := os.Getenv("EPITAPH_PANEL_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Layout.PanelHeight = n
		}
	}
}

// EnabledModules returns the configured module order, falling back to the
// default set.
func (c Config) EnabledModules() []string {
	if len(c.Modules) > 0 {
		return c.Modules
	}
	return DefaultModules
}

// Duration wraps time.Duration with YAML support for strings like "200ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Color wraps color.RGBA with YAML support for "#rrggbb" strings.
type Color color.RGBA

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("invalid color %q, expected #rrggbb", s)
	}
	n, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	*c = Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

// RGBA returns the color as a color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA(c)
}
