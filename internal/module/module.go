// Package module defines the capability interfaces implemented by status
// and control modules, and the registry that owns them.
package module

import (
	"context"
	"image/color"

	"github.com/catacombing/epitaph/internal/config"
	"github.com/catacombing/epitaph/internal/icons"
)

// Notifier is the one-way redraw capability handed to a module at
// initialization. Background data sources must only mutate their own
// module's state inside apply; the closure is executed on the shell's event
// loop and followed by an unstall of both windows.
type Notifier interface {
	Notify(apply func())
}

// Module is the base interface implemented by every module.
type Module interface {
	// ID returns a unique identifier for this module instance.
	ID() string

	// Init starts the module's background listeners, if any. The notifier
	// must be used for all state mutations after Init returns.
	Init(ctx context.Context, notifier Notifier) error

	// Stop shuts the module down, releasing any resources.
	Stop() error
}

// Alignment positions a panel module's content within the strip.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// ContentKind discriminates panel module content.
type ContentKind uint8

const (
	ContentText ContentKind = iota + 1
	ContentIcon
)

// Content is a render-ready panel module descriptor.
type Content struct {
	Kind ContentKind
	Text string
	Icon icons.Icon
}

// Text constructs text content.
func Text(s string) Content {
	return Content{Kind: ContentText, Text: s}
}

// IconContent constructs icon content.
func IconContent(icon icons.Icon) Content {
	return Content{Kind: ContentIcon, Icon: icon}
}

// PanelModule renders into the always-visible top strip.
type PanelModule interface {
	Module

	// Alignment returns the panel run this module belongs to.
	Alignment() Alignment

	// Content returns the render-ready panel content. Must not block.
	Content() Content
}

// Toggle is a drawer button module.
type Toggle interface {
	Module

	// Toggle flips the button state. Failures are logged by the caller;
	// the visual state updates optimistically regardless.
	Toggle() error

	// Enabled returns the button state.
	Enabled() bool

	// Icon returns the button icon for the current state.
	Icon() icons.Icon
}

// Slider is a drawer slider module.
type Slider interface {
	Module

	// SetValue updates the slider from a fractional position in [0, 1].
	SetValue(value float64) error

	// OnRelease is called when the driving touch lifts. Modules can use
	// it to debounce expensive writes until input settles.
	OnRelease() error

	// Value returns the current fractional value in [0, 1].
	Value() float64

	// Icon returns the slider icon.
	Icon() icons.Icon
}

// BackgroundModule tints part of the panel background to indicate activity
// between 0% and 100%.
type BackgroundModule interface {
	Module

	// Value returns the activity level in [0, 1].
	Value() float64

	// Color returns the tint color for the current level.
	Color(colors config.ColorConfig) color.RGBA
}

// ItemKind discriminates drawer items.
type ItemKind uint8

const (
	ItemToggle ItemKind = iota + 1
	ItemSlider
)

// Item is a drawer module as a closed tagged variant. The capability set is
// fixed, so dispatch sites can switch exhaustively on Kind.
type Item struct {
	Kind   ItemKind
	Toggle Toggle
	Slider Slider
}

// DrawerItem returns m's drawer capability, if it has one.
func DrawerItem(m Module) (Item, bool) {
	switch v := m.(type) {
	case Slider:
		return Item{Kind: ItemSlider, Slider: v}, true
	case Toggle:
		return Item{Kind: ItemToggle, Toggle: v}, true
	default:
		return Item{}, false
	}
}
