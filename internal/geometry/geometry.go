// Package geometry provides 2D position and size value types shared by the
// panel, drawer and layout code.
//
// Touch input arrives in logical (pre-scale) coordinates while layout and
// hit-testing operate on physical pixels; conversions between the two are
// always explicit multiplications by the output scale factor, never implicit.
package geometry

import "math"

// Number covers the numeric representations positions and sizes are used
// with: integer physical pixels and floating point logical coordinates.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Position is a 2D point.
type Position[T Number] struct {
	X T
	Y T
}

// Pos is shorthand for constructing a Position.
func Pos[T Number](x, y T) Position[T] {
	return Position[T]{X: x, Y: y}
}

// Sub returns the component-wise difference p - o.
func (p Position[T]) Sub(o Position[T]) Position[T] {
	return Position[T]{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale multiplies both components by the given factor, rounding when the
// target representation is integral.
func (p Position[T]) Scale(factor float64) Position[T] {
	return Position[T]{
		X: scale(p.X, factor),
		Y: scale(p.Y, factor),
	}
}

// DistanceSquared returns the squared euclidean distance to o.
func (p Position[T]) DistanceSquared(o Position[T]) float64 {
	dx := float64(p.X) - float64(o.X)
	dy := float64(p.Y) - float64(o.Y)
	return dx*dx + dy*dy
}

// ConvertPosition changes the numeric representation of a position.
func ConvertPosition[U, T Number](p Position[T]) Position[U] {
	return Position[U]{X: U(p.X), Y: U(p.Y)}
}

// Size is a 2D extent. Both components are non-negative; the zero value
// means "not yet configured" and suppresses all rendering.
type Size[T Number] struct {
	Width  T
	Height T
}

// NewSize constructs a Size.
func NewSize[T Number](width, height T) Size[T] {
	return Size[T]{Width: width, Height: height}
}

// IsZero reports whether either dimension is zero.
func (s Size[T]) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// Scale multiplies both dimensions by the given factor, rounding when the
// target representation is integral.
func (s Size[T]) Scale(factor float64) Size[T] {
	return Size[T]{
		Width:  scale(s.Width, factor),
		Height: scale(s.Height, factor),
	}
}

// ConvertSize changes the numeric representation of a size.
func ConvertSize[U, T Number](s Size[T]) Size[U] {
	return Size[U]{Width: U(s.Width), Height: U(s.Height)}
}

func scale[T Number](v T, factor float64) T {
	scaled := float64(v) * factor
	switch any(v).(type) {
	case float32, float64:
		return T(scaled)
	default:
		return T(math.Round(scaled))
	}
}
