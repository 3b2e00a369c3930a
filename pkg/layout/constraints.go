package layout

import (
	"math"

	"github.com/go-drift/mathview/pkg/graphics"
)

// Constraints describe the box constraints passed down during layout.
// A max of +Inf means unbounded in that axis.
type Constraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Unbounded returns constraints with no limits in either axis.
func Unbounded() Constraints {
	return Constraints{
		MaxWidth:  math.Inf(1),
		MaxHeight: math.Inf(1),
	}
}

// Tight returns constraints that force exactly the given size.
func Tight(size graphics.Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Loose returns constraints with zero minimums and the given maximums.
func Loose(size graphics.Size) Constraints {
	return Constraints{
		MaxWidth:  size.Width,
		MaxHeight: size.Height,
	}
}

// IsTight reports whether the constraints admit exactly one size.
func (c Constraints) IsTight() bool {
	return c.MinWidth == c.MaxWidth && c.MinHeight == c.MaxHeight
}

// Constrain clamps the given size into these constraints.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  c.ConstrainWidth(size.Width),
		Height: c.ConstrainHeight(size.Height),
	}
}

// ConstrainWidth clamps a width into the width constraints.
func (c Constraints) ConstrainWidth(width float64) float64 {
	return math.Min(math.Max(width, c.MinWidth), c.MaxWidth)
}

// ConstrainHeight clamps a height into the height constraints.
func (c Constraints) ConstrainHeight(height float64) float64 {
	return math.Min(math.Max(height, c.MinHeight), c.MaxHeight)
}

// Loosen returns a copy with zeroed minimums.
func (c Constraints) Loosen() Constraints {
	c.MinWidth = 0
	c.MinHeight = 0
	return c
}

// Deflate shrinks the constraints by a horizontal and vertical inset.
func (c Constraints) Deflate(horizontal, vertical float64) Constraints {
	deflated := Constraints{
		MinWidth:  math.Max(0, c.MinWidth-horizontal),
		MinHeight: math.Max(0, c.MinHeight-vertical),
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
	}
	if !math.IsInf(c.MaxWidth, 1) {
		deflated.MaxWidth = math.Max(0, c.MaxWidth-horizontal)
	}
	if !math.IsInf(c.MaxHeight, 1) {
		deflated.MaxHeight = math.Max(0, c.MaxHeight-vertical)
	}
	return deflated
}
