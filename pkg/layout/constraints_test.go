package layout

import (
	"math"
	"testing"

	"github.com/go-drift/mathview/pkg/graphics"
)

func TestTightConstraints(t *testing.T) {
	c := Tight(graphics.Size{Width: 100, Height: 50})
	if !c.IsTight() {
		t.Error("Tight constraints should report IsTight")
	}
	got := c.Constrain(graphics.Size{Width: 1, Height: 1000})
	if got != (graphics.Size{Width: 100, Height: 50}) {
		t.Errorf("tight constrain produced %+v", got)
	}
}

func TestLooseConstrain(t *testing.T) {
	c := Loose(graphics.Size{Width: 100, Height: 50})
	if c.IsTight() {
		t.Error("Loose constraints should not be tight")
	}
	if got := c.Constrain(graphics.Size{Width: 200, Height: 20}); got != (graphics.Size{Width: 100, Height: 20}) {
		t.Errorf("loose constrain produced %+v", got)
	}
}

func TestUnboundedPassesSizesThrough(t *testing.T) {
	c := Unbounded()
	if got := c.ConstrainWidth(12345); got != 12345 {
		t.Errorf("unbounded width clamped to %v", got)
	}
	if c.IsTight() {
		t.Error("unbounded constraints must not be tight")
	}
}

func TestDeflate(t *testing.T) {
	c := Tight(graphics.Size{Width: 100, Height: 50}).Deflate(10, 4)
	if c.MaxWidth != 90 || c.MaxHeight != 46 {
		t.Errorf("unexpected deflated maxima %+v", c)
	}
	if c.MinWidth != 90 || c.MinHeight != 46 {
		t.Errorf("unexpected deflated minima %+v", c)
	}

	unbounded := Unbounded().Deflate(10, 10)
	if !math.IsInf(unbounded.MaxWidth, 1) {
		t.Error("deflating an unbounded axis should keep it unbounded")
	}
}
