package widgets

import (
	"math"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
)

// SizedBox forces a fixed width and/or height. A zero dimension is treated
// as unspecified and falls through to the child's preference or the
// incoming minimum.
type SizedBox struct {
	core.RenderObjectBase
	Width       float64
	Height      float64
	ChildWidget core.Widget
}

func (s SizedBox) Child() core.Widget { return s.ChildWidget }

func (s SizedBox) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	r := &renderSizedBox{width: s.Width, height: s.Height}
	r.SetSelf(r)
	return r
}

func (s SizedBox) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if r, ok := renderObject.(*renderSizedBox); ok && (r.width != s.Width || r.height != s.Height) {
		r.width = s.Width
		r.height = s.Height
		r.MarkNeedsLayout()
	}
}

type renderSizedBox struct {
	layout.RenderBoxBase
	width  float64
	height float64
	child  layout.RenderObject
}

func (r *renderSizedBox) SetChild(child layout.RenderObject) {
	if r.child == child {
		return
	}
	if r.child != nil {
		layout.SetParentOnChild(r.child, nil)
	}
	r.child = child
	if child != nil {
		layout.SetParentOnChild(child, r)
	}
	r.MarkNeedsLayout()
	r.MarkNeedsPaint()
}

func (r *renderSizedBox) VisitChildren(visit func(layout.RenderObject) bool) {
	if r.child != nil {
		visit(r.child)
	}
}

// sizeConstraints tightens the incoming constraints along any specified axis.
func (r *renderSizedBox) sizeConstraints(c layout.Constraints) layout.Constraints {
	out := c
	if r.width > 0 {
		w := math.Min(math.Max(r.width, c.MinWidth), c.MaxWidth)
		out.MinWidth = w
		out.MaxWidth = w
	}
	if r.height > 0 {
		h := math.Min(math.Max(r.height, c.MinHeight), c.MaxHeight)
		out.MinHeight = h
		out.MaxHeight = h
	}
	return out
}

func (r *renderSizedBox) PerformLayout() {
	constraints := r.sizeConstraints(r.Constraints())
	if r.child != nil {
		r.child.Layout(constraints, true)
		r.child.SetParentData(&layout.BoxParentData{})
		r.SetSize(r.child.Size())
		return
	}
	r.SetSize(constraints.Constrain(graphics.Size{Width: r.width, Height: r.height}))
}

func (r *renderSizedBox) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, getChildOffset(r.child))
	}
}
