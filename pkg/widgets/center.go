package widgets

import (
	"math"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
)

// Center expands to fill the available space and centers its child
// within it. Under unbounded constraints it shrink-wraps the child.
type Center struct {
	core.RenderObjectBase
	ChildWidget core.Widget
}

func (c Center) Child() core.Widget { return c.ChildWidget }

func (c Center) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	r := &renderCenter{}
	r.SetSelf(r)
	return r
}

func (c Center) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {}

type renderCenter struct {
	layout.RenderBoxBase
	child layout.RenderObject
}

func (r *renderCenter) SetChild(child layout.RenderObject) {
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

func (r *renderCenter) VisitChildren(visit func(layout.RenderObject) bool) {
	if r.child != nil {
		visit(r.child)
	}
}

func (r *renderCenter) PerformLayout() {
	constraints := r.Constraints()
	var childSize graphics.Size
	if r.child != nil {
		r.child.Layout(constraints.Loosen(), true)
		childSize = r.child.Size()
	}

	width := childSize.Width
	if !math.IsInf(constraints.MaxWidth, 1) {
		width = constraints.MaxWidth
	}
	height := childSize.Height
	if !math.IsInf(constraints.MaxHeight, 1) {
		height = constraints.MaxHeight
	}
	size := constraints.Constrain(graphics.Size{Width: width, Height: height})
	r.SetSize(size)

	if r.child != nil {
		r.child.SetParentData(&layout.BoxParentData{
			Offset: graphics.Offset{
				X: (size.Width - childSize.Width) / 2,
				Y: (size.Height - childSize.Height) / 2,
			},
		})
	}
}

func (r *renderCenter) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, getChildOffset(r.child))
	}
}
