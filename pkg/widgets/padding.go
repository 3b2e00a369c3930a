package widgets

import (
	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
)

// Padding insets its child by the given edge insets.
type Padding struct {
	core.RenderObjectBase
	Padding     layout.EdgeInsets
	ChildWidget core.Widget
}

func (p Padding) Child() core.Widget { return p.ChildWidget }

func (p Padding) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	r := &renderPadding{padding: p.Padding}
	r.SetSelf(r)
	return r
}

func (p Padding) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if r, ok := renderObject.(*renderPadding); ok && r.padding != p.Padding {
		r.padding = p.Padding
		r.MarkNeedsLayout()
		r.MarkNeedsPaint()
	}
}

type renderPadding struct {
	layout.RenderBoxBase
	padding layout.EdgeInsets
	child   layout.RenderObject
}

func (r *renderPadding) SetChild(child layout.RenderObject) {
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

func (r *renderPadding) VisitChildren(visit func(layout.RenderObject) bool) {
	if r.child != nil {
		visit(r.child)
	}
}

func (r *renderPadding) PerformLayout() {
	constraints := r.Constraints()
	if r.child == nil {
		r.SetSize(constraints.Constrain(graphics.Size{
			Width:  r.padding.Horizontal(),
			Height: r.padding.Vertical(),
		}))
		return
	}
	inner := constraints.Deflate(r.padding.Horizontal(), r.padding.Vertical())
	r.child.Layout(inner, true)
	r.child.SetParentData(&layout.BoxParentData{
		Offset: graphics.Offset{X: r.padding.Left, Y: r.padding.Top},
	})
	childSize := r.child.Size()
	r.SetSize(constraints.Constrain(graphics.Size{
		Width:  childSize.Width + r.padding.Horizontal(),
		Height: childSize.Height + r.padding.Vertical(),
	}))
}

func (r *renderPadding) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, getChildOffset(r.child))
	}
}
