package typeset

import (
	"math"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
)

// mathView is the render widget a boundary builds: it paints the
// fragment's flattened content with the boundary's visibility applied.
type mathView struct {
	core.RenderObjectBase
	fragment *Fragment
	revision uint64
	visible  bool
	inline   bool
	style    graphics.TextStyle
	onRender func(*renderMathView)
}

func (w mathView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	r := &renderMathView{
		fragment: w.fragment,
		revision: w.revision,
		visible:  w.visible,
		inline:   w.inline,
		style:    w.style,
	}
	r.SetSelf(r)
	if w.onRender != nil {
		w.onRender(r)
	}
	return r
}

func (w mathView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	r := renderObject.(*renderMathView)
	r.update(w.fragment, w.revision, w.visible, w.inline, w.style)
	if w.onRender != nil {
		w.onRender(r)
	}
}

// renderMathView is the boundary element the engine's output flows into.
// Hidden boundaries keep their size and skip painting, so a reveal never
// shifts surrounding layout.
type renderMathView struct {
	layout.RenderBoxBase
	fragment   *Fragment
	revision   uint64
	visible    bool
	inline     bool
	style      graphics.TextStyle
	textLayout *graphics.TextLayout
}

func (r *renderMathView) update(fragment *Fragment, revision uint64, visible, inline bool, style graphics.TextStyle) {
	if visible != r.visible {
		r.visible = visible
		r.MarkNeedsPaint()
	}
	if r.fragment == fragment && r.revision == revision && r.inline == inline && r.style == style {
		return
	}
	r.fragment = fragment
	r.revision = revision
	r.inline = inline
	r.style = style
	r.textLayout = nil
	r.MarkNeedsLayout()
	r.MarkNeedsPaint()
}

// contentChanged refreshes the cached layout after an engine pass
// mutated the fragment.
func (r *renderMathView) contentChanged() {
	if r.fragment != nil {
		r.revision = r.fragment.Revision()
	}
	r.textLayout = nil
	r.MarkNeedsLayout()
	r.MarkNeedsPaint()
}

// setVisible flips paint-time visibility without touching layout.
func (r *renderMathView) setVisible(visible bool) {
	if r.visible == visible {
		return
	}
	r.visible = visible
	r.MarkNeedsPaint()
}

func (r *renderMathView) contentLayout() *graphics.TextLayout {
	if r.textLayout == nil {
		text := ""
		if r.fragment != nil {
			text = r.fragment.PlainText()
		}
		r.textLayout = graphics.LayoutText(text, r.style, nil)
	}
	return r.textLayout
}

func (r *renderMathView) PerformLayout() {
	tl := r.contentLayout()
	size := tl.Size
	c := r.Constraints()
	// Display math claims the full available width so lines can center.
	if !r.inline && !math.IsInf(c.MaxWidth, 1) {
		size.Width = math.Max(size.Width, c.MaxWidth)
	}
	r.SetSize(c.Constrain(size))
}

func (r *renderMathView) Paint(ctx *layout.PaintContext) {
	if !r.visible {
		return
	}
	tl := r.contentLayout()
	y := 0.0
	for _, line := range tl.Lines {
		x := 0.0
		if !r.inline {
			if dx := (r.Size().Width - line.Width) / 2; dx > 0 {
				x = dx
			}
		}
		ctx.Canvas.DrawText(line.Text, graphics.Offset{X: x, Y: y}, tl.Style)
		y += tl.LineHeight
	}
}
