package widgets

import (
	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
)

// Text displays a string of styled text.
//
// Lines are split on newlines by the graphics layouter. MaxLines,
// when positive, truncates the laid-out result to that many lines.
type Text struct {
	core.RenderObjectBase
	Content  string
	Style    graphics.TextStyle
	MaxLines int
}

func (t Text) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	r := &renderText{text: t.Content, style: t.Style, maxLines: t.MaxLines}
	r.SetSelf(r)
	return r
}

func (t Text) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if r, ok := renderObject.(*renderText); ok {
		r.update(t.Content, t.Style, t.MaxLines)
	}
}

type renderText struct {
	layout.RenderBoxBase
	text     string
	style    graphics.TextStyle
	maxLines int

	// cached measurement, invalidated when text or style changes
	textLayout *graphics.TextLayout
}

func (r *renderText) update(text string, style graphics.TextStyle, maxLines int) {
	if r.text == text && r.style == style && r.maxLines == maxLines {
		return
	}
	r.text = text
	r.style = style
	r.maxLines = maxLines
	r.textLayout = nil
	r.MarkNeedsLayout()
	r.MarkNeedsPaint()
}

func (r *renderText) layoutText() *graphics.TextLayout {
	if r.textLayout == nil {
		tl := graphics.LayoutText(r.text, r.style, nil)
		if r.maxLines > 0 && len(tl.Lines) > r.maxLines {
			tl.Lines = tl.Lines[:r.maxLines]
			width := 0.0
			for _, line := range tl.Lines {
				if line.Width > width {
					width = line.Width
				}
			}
			tl.Size = graphics.Size{Width: width, Height: float64(len(tl.Lines)) * tl.LineHeight}
		}
		r.textLayout = tl
	}
	return r.textLayout
}

func (r *renderText) PerformLayout() {
	tl := r.layoutText()
	r.SetSize(r.Constraints().Constrain(tl.Size))
}

func (r *renderText) Paint(ctx *layout.PaintContext) {
	tl := r.layoutText()
	y := 0.0
	for _, line := range tl.Lines {
		ctx.Canvas.DrawText(line.Text, graphics.Offset{X: 0, Y: y}, tl.Style)
		y += tl.LineHeight
	}
}
