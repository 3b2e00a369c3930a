package layout

import (
	"github.com/go-drift/mathview/pkg/graphics"
)

// PaintContext provides the canvas for painting render objects.
type PaintContext struct {
	Canvas graphics.Canvas
}

// PaintChild paints a child render object at the given offset.
func (p *PaintContext) PaintChild(child RenderObject, offset graphics.Offset) {
	if child == nil {
		return
	}
	p.Canvas.Save()
	p.Canvas.Translate(offset.X, offset.Y)
	child.Paint(p)
	p.Canvas.Restore()
	if clearer, ok := child.(interface{ ClearNeedsPaint() }); ok {
		clearer.ClearNeedsPaint()
	}
}

// PaintRoot records one frame from the root render object and returns the
// resulting display list.
func PaintRoot(root RenderObject, size graphics.Size) *graphics.DisplayList {
	var recorder graphics.PictureRecorder
	canvas := recorder.BeginRecording(size)
	ctx := &PaintContext{Canvas: canvas}
	ctx.PaintChild(root, graphics.Offset{})
	return recorder.EndRecording()
}
