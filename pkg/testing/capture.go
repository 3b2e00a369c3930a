package testing

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-drift/mathview/pkg/graphics"
)

// TextOp is one recorded DrawText with the canvas translation applied,
// so positions are absolute within the frame.
type TextOp struct {
	Text     string
	Position graphics.Offset
	Style    graphics.TextStyle
}

// RectOp is one recorded DrawRect in absolute coordinates.
type RectOp struct {
	Rect  graphics.Rect
	Paint graphics.Paint
}

// LineOp is one recorded DrawLine in absolute coordinates.
type LineOp struct {
	Start graphics.Offset
	End   graphics.Offset
	Paint graphics.Paint
}

// FrameCapture is the flattened contents of one painted frame.
type FrameCapture struct {
	Size  graphics.Size
	Texts []TextOp
	Rects []RectOp
	Lines []LineOp
}

// CaptureFrame replays dl into a FrameCapture. A nil display list yields
// an empty capture, which every assertion treats as "nothing drawn".
func CaptureFrame(dl *graphics.DisplayList) *FrameCapture {
	capture := &FrameCapture{}
	if dl == nil {
		return capture
	}
	capture.Size = dl.Size()
	dl.Paint(&captureCanvas{capture: capture})
	return capture
}

// CaptureFrame flattens the most recently painted frame.
func (t *WidgetTester) CaptureFrame() *FrameCapture {
	return CaptureFrame(t.driver.Frame())
}

// TextStrings returns every drawn text in paint order.
func (f *FrameCapture) TextStrings() []string {
	out := make([]string, len(f.Texts))
	for i, op := range f.Texts {
		out[i] = op.Text
	}
	return out
}

// ContainsText reports whether any drawn text contains substring.
func (f *FrameCapture) ContainsText(substring string) bool {
	_, ok := f.FindText(substring)
	return ok
}

// FindText returns the first op whose text contains substring.
func (f *FrameCapture) FindText(substring string) (TextOp, bool) {
	for _, op := range f.Texts {
		if strings.Contains(op.Text, substring) {
			return op, true
		}
	}
	return TextOp{}, false
}

// String formats the capture one line per op, rects then lines then
// texts, each in paint order. Coordinates are rounded to two decimals so
// the output is stable for golden comparisons.
func (f *FrameCapture) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "frame %.0fx%.0f\n", f.Size.Width, f.Size.Height)
	for _, op := range f.Rects {
		fmt.Fprintf(&b, "rect (%v,%v)-(%v,%v) color=0x%08X\n",
			round2(op.Rect.Left), round2(op.Rect.Top), round2(op.Rect.Right), round2(op.Rect.Bottom), uint32(op.Paint.Color))
	}
	for _, op := range f.Lines {
		fmt.Fprintf(&b, "line (%v,%v)-(%v,%v)\n",
			round2(op.Start.X), round2(op.Start.Y), round2(op.End.X), round2(op.End.Y))
	}
	for _, op := range f.Texts {
		fmt.Fprintf(&b, "text %q @ (%v,%v)\n", op.Text, round2(op.Position.X), round2(op.Position.Y))
	}
	return b.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// captureCanvas implements graphics.Canvas, resolving the translation
// stack so recorded ops carry absolute positions.
type captureCanvas struct {
	capture *FrameCapture
	dx, dy  float64
	stack   []graphics.Offset
}

func (c *captureCanvas) Save() {
	c.stack = append(c.stack, graphics.Offset{X: c.dx, Y: c.dy})
}

func (c *captureCanvas) Restore() {
	if n := len(c.stack); n > 0 {
		top := c.stack[n-1]
		c.stack = c.stack[:n-1]
		c.dx, c.dy = top.X, top.Y
	}
}

func (c *captureCanvas) Translate(dx, dy float64) {
	c.dx += dx
	c.dy += dy
}

func (c *captureCanvas) ClipRect(graphics.Rect) {}

func (c *captureCanvas) Clear(graphics.Color) {}

func (c *captureCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.capture.Rects = append(c.capture.Rects, RectOp{
		Rect: graphics.Rect{
			Left:   rect.Left + c.dx,
			Top:    rect.Top + c.dy,
			Right:  rect.Right + c.dx,
			Bottom: rect.Bottom + c.dy,
		},
		Paint: paint,
	})
}

func (c *captureCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	c.capture.Lines = append(c.capture.Lines, LineOp{
		Start: graphics.Offset{X: start.X + c.dx, Y: start.Y + c.dy},
		End:   graphics.Offset{X: end.X + c.dx, Y: end.Y + c.dy},
		Paint: paint,
	})
}

func (c *captureCanvas) DrawText(text string, offset graphics.Offset, style graphics.TextStyle) {
	c.capture.Texts = append(c.capture.Texts, TextOp{
		Text:     text,
		Position: graphics.Offset{X: offset.X + c.dx, Y: offset.Y + c.dy},
		Style:    style,
	})
}
