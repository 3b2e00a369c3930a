package graphics

// Canvas is the drawing surface render objects paint onto.
//
// The only concrete implementation in this module is the recording canvas
// returned by [PictureRecorder.BeginRecording]; embedders replay the
// resulting [DisplayList] onto whatever surface they rasterize with.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	ClipRect(rect Rect)
	Clear(color Color)
	DrawRect(rect Rect, paint Paint)
	DrawLine(start, end Offset, paint Paint)
	DrawText(text string, offset Offset, style TextStyle)
}

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() Size {
	return d.size
}

// OpCount returns the number of recorded operations.
func (d *DisplayList) OpCount() int {
	return len(d.ops)
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas Canvas)
}

type recordingCanvas struct {
	recorder *PictureRecorder
}

func (c *recordingCanvas) Save() {
	c.recorder.append(opSave{})
}

func (c *recordingCanvas) Restore() {
	c.recorder.append(opRestore{})
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) ClipRect(rect Rect) {
	c.recorder.append(opClipRect{rect: rect})
}

func (c *recordingCanvas) Clear(color Color) {
	c.recorder.append(opClear{color: color})
}

func (c *recordingCanvas) DrawRect(rect Rect, paint Paint) {
	c.recorder.append(opRect{rect: rect, paint: paint})
}

func (c *recordingCanvas) DrawLine(start, end Offset, paint Paint) {
	c.recorder.append(opLine{start: start, end: end, paint: paint})
}

func (c *recordingCanvas) DrawText(text string, offset Offset, style TextStyle) {
	c.recorder.append(opText{text: text, offset: offset, style: style})
}

type opSave struct{}

func (o opSave) execute(canvas Canvas) { canvas.Save() }

type opRestore struct{}

func (o opRestore) execute(canvas Canvas) { canvas.Restore() }

type opTranslate struct {
	dx, dy float64
}

func (o opTranslate) execute(canvas Canvas) { canvas.Translate(o.dx, o.dy) }

type opClipRect struct {
	rect Rect
}

func (o opClipRect) execute(canvas Canvas) { canvas.ClipRect(o.rect) }

type opClear struct {
	color Color
}

func (o opClear) execute(canvas Canvas) { canvas.Clear(o.color) }

type opRect struct {
	rect  Rect
	paint Paint
}

func (o opRect) execute(canvas Canvas) { canvas.DrawRect(o.rect, o.paint) }

type opLine struct {
	start, end Offset
	paint      Paint
}

func (o opLine) execute(canvas Canvas) { canvas.DrawLine(o.start, o.end, o.paint) }

type opText struct {
	text   string
	offset Offset
	style  TextStyle
}

func (o opText) execute(canvas Canvas) { canvas.DrawText(o.text, o.offset, o.style) }
