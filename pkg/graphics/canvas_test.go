package graphics

import "testing"

// probeCanvas records which operations were replayed onto it.
type probeCanvas struct {
	calls []string
	texts []string
}

func (p *probeCanvas) Save()                 { p.calls = append(p.calls, "save") }
func (p *probeCanvas) Restore()              { p.calls = append(p.calls, "restore") }
func (p *probeCanvas) Translate(dx, dy float64) {
	p.calls = append(p.calls, "translate")
}
func (p *probeCanvas) ClipRect(rect Rect)  { p.calls = append(p.calls, "clip") }
func (p *probeCanvas) Clear(color Color)   { p.calls = append(p.calls, "clear") }
func (p *probeCanvas) DrawRect(rect Rect, paint Paint) {
	p.calls = append(p.calls, "rect")
}
func (p *probeCanvas) DrawLine(start, end Offset, paint Paint) {
	p.calls = append(p.calls, "line")
}
func (p *probeCanvas) DrawText(text string, offset Offset, style TextStyle) {
	p.calls = append(p.calls, "text")
	p.texts = append(p.texts, text)
}

func TestRecorderReplaysOpsInOrder(t *testing.T) {
	var recorder PictureRecorder
	canvas := recorder.BeginRecording(Size{Width: 100, Height: 50})

	canvas.Save()
	canvas.Translate(10, 5)
	canvas.DrawText("hello", Offset{}, TextStyle{})
	canvas.Restore()

	list := recorder.EndRecording()
	if list.OpCount() != 4 {
		t.Fatalf("expected 4 ops, got %d", list.OpCount())
	}
	if list.Size() != (Size{Width: 100, Height: 50}) {
		t.Errorf("unexpected recorded size %+v", list.Size())
	}

	probe := &probeCanvas{}
	list.Paint(probe)

	want := []string{"save", "translate", "text", "restore"}
	if len(probe.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(probe.calls))
	}
	for i, call := range want {
		if probe.calls[i] != call {
			t.Errorf("call %d: expected %q, got %q", i, call, probe.calls[i])
		}
	}
	if len(probe.texts) != 1 || probe.texts[0] != "hello" {
		t.Errorf("expected text op to carry 'hello', got %v", probe.texts)
	}
}

func TestRecorderIgnoresOpsAfterEnd(t *testing.T) {
	var recorder PictureRecorder
	canvas := recorder.BeginRecording(Size{Width: 10, Height: 10})
	canvas.DrawRect(RectFromLTWH(0, 0, 10, 10), Paint{Color: ColorBlack})
	first := recorder.EndRecording()

	canvas.DrawRect(RectFromLTWH(0, 0, 5, 5), Paint{Color: ColorRed})
	second := recorder.EndRecording()

	if first.OpCount() != 1 {
		t.Errorf("expected 1 op in first list, got %d", first.OpCount())
	}
	if second.OpCount() != 0 {
		t.Errorf("expected empty second list, got %d ops", second.OpCount())
	}
}

func TestRecorderResetsBetweenSessions(t *testing.T) {
	var recorder PictureRecorder

	canvas := recorder.BeginRecording(Size{Width: 10, Height: 10})
	canvas.DrawLine(Offset{}, Offset{X: 10}, Paint{})
	canvas.DrawLine(Offset{Y: 5}, Offset{X: 10, Y: 5}, Paint{})
	recorder.EndRecording()

	canvas = recorder.BeginRecording(Size{Width: 20, Height: 20})
	canvas.Clear(ColorWhite)
	list := recorder.EndRecording()

	if list.OpCount() != 1 {
		t.Errorf("expected fresh session with 1 op, got %d", list.OpCount())
	}
}
