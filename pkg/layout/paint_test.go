package layout

import (
	"testing"

	"github.com/go-drift/mathview/pkg/graphics"
)

type testRenderBox struct {
	RenderBoxBase
	child       *testRenderBox
	paintCalls  int
	layoutCalls int
}

func (r *testRenderBox) PerformLayout() {
	r.layoutCalls++
	if r.child != nil {
		r.child.Layout(r.Constraints().Loosen(), true)
	}
	r.SetSize(r.Constraints().Constrain(graphics.Size{Width: 10, Height: 10}))
}

func (r *testRenderBox) Paint(ctx *PaintContext) {
	r.paintCalls++
	if r.child != nil {
		ctx.PaintChild(r.child, graphics.Offset{X: 1, Y: 1})
	}
}

func newTestTree(owner *PipelineOwner) (root, child *testRenderBox) {
	child = &testRenderBox{}
	child.SetSelf(child)
	child.SetOwner(owner)

	root = &testRenderBox{child: child}
	root.SetSelf(root)
	root.SetOwner(owner)
	SetParentOnChild(child, root)

	// Mirror what the frame driver does after mounting a fresh tree.
	owner.ScheduleLayout(root)
	owner.SchedulePaint(root)
	return root, child
}

func TestPaintChildPaintsAndClearsFlag(t *testing.T) {
	child := &testRenderBox{}
	child.SetSelf(child)

	recorder := &graphics.PictureRecorder{}
	ctx := &PaintContext{Canvas: recorder.BeginRecording(graphics.Size{Width: 10, Height: 10})}
	ctx.PaintChild(child, graphics.Offset{X: 5, Y: 5})

	if child.paintCalls != 1 {
		t.Fatalf("expected one paint call, got %d", child.paintCalls)
	}
	if child.NeedsPaint() {
		t.Error("paint flag should be cleared after painting")
	}
}

func TestPaintRootRecordsDisplayList(t *testing.T) {
	owner := &PipelineOwner{}
	root, _ := newTestTree(owner)
	owner.FlushLayoutForRoot(root, Tight(graphics.Size{Width: 100, Height: 100}))

	list := PaintRoot(root, graphics.Size{Width: 100, Height: 100})
	if list.OpCount() == 0 {
		t.Error("expected recorded ops for the tree")
	}
	if list.Size() != (graphics.Size{Width: 100, Height: 100}) {
		t.Errorf("unexpected display list size %+v", list.Size())
	}
}

func TestMarkNeedsLayoutSchedulesBoundary(t *testing.T) {
	owner := &PipelineOwner{}
	root, child := newTestTree(owner)

	owner.FlushLayoutForRoot(root, Tight(graphics.Size{Width: 100, Height: 100}))
	if owner.NeedsLayout() {
		t.Fatal("flush should clear the layout flag")
	}
	rootLayouts := root.layoutCalls

	// Child received loose constraints with parentUsesSize, so the dirty
	// walk must propagate up to the root boundary.
	child.MarkNeedsLayout()
	if !owner.NeedsLayout() {
		t.Fatal("expected pending layout after marking child")
	}
	if !root.NeedsLayout() {
		t.Error("dirty walk should mark the root")
	}

	owner.FlushLayoutForRoot(root, Tight(graphics.Size{Width: 100, Height: 100}))
	if root.layoutCalls != rootLayouts+1 {
		t.Errorf("expected one more root layout, got %d", root.layoutCalls-rootLayouts)
	}
	if child.NeedsLayout() {
		t.Error("child should be clean after flush")
	}
}

func TestCleanSubtreeSkipsLayout(t *testing.T) {
	owner := &PipelineOwner{}
	root, child := newTestTree(owner)

	constraints := Tight(graphics.Size{Width: 100, Height: 100})
	owner.FlushLayoutForRoot(root, constraints)
	childLayouts := child.layoutCalls

	// Same constraints, nothing dirty: Layout must not re-run PerformLayout.
	root.Layout(constraints, false)
	if child.layoutCalls != childLayouts {
		t.Errorf("clean child re-laid out %d extra times", child.layoutCalls-childLayouts)
	}
}

func TestMarkNeedsPaintReachesPipeline(t *testing.T) {
	owner := &PipelineOwner{}
	root, child := newTestTree(owner)
	owner.FlushLayoutForRoot(root, Tight(graphics.Size{Width: 100, Height: 100}))
	PaintRoot(root, graphics.Size{Width: 100, Height: 100})
	owner.FlushPaint()

	child.MarkNeedsPaint()
	if !owner.NeedsPaint() {
		t.Error("paint dirt should reach the pipeline owner")
	}
	if !root.NeedsPaint() {
		t.Error("paint dirt should walk up to the root")
	}
	if !owner.FlushPaint() {
		t.Error("FlushPaint should report dirty state")
	}
	if owner.NeedsPaint() {
		t.Error("FlushPaint should clear the flag")
	}
}
