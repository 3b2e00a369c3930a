package layout

import (
	"github.com/go-drift/mathview/pkg/graphics"
)

// RenderObject handles layout and painting.
type RenderObject interface {
	Layout(constraints Constraints, parentUsesSize bool)
	Size() graphics.Size
	Paint(ctx *PaintContext)
	ParentData() any
	SetParentData(data any)
	MarkNeedsLayout()
	MarkNeedsPaint()
	SetOwner(owner *PipelineOwner)
}

// BoxParentData stores the offset for a child in a box layout.
type BoxParentData struct {
	Offset graphics.Offset
}

// RenderBoxBase provides base behavior for render boxes.
type RenderBoxBase struct {
	size             graphics.Size
	parentData       any
	owner            *PipelineOwner
	self             RenderObject
	parent           RenderObject // parent reference for tree walking
	depth            int          // tree depth (root = 0)
	relayoutBoundary RenderObject // cached nearest relayout boundary
	needsLayout      bool         // local dirty flag
	constraints      Constraints  // last received constraints
	needsPaint       bool         // local dirty flag for paint
}

// Size returns the current size of the render box.
func (r *RenderBoxBase) Size() graphics.Size {
	return r.size
}

// SetSize updates the render box size.
// A changed size marks paint dirty since the content must be re-recorded.
func (r *RenderBoxBase) SetSize(size graphics.Size) {
	if r.size == size {
		return
	}
	r.size = size
	r.MarkNeedsPaint()
}

// ParentData returns the parent-assigned data for this render box.
func (r *RenderBoxBase) ParentData() any {
	return r.parentData
}

// SetParentData assigns parent-controlled data to this render box.
// A changed offset marks the parent for repaint since the recorded child
// position becomes stale.
func (r *RenderBoxBase) SetParentData(data any) {
	if newData, ok := data.(*BoxParentData); ok {
		oldData, hadOldData := r.parentData.(*BoxParentData)
		if (!hadOldData || oldData.Offset != newData.Offset) && r.parent != nil {
			r.parent.MarkNeedsPaint()
		}
	}
	r.parentData = data
}

// MarkNeedsLayout marks this render box as needing layout.
//
// When a node needs layout the walk goes up the tree marking each node until
// it reaches a relayout boundary, which gets scheduled. During the next flush
// all marked nodes rerun PerformLayout because their needsLayout flag is set,
// so a change in a deep descendant propagates from the boundary down through
// every intermediate node.
func (r *RenderBoxBase) MarkNeedsLayout() {
	if r.needsLayout {
		return
	}
	r.needsLayout = true

	if r.owner == nil || r.self == nil {
		return
	}

	if r.relayoutBoundary == r.self {
		r.owner.ScheduleLayout(r.self)
		return
	}

	if r.parent != nil {
		r.parent.MarkNeedsLayout()
		return
	}

	// No parent and not a boundary: the tree is still being connected.
	// Schedule self so the node is laid out once an owner flushes.
	r.owner.ScheduleLayout(r.self)
}

// MarkNeedsPaint marks this render box as needing paint.
//
// The dirty flag walks up to the root; painting always re-records from the
// root. SetSelf pre-sets needsPaint without scheduling, so this method never
// early-returns on an already-set flag; SchedulePaint deduplicates.
func (r *RenderBoxBase) MarkNeedsPaint() {
	r.needsPaint = true

	if r.owner == nil || r.self == nil {
		return
	}

	if r.parent != nil {
		r.parent.MarkNeedsPaint()
		return
	}

	r.owner.SchedulePaint(r.self)
}

// SetOwner assigns the pipeline owner for scheduling layout and paint.
func (r *RenderBoxBase) SetOwner(owner *PipelineOwner) {
	r.owner = owner
}

// SetSelf registers the concrete render object for scheduling.
func (r *RenderBoxBase) SetSelf(self RenderObject) {
	r.self = self
	r.needsLayout = true // new render objects always need initial layout
	r.needsPaint = true  // new render objects always need initial paint
}

// Self returns the concrete render object registered via SetSelf.
func (r *RenderBoxBase) Self() RenderObject {
	return r.self
}

// Parent returns the parent render object.
func (r *RenderBoxBase) Parent() RenderObject {
	return r.parent
}

// SetParent sets the parent render object and computes depth.
// Clears the cached relayout boundary and constraints so a reparented
// object does not carry stale references from the old subtree.
func (r *RenderBoxBase) SetParent(parent RenderObject) {
	if r.parent == parent {
		return
	}
	oldParent := r.parent
	r.parent = parent
	if parent == nil {
		r.depth = 0
	} else if getter, ok := parent.(interface{ Depth() int }); ok {
		r.depth = getter.Depth() + 1
	} else {
		r.depth = 1
	}
	r.relayoutBoundary = nil
	r.constraints = Constraints{}
	r.needsLayout = true
	r.needsPaint = true

	if oldParent != nil {
		oldParent.MarkNeedsPaint()
	}
	if parent != nil {
		parent.MarkNeedsPaint()
	}
}

// Depth returns the tree depth (root = 0).
func (r *RenderBoxBase) Depth() int {
	return r.depth
}

// RelayoutBoundary returns the cached nearest relayout boundary.
func (r *RenderBoxBase) RelayoutBoundary() RenderObject {
	return r.relayoutBoundary
}

// NeedsLayout returns true if this render box needs layout.
func (r *RenderBoxBase) NeedsLayout() bool {
	return r.needsLayout
}

// Constraints returns the last received constraints.
func (r *RenderBoxBase) Constraints() Constraints {
	return r.constraints
}

// NeedsPaint returns true if this render box needs painting.
func (r *RenderBoxBase) NeedsPaint() bool {
	return r.needsPaint
}

// ClearNeedsPaint marks this render object as painted.
func (r *RenderBoxBase) ClearNeedsPaint() {
	r.needsPaint = false
}

// Layout handles boundary determination and delegates to PerformLayout.
//
// A node becomes a relayout boundary when it receives tight constraints,
// is the root, or the parent does not use its size. Boundaries contain
// layout changes: the dirty walk up stops there, so ancestors are not
// relaid out for a descendant-only change.
//
// Concrete render objects implement PerformLayout; the base handles the
// boundary bookkeeping, the clean-subtree skip, and the dirty flag.
func (r *RenderBoxBase) Layout(constraints Constraints, parentUsesSize bool) {
	shouldBeBoundary := constraints.IsTight() || r.parent == nil || !parentUsesSize

	if shouldBeBoundary {
		r.relayoutBoundary = r.self
	} else if r.parent != nil {
		if getter, ok := r.parent.(interface{ RelayoutBoundary() RenderObject }); ok {
			r.relayoutBoundary = getter.RelayoutBoundary()
		}
	}

	// Clean subtree with unchanged constraints: nothing to do.
	if !r.needsLayout && r.constraints == constraints {
		return
	}

	// Store constraints and clear the flag before PerformLayout so a child
	// marking us dirty during layout is caught next frame.
	r.constraints = constraints
	r.needsLayout = false

	if performer, ok := r.self.(interface{ PerformLayout() }); ok {
		performer.PerformLayout()
	}
}

// SetParentOnChild sets the parent reference on a child render object.
// It marks both the old and new parent as needing layout when the parent changes.
func SetParentOnChild(child, parent RenderObject) {
	if child == nil {
		return
	}
	getter, _ := child.(interface{ Parent() RenderObject })
	setter, ok := child.(interface{ SetParent(RenderObject) })
	if !ok {
		return
	}
	currentParent := RenderObject(nil)
	if getter != nil {
		currentParent = getter.Parent()
	}
	if currentParent == parent {
		return
	}
	setter.SetParent(parent)
	if currentParent != nil {
		currentParent.MarkNeedsLayout()
	}
	if parent != nil {
		parent.MarkNeedsLayout()
	}
}
