package layout

import "slices"

// PipelineOwner tracks render objects that need layout or paint.
//
// Layout scheduling works with relayout boundaries: when a node needs layout,
// MarkNeedsLayout walks up to the nearest boundary, marking each node along
// the way. The boundary gets scheduled here. During FlushLayoutForRoot, layout
// propagates from the root (or scheduled boundaries) down through all marked
// nodes.
type PipelineOwner struct {
	dirtyLayout    []RenderObject        // boundaries needing layout, processed depth-first
	dirtyLayoutSet map[RenderObject]bool // O(1) dedup check
	dirtyPaint     map[RenderObject]struct{}
	needsLayout    bool
	needsPaint     bool
}

// ScheduleLayout marks a relayout boundary as needing layout.
// Only relayout boundaries should be scheduled here; intermediate nodes
// are marked via MarkNeedsLayout but not scheduled directly.
func (p *PipelineOwner) ScheduleLayout(object RenderObject) {
	if p.dirtyLayoutSet == nil {
		p.dirtyLayoutSet = make(map[RenderObject]bool)
	}
	if p.dirtyLayoutSet[object] {
		return
	}
	p.dirtyLayoutSet[object] = true
	p.dirtyLayout = append(p.dirtyLayout, object)
	p.needsLayout = true
	p.needsPaint = true
}

// SchedulePaint marks a render object as needing paint.
func (p *PipelineOwner) SchedulePaint(object RenderObject) {
	if p.dirtyPaint == nil {
		p.dirtyPaint = make(map[RenderObject]struct{})
	}
	if _, exists := p.dirtyPaint[object]; exists {
		return
	}
	p.dirtyPaint[object] = struct{}{}
	p.needsPaint = true
}

// NeedsLayout reports if any render objects need layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports if any render objects need paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// FlushLayoutForRoot runs layout starting from the root.
//
// The frame sequence is FlushBuild, then FlushLayoutForRoot, then paint.
// Layout starts at the root with the frame constraints (the root is always
// a boundary) and propagates down; clean nodes with unchanged constraints
// skip layout entirely.
func (p *PipelineOwner) FlushLayoutForRoot(root RenderObject, constraints Constraints) {
	if !p.needsLayout || root == nil {
		return
	}

	root.Layout(constraints, false)

	// Boundaries scheduled during the pass (MarkNeedsLayout from inside
	// PerformLayout) still need processing.
	p.flushDirtyBoundaries()

	p.dirtyLayout = nil
	p.dirtyLayoutSet = nil
	p.needsLayout = false
}

// flushDirtyBoundaries processes scheduled boundaries in depth order.
//
// Parents first: if a parent and child are both scheduled, the parent's
// layout may clear the child's dirty flag as a side effect, skipping
// redundant work.
func (p *PipelineOwner) flushDirtyBoundaries() {
	for len(p.dirtyLayout) > 0 {
		slices.SortFunc(p.dirtyLayout, func(a, b RenderObject) int {
			return getDepth(a) - getDepth(b)
		})

		dirty := p.dirtyLayout
		p.dirtyLayout = nil
		p.dirtyLayoutSet = nil

		for _, node := range dirty {
			if layouter, ok := node.(interface {
				NeedsLayout() bool
				Constraints() Constraints
				Layout(Constraints, bool)
			}); ok {
				if layouter.NeedsLayout() {
					// Re-layout with cached constraints; boundaries do not
					// propagate size changes to their parents.
					layouter.Layout(layouter.Constraints(), false)
				}
			}
		}
	}
}

// getDepth returns the tree depth of a render object.
func getDepth(obj RenderObject) int {
	if getter, ok := obj.(interface{ Depth() int }); ok {
		return getter.Depth()
	}
	return 0
}

// FlushPaint clears paint bookkeeping and reports whether anything was dirty.
// The caller re-records the frame from the root when it returns true.
func (p *PipelineOwner) FlushPaint() bool {
	dirty := p.needsPaint
	p.dirtyPaint = nil
	p.needsPaint = false
	return dirty
}
