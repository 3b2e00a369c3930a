package widgets

import (
	"fmt"
	"math"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
)

// Axis is the direction a flex container lays out its children.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MainAxisAlignment controls how children are distributed along the main axis.
type MainAxisAlignment int

const (
	MainAxisAlignmentStart MainAxisAlignment = iota
	MainAxisAlignmentEnd
	MainAxisAlignmentCenter
	MainAxisAlignmentSpaceBetween
	MainAxisAlignmentSpaceAround
	MainAxisAlignmentSpaceEvenly
)

func (a MainAxisAlignment) String() string {
	switch a {
	case MainAxisAlignmentStart:
		return "start"
	case MainAxisAlignmentEnd:
		return "end"
	case MainAxisAlignmentCenter:
		return "center"
	case MainAxisAlignmentSpaceBetween:
		return "spaceBetween"
	case MainAxisAlignmentSpaceAround:
		return "spaceAround"
	case MainAxisAlignmentSpaceEvenly:
		return "spaceEvenly"
	default:
		return fmt.Sprintf("MainAxisAlignment(%d)", int(a))
	}
}

// CrossAxisAlignment controls how children are positioned across the main axis.
type CrossAxisAlignment int

const (
	CrossAxisAlignmentStart CrossAxisAlignment = iota
	CrossAxisAlignmentEnd
	CrossAxisAlignmentCenter
	CrossAxisAlignmentStretch
)

func (a CrossAxisAlignment) String() string {
	switch a {
	case CrossAxisAlignmentStart:
		return "start"
	case CrossAxisAlignmentEnd:
		return "end"
	case CrossAxisAlignmentCenter:
		return "center"
	case CrossAxisAlignmentStretch:
		return "stretch"
	default:
		return fmt.Sprintf("CrossAxisAlignment(%d)", int(a))
	}
}

// MainAxisSize controls whether a flex container fills the main axis or
// shrink-wraps its children.
type MainAxisSize int

const (
	MainAxisSizeMax MainAxisSize = iota
	MainAxisSizeMin
)

func (s MainAxisSize) String() string {
	switch s {
	case MainAxisSizeMax:
		return "max"
	case MainAxisSizeMin:
		return "min"
	default:
		return fmt.Sprintf("MainAxisSize(%d)", int(s))
	}
}

// Row lays out its children horizontally.
type Row struct {
	core.RenderObjectBase
	ChildrenWidgets    []core.Widget
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
	MainAxisSize       MainAxisSize
}

// RowOf builds a Row from a list of children with default alignment.
func RowOf(children ...core.Widget) Row {
	return Row{ChildrenWidgets: children}
}

func (r Row) Children() []core.Widget { return r.ChildrenWidgets }

func (r Row) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	obj := &renderFlex{
		direction:  AxisHorizontal,
		mainAlign:  r.MainAxisAlignment,
		crossAlign: r.CrossAxisAlignment,
		axisSize:   r.MainAxisSize,
	}
	obj.SetSelf(obj)
	return obj
}

func (r Row) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if flex, ok := renderObject.(*renderFlex); ok {
		flex.update(AxisHorizontal, r.MainAxisAlignment, r.CrossAxisAlignment, r.MainAxisSize)
	}
}

// Column lays out its children vertically.
type Column struct {
	core.RenderObjectBase
	ChildrenWidgets    []core.Widget
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
	MainAxisSize       MainAxisSize
}

// ColumnOf builds a Column from a list of children with default alignment.
func ColumnOf(children ...core.Widget) Column {
	return Column{ChildrenWidgets: children}
}

func (c Column) Children() []core.Widget { return c.ChildrenWidgets }

func (c Column) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	obj := &renderFlex{
		direction:  AxisVertical,
		mainAlign:  c.MainAxisAlignment,
		crossAlign: c.CrossAxisAlignment,
		axisSize:   c.MainAxisSize,
	}
	obj.SetSelf(obj)
	return obj
}

func (c Column) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if flex, ok := renderObject.(*renderFlex); ok {
		flex.update(AxisVertical, c.MainAxisAlignment, c.CrossAxisAlignment, c.MainAxisSize)
	}
}

// renderFlex lays out children sequentially along one axis. Children are
// always given loose constraints; there is no flex-factor distribution.
type renderFlex struct {
	layout.RenderBoxBase
	direction  Axis
	mainAlign  MainAxisAlignment
	crossAlign CrossAxisAlignment
	axisSize   MainAxisSize
	children   []layout.RenderObject
}

func (r *renderFlex) update(direction Axis, mainAlign MainAxisAlignment, crossAlign CrossAxisAlignment, axisSize MainAxisSize) {
	if r.direction == direction && r.mainAlign == mainAlign && r.crossAlign == crossAlign && r.axisSize == axisSize {
		return
	}
	r.direction = direction
	r.mainAlign = mainAlign
	r.crossAlign = crossAlign
	r.axisSize = axisSize
	r.MarkNeedsLayout()
	r.MarkNeedsPaint()
}

func (r *renderFlex) SetChildren(children []layout.RenderObject) {
	for _, child := range r.children {
		layout.SetParentOnChild(child, nil)
	}
	r.children = children
	for _, child := range r.children {
		layout.SetParentOnChild(child, r)
	}
	r.MarkNeedsLayout()
	r.MarkNeedsPaint()
}

func (r *renderFlex) VisitChildren(visit func(layout.RenderObject) bool) {
	for _, child := range r.children {
		if !visit(child) {
			return
		}
	}
}

func (r *renderFlex) mainAxis(size graphics.Size) float64 {
	if r.direction == AxisHorizontal {
		return size.Width
	}
	return size.Height
}

func (r *renderFlex) crossAxis(size graphics.Size) float64 {
	if r.direction == AxisHorizontal {
		return size.Height
	}
	return size.Width
}

func (r *renderFlex) makeSize(main, cross float64) graphics.Size {
	if r.direction == AxisHorizontal {
		return graphics.Size{Width: main, Height: cross}
	}
	return graphics.Size{Width: cross, Height: main}
}

func (r *renderFlex) makeOffset(main, cross float64) graphics.Offset {
	if r.direction == AxisHorizontal {
		return graphics.Offset{X: main, Y: cross}
	}
	return graphics.Offset{X: cross, Y: main}
}

// childConstraints loosens the incoming constraints, tightening the cross
// axis when alignment is stretch and the incoming bound is finite.
func (r *renderFlex) childConstraints(c layout.Constraints) layout.Constraints {
	loose := c.Loosen()
	if r.crossAlign != CrossAxisAlignmentStretch {
		return loose
	}
	if r.direction == AxisHorizontal {
		if !math.IsInf(c.MaxHeight, 1) {
			loose.MinHeight = c.MaxHeight
			loose.MaxHeight = c.MaxHeight
		}
	} else {
		if !math.IsInf(c.MaxWidth, 1) {
			loose.MinWidth = c.MaxWidth
			loose.MaxWidth = c.MaxWidth
		}
	}
	return loose
}

func (r *renderFlex) PerformLayout() {
	constraints := r.Constraints()
	maxExtent := graphics.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight}
	childConstraints := r.childConstraints(constraints)

	totalMain := 0.0
	crossExtent := 0.0
	for _, child := range r.children {
		child.Layout(childConstraints, true)
		size := child.Size()
		totalMain += r.mainAxis(size)
		if c := r.crossAxis(size); c > crossExtent {
			crossExtent = c
		}
	}

	finalMain := totalMain
	if r.axisSize == MainAxisSizeMax && !math.IsInf(r.mainAxis(maxExtent), 1) {
		finalMain = r.mainAxis(maxExtent)
	}
	if r.crossAlign == CrossAxisAlignmentStretch && !math.IsInf(r.crossAxis(maxExtent), 1) {
		crossExtent = r.crossAxis(maxExtent)
	}
	size := constraints.Constrain(r.makeSize(finalMain, crossExtent))
	r.SetSize(size)

	freeSpace := r.mainAxis(size) - totalMain
	if freeSpace < 0 {
		freeSpace = 0
	}
	leading, between := r.computeSpacing(freeSpace, len(r.children))
	position := leading
	for _, child := range r.children {
		childSize := child.Size()
		cross := r.crossAxisOffset(r.crossAxis(size), r.crossAxis(childSize))
		child.SetParentData(&layout.BoxParentData{Offset: r.makeOffset(position, cross)})
		position += r.mainAxis(childSize) + between
	}
}

func (r *renderFlex) computeSpacing(freeSpace float64, childCount int) (leading, between float64) {
	switch r.mainAlign {
	case MainAxisAlignmentEnd:
		return freeSpace, 0
	case MainAxisAlignmentCenter:
		return freeSpace / 2, 0
	case MainAxisAlignmentSpaceBetween:
		if childCount > 1 {
			return 0, freeSpace / float64(childCount-1)
		}
		return 0, 0
	case MainAxisAlignmentSpaceAround:
		if childCount > 0 {
			between = freeSpace / float64(childCount)
			return between / 2, between
		}
		return freeSpace / 2, 0
	case MainAxisAlignmentSpaceEvenly:
		if childCount > 0 {
			between = freeSpace / float64(childCount+1)
			return between, between
		}
		return freeSpace / 2, 0
	default:
		return 0, 0
	}
}

func (r *renderFlex) crossAxisOffset(extent, childExtent float64) float64 {
	switch r.crossAlign {
	case CrossAxisAlignmentEnd:
		return extent - childExtent
	case CrossAxisAlignmentCenter:
		return (extent - childExtent) / 2
	default:
		return 0
	}
}

func (r *renderFlex) Paint(ctx *layout.PaintContext) {
	for _, child := range r.children {
		ctx.PaintChild(child, getChildOffset(child))
	}
}
