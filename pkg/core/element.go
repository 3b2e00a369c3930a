package core

import (
	"reflect"
	"time"

	"github.com/go-drift/mathview/pkg/errors"
	"github.com/go-drift/mathview/pkg/layout"
)

type elementBase struct {
	widget       Widget
	parent       Element
	depth        int
	slot         any
	buildOwner   *BuildOwner
	dirty        bool
	self         Element
	mounted      bool
	renderParent *RenderObjectElement // nearest ancestor that owns a render object
}

func (e *elementBase) Widget() Widget {
	return e.widget
}

func (e *elementBase) Depth() int {
	return e.depth
}

func (e *elementBase) Slot() any {
	return e.slot
}

func (e *elementBase) UpdateSlot(newSlot any) {
	e.slot = newSlot
}

func (e *elementBase) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil && e.self != nil {
		e.buildOwner.ScheduleBuild(e.self)
	}
}

func (e *elementBase) parentElement() Element {
	return e.parent
}

func (e *elementBase) setSelf(self Element) {
	e.self = self
}

func (e *elementBase) setWidget(widget Widget) {
	e.widget = widget
}

func (e *elementBase) setBuildOwner(owner *BuildOwner) {
	e.buildOwner = owner
}

func (e *elementBase) isMounted() bool {
	return e.mounted
}

func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

func (e *elementBase) DependOnInherited(inheritedType reflect.Type, aspect any) any {
	return dependOnInheritedImpl(e.self, inheritedType, aspect)
}

func (e *elementBase) DependOnInheritedWithAspects(inheritedType reflect.Type, aspects ...any) any {
	return dependOnInheritedWithAspects(e.self, inheritedType, aspects...)
}

// findRenderParent walks up the element tree to find the nearest RenderObjectElement.
func (e *elementBase) findRenderParent() *RenderObjectElement {
	current := e.parent
	for current != nil {
		if roElement, ok := current.(*RenderObjectElement); ok {
			return roElement
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// safeBuild executes a build function with panic recovery.
// If the build panics, it reports the error and returns an error widget.
func (e *elementBase) safeBuild(buildFn func() Widget) Widget {
	var built Widget
	var buildErr *errors.BuildError

	func() {
		defer func() {
			if r := recover(); r != nil {
				buildErr = &errors.BuildError{
					Widget:     reflect.TypeOf(e.widget).String(),
					Element:    reflect.TypeOf(e.self).String(),
					Phase:      "build",
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
				if cause, ok := r.(error); ok {
					buildErr.Err = cause
				} else {
					buildErr.Recovered = r
				}
			}
		}()
		built = buildFn()
	}()

	if buildErr != nil {
		// Report to global error handler
		errors.ReportBuildError(buildErr)

		// Find nearest error boundary in ancestors
		if boundary := e.findErrorBoundary(); boundary != nil {
			boundary.CaptureError(buildErr)
			// Return nil to indicate the boundary will handle display
			return nil
		}

		// Use global fallback error widget builder
		if builder := GetErrorWidgetBuilder(); builder != nil {
			if errWidget := builder(buildErr); errWidget != nil {
				return errWidget
			}
		}

		// Final fallback: return a minimal placeholder widget
		return errorPlaceholder{err: buildErr}
	}
	return built
}

// findErrorBoundary searches ancestors for an error boundary.
func (e *elementBase) findErrorBoundary() ErrorBoundaryCapture {
	current := e.parent
	for current != nil {
		if capture, ok := current.(ErrorBoundaryCapture); ok {
			return capture
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// errorPlaceholder is a minimal fallback widget shown when build fails
// and no error widget builder is configured.
type errorPlaceholder struct {
	err *errors.BuildError
}

func (p errorPlaceholder) CreateElement() Element {
	return NewStatelessElement()
}

func (p errorPlaceholder) Key() any {
	return nil
}

func (p errorPlaceholder) Build(ctx BuildContext) Widget {
	// Return nil to render nothing - the error has been reported
	return nil
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	elementBase
	child Element
}

// NewStatelessElement creates a StatelessElement.
// The widget and build owner are set by the framework during inflation.
func NewStatelessElement() *StatelessElement {
	element := &StatelessElement{}
	element.setSelf(element)
	return element
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.renderParent = e.findRenderParent()
	e.mounted = true
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *StatelessElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *StatelessElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	widget := e.widget.(StatelessWidget)
	built := e.safeBuild(func() Widget {
		return widget.Build(e)
	})
	e.child = updateChild(e.child, built, e, e.buildOwner, nil)
}

func (e *StatelessElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// RenderObject returns the render object from the first render-object child.
func (e *StatelessElement) RenderObject() layout.RenderObject {
	if e.child == nil {
		return nil
	}
	if child, ok := e.child.(interface{ RenderObject() layout.RenderObject }); ok {
		return child.RenderObject()
	}
	return nil
}

// StatefulElement hosts a StatefulWidget and its State.
type StatefulElement struct {
	elementBase
	child Element
	state State
}

// NewStatefulElement creates a StatefulElement.
// The widget and build owner are set by the framework during inflation.
func NewStatefulElement() *StatefulElement {
	element := &StatefulElement{}
	element.setSelf(element)
	return element
}

// State returns the state object hosted by this element, or nil before Mount.
func (e *StatefulElement) State() State {
	return e.state
}

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.renderParent = e.findRenderParent()
	e.mounted = true
	widget := e.widget.(StatefulWidget)
	e.state = widget.CreateState()
	if setter, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		setter.SetElement(e)
	} else if setter, ok := e.state.(interface{ setElement(*StatefulElement) }); ok {
		setter.setElement(e)
	}
	e.state.InitState()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Update(newWidget Widget) {
	oldWidget := e.widget.(StatefulWidget)
	e.widget = newWidget
	e.state.DidUpdateWidget(oldWidget)
	e.MarkNeedsBuild()
}

func (e *StatefulElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if e.state != nil {
		e.state.Dispose()
	}
}

func (e *StatefulElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	built := e.safeBuild(func() Widget {
		return e.state.Build(e)
	})
	e.child = updateChild(e.child, built, e, e.buildOwner, nil)
}

func (e *StatefulElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// RenderObject returns the render object from the first render-object child.
func (e *StatefulElement) RenderObject() layout.RenderObject {
	if e.child == nil {
		return nil
	}
	if child, ok := e.child.(interface{ RenderObject() layout.RenderObject }); ok {
		return child.RenderObject()
	}
	return nil
}

// RenderObjectElement hosts a RenderObject and optional children.
type RenderObjectElement struct {
	elementBase
	renderObject layout.RenderObject
	children     []Element
}

// NewRenderObjectElement creates a RenderObjectElement.
// The widget and build owner are set by the framework during inflation.
func NewRenderObjectElement() *RenderObjectElement {
	element := &RenderObjectElement{}
	element.setSelf(element)
	return element
}

func (e *RenderObjectElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true

	// Create render object
	widget := e.widget.(RenderObjectWidget)
	e.renderObject = widget.CreateRenderObject(e)
	if e.buildOwner != nil && e.renderObject != nil {
		e.renderObject.SetOwner(e.buildOwner.Pipeline())
	}

	// Attach to render tree BEFORE building children
	e.attachRenderObject(slot)

	// Build children
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *RenderObjectElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *RenderObjectElement) Unmount() {
	e.mounted = false

	// Unmount children first (they detach their own render objects)
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil

	// Then detach our own render object
	e.detachRenderObject()
}

func (e *RenderObjectElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false

	widget := e.widget.(RenderObjectWidget)
	widget.UpdateRenderObject(e, e.renderObject)

	switch typed := e.widget.(type) {
	case interface{ Child() Widget }:
		childWidget := typed.Child()
		var child Element
		if len(e.children) > 0 {
			child = e.children[0]
		}
		child = updateChild(child, childWidget, e, e.buildOwner, nil)
		if child != nil {
			e.children = []Element{child}
		} else {
			e.children = nil
		}
		// NO SetChild call - attachment handled in child's Mount/Unmount

	case interface{ Children() []Widget }:
		all := typed.Children()
		widgets := make([]Widget, 0, len(all))
		for _, w := range all {
			if w != nil {
				widgets = append(widgets, w)
			}
		}
		e.children = updateChildren(e, e.children, widgets, e.buildOwner)
		// Rebuild render children list now that e.children is fully populated.
		// This is needed because insertRenderObjectChild only sets parent references
		// for multi-child render objects - it can't rebuild the list during child
		// mount since e.children isn't ready yet.
		e.rebuildChildrenRenderList()
	}
}

func (e *RenderObjectElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

// RenderObject exposes the backing render object for the element.
func (e *RenderObjectElement) RenderObject() layout.RenderObject {
	return e.renderObject
}

func (e *RenderObjectElement) parentElement() Element {
	return e.parent
}

// attachRenderObject attaches this element's render object to the render tree.
// Called from Mount after the render object is created.
func (e *RenderObjectElement) attachRenderObject(slot any) {
	e.renderParent = e.findRenderParent()
	if e.renderParent != nil {
		e.renderParent.insertRenderObjectChild(e.renderObject, slot)
	}
}

// detachRenderObject removes this element's render object from the render tree.
// Called from Unmount before the element is unmounted.
func (e *RenderObjectElement) detachRenderObject() {
	if e.renderParent != nil {
		e.renderParent.removeRenderObjectChild(e.renderObject, e.slot)
		e.renderParent = nil
	}
}

// insertRenderObjectChild adds a child render object at the given slot.
func (e *RenderObjectElement) insertRenderObjectChild(child layout.RenderObject, slot any) {
	if child == nil {
		return
	}
	// Set parent reference
	if setter, ok := child.(interface{ SetParent(layout.RenderObject) }); ok {
		setter.SetParent(e.renderObject)
	}
	// For single-child render objects, set the child directly
	if single, ok := e.renderObject.(interface{ SetChild(layout.RenderObject) }); ok {
		single.SetChild(child)
		return
	}
	// For multi-child: parent reference is set above; the children list will be
	// rebuilt by RebuildIfNeeded after all children are mounted and e.children
	// is fully populated.
}

// removeRenderObjectChild removes a child render object.
func (e *RenderObjectElement) removeRenderObjectChild(child layout.RenderObject, slot any) {
	if child == nil {
		return
	}
	if setter, ok := child.(interface{ SetParent(layout.RenderObject) }); ok {
		setter.SetParent(nil)
	}
	if single, ok := e.renderObject.(interface{ SetChild(layout.RenderObject) }); ok {
		single.SetChild(nil)
		return
	}
	e.rebuildChildrenRenderList()
}

// rebuildChildrenRenderList rebuilds render object children from element children.
func (e *RenderObjectElement) rebuildChildrenRenderList() {
	if multi, ok := e.renderObject.(interface{ SetChildren([]layout.RenderObject) }); ok {
		objects := make([]layout.RenderObject, 0, len(e.children))
		for _, child := range e.children {
			if roProvider, ok := child.(interface{ RenderObject() layout.RenderObject }); ok {
				if ro := roProvider.RenderObject(); ro != nil {
					objects = append(objects, ro)
				}
			}
		}
		multi.SetChildren(objects)
	}
}

// IndexedSlot identifies a child's position within a multi-child parent.
// PreviousSibling is the element mounted immediately before this one, used
// by render parents that maintain ordered child lists.
type IndexedSlot struct {
	Index           int
	PreviousSibling Element
}

// updateChild reconciles a single child element against a new widget.
// A nil widget unmounts the child. A widget that canUpdateWidget the existing
// child's widget updates it in place (moving it to slot if needed); otherwise
// the old child is unmounted and a fresh element is inflated and mounted.
func updateChild(existing Element, widget Widget, parent Element, owner *BuildOwner, slot any) Element {
	if widget == nil {
		if existing != nil {
			existing.Unmount()
		}
		return nil
	}
	if existing != nil && canUpdateWidget(existing.Widget(), widget) {
		existing.UpdateSlot(slot)
		existing.Update(widget)
		return existing
	}
	if existing != nil {
		existing.Unmount()
	}
	element := inflateWidget(widget, owner)
	element.Mount(parent, slot)
	return element
}

// updateChildren reconciles a multi-child element list against new widgets.
//
// The algorithm matches children in four passes: a forward scan over the
// leading run of in-place updatable pairs, a backward scan to find the
// trailing run, a keyed match over the middle region, and finally the
// deferred trailing-run sync once middle indices are settled. Old children
// that cannot be matched are unmounted.
func updateChildren(parent Element, oldChildren []Element, newWidgets []Widget, owner *BuildOwner) []Element {
	newChildren := make([]Element, len(newWidgets))
	var previousChild Element

	newTop, oldTop := 0, 0
	newBottom, oldBottom := len(newWidgets)-1, len(oldChildren)-1

	// Sync the leading run.
	for oldTop <= oldBottom && newTop <= newBottom {
		oldChild := oldChildren[oldTop]
		newWidget := newWidgets[newTop]
		if oldChild == nil || !canUpdateWidget(oldChild.Widget(), newWidget) {
			break
		}
		child := updateChild(oldChild, newWidget, parent, owner, IndexedSlot{Index: newTop, PreviousSibling: previousChild})
		newChildren[newTop] = child
		previousChild = child
		newTop++
		oldTop++
	}

	// Find the trailing run without updating yet; its final indices depend
	// on how the middle region resolves.
	for oldTop <= oldBottom && newTop <= newBottom {
		oldChild := oldChildren[oldBottom]
		newWidget := newWidgets[newBottom]
		if oldChild == nil || !canUpdateWidget(oldChild.Widget(), newWidget) {
			break
		}
		oldBottom--
		newBottom--
	}

	// Index the remaining old children by key. Children without a usable key
	// cannot be matched out of order and are unmounted here.
	haveOldChildren := oldTop <= oldBottom
	var oldKeyed map[any]Element
	if haveOldChildren {
		oldKeyed = make(map[any]Element)
		for ; oldTop <= oldBottom; oldTop++ {
			oldChild := oldChildren[oldTop]
			if oldChild == nil {
				continue
			}
			key := oldChild.Widget().Key()
			if key != nil && isComparable(key) {
				oldKeyed[key] = oldChild
			} else {
				oldChild.Unmount()
			}
		}
	}

	// Fill the middle region, reusing keyed matches where possible.
	for ; newTop <= newBottom; newTop++ {
		var oldChild Element
		newWidget := newWidgets[newTop]
		if haveOldChildren {
			if key := newWidget.Key(); key != nil && isComparable(key) {
				if match, ok := oldKeyed[key]; ok && canUpdateWidget(match.Widget(), newWidget) {
					oldChild = match
					delete(oldKeyed, key)
				}
			}
		}
		child := updateChild(oldChild, newWidget, parent, owner, IndexedSlot{Index: newTop, PreviousSibling: previousChild})
		newChildren[newTop] = child
		previousChild = child
	}

	// Sync the trailing run found earlier.
	newBottom = len(newWidgets) - 1
	oldBottom = len(oldChildren) - 1
	for oldTop <= oldBottom && newTop <= newBottom {
		child := updateChild(oldChildren[oldTop], newWidgets[newTop], parent, owner, IndexedSlot{Index: newTop, PreviousSibling: previousChild})
		newChildren[newTop] = child
		previousChild = child
		newTop++
		oldTop++
	}

	// Unmount keyed children that were never reused.
	for _, oldChild := range oldKeyed {
		oldChild.Unmount()
	}

	return newChildren
}

func canUpdateWidget(existing Widget, next Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return reflect.DeepEqual(existing.Key(), next.Key())
}

// isComparable reports whether the value can be used as a map key without
// panicking. Non-comparable keys (slices, maps, funcs) disable keyed matching
// for that child.
func isComparable(value any) bool {
	if value == nil {
		return true
	}
	return reflect.TypeOf(value).Comparable()
}

func inflateWidget(widget Widget, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	element := widget.CreateElement()
	if setter, ok := element.(interface{ setWidget(Widget) }); ok {
		setter.setWidget(widget)
	}
	if setter, ok := element.(interface{ setBuildOwner(*BuildOwner) }); ok {
		setter.setBuildOwner(owner)
	}
	if setter, ok := element.(interface{ setSelf(Element) }); ok {
		setter.setSelf(element)
	}
	return element
}
