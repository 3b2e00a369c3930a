package core

import "reflect"

// Widget is an immutable description of part of the UI. Widgets are cheap
// configuration values; the framework turns them into long-lived [Element]
// instances that track identity and state across rebuilds.
type Widget interface {
	// CreateElement returns a new element to host this widget.
	CreateElement() Element
	// Key identifies the widget for reconciliation. Widgets of the same type
	// with equal keys update in place; differing keys force a remount.
	// Return nil for no key.
	Key() any
}

// StatelessWidget builds its subtree purely from its configuration.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget owns mutable state that survives rebuilds.
type StatefulWidget interface {
	Widget
	// CreateState returns a fresh state object. Called once per element.
	CreateState() State
}

// State holds mutable data for a StatefulWidget and receives lifecycle
// callbacks from its element. Embed [StateBase] for default implementations.
type State interface {
	// InitState is called once after the state is attached to its element.
	InitState()
	// Build returns the widget subtree for the current state.
	Build(ctx BuildContext) Widget
	// DidChangeDependencies is called when an inherited widget this state
	// depends on changes.
	DidChangeDependencies()
	// DidUpdateWidget is called when the element receives a new widget of
	// the same type. The previous widget is passed for comparison.
	DidUpdateWidget(oldWidget StatefulWidget)
	// Dispose releases resources. Called when the element unmounts.
	Dispose()
}

// InheritedWidget propagates data down the tree. Descendants that read it
// via [BuildContext.DependOnInherited] are rebuilt when the data changes.
type InheritedWidget interface {
	Widget
	// ChildWidget returns the subtree below this provider.
	ChildWidget() Widget
	// UpdateShouldNotify reports whether dependents must be rebuilt after
	// the widget was replaced. Acts as a coarse gate before any per-dependent
	// aspect checks.
	UpdateShouldNotify(oldWidget InheritedWidget) bool
}

// AspectAwareInheritedWidget refines dependent notification per aspect set.
// Dependents that registered with specific aspects are only rebuilt when
// UpdateShouldNotifyDependent returns true for their aspects.
type AspectAwareInheritedWidget interface {
	InheritedWidget
	UpdateShouldNotifyDependent(oldWidget InheritedWidget, aspects map[any]struct{}) bool
}

// BuildContext gives build methods access to the element tree position.
type BuildContext interface {
	// Widget returns the widget configuration at this position.
	Widget() Widget
	// FindAncestor walks up the tree and returns the first element matching
	// the predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
	// DependOnInherited registers a dependency on the nearest inherited
	// widget of the given type and returns it, or nil if none is found.
	// A non-nil aspect enables granular notification.
	DependOnInherited(inheritedType reflect.Type, aspect any) any
	// DependOnInheritedWithAspects registers several aspects in one walk.
	DependOnInheritedWithAspects(inheritedType reflect.Type, aspects ...any) any
}

// Element is the instantiation of a widget at a particular tree location.
type Element interface {
	BuildContext
	// Mount attaches the element under parent at the given slot.
	Mount(parent Element, slot any)
	// Update replaces the widget configuration in place.
	Update(newWidget Widget)
	// Unmount detaches the element and disposes its resources.
	Unmount()
	// RebuildIfNeeded rebuilds the subtree if the element is dirty.
	RebuildIfNeeded()
	// MarkNeedsBuild schedules the element for rebuild on the next frame.
	MarkNeedsBuild()
	// Depth returns the distance from the root element.
	Depth() int
	// Slot returns the position identifier assigned by the parent.
	Slot() any
	// UpdateSlot moves the element to a new slot within its parent.
	UpdateSlot(newSlot any)
	// VisitChildren calls visitor for each child until it returns false.
	VisitChildren(visitor func(Element) bool)
}

// Disposable is anything that owns resources released via Dispose.
type Disposable interface {
	Dispose()
}

// Listenable is a value-less subscription source. AddListener returns an
// unsubscribe function.
type Listenable interface {
	AddListener(listener func()) func()
}

// MountRoot inflates a widget as the root of a new element tree.
// The returned element has no parent; pump frames through the owner's
// pipeline to build, lay out, and paint the tree.
func MountRoot(widget Widget, owner *BuildOwner) Element {
	element := inflateWidget(widget, owner)
	if element != nil {
		element.Mount(nil, nil)
	}
	return element
}
