package core

import "reflect"

// InheritedProvider exposes a value to descendant widgets without a custom
// inherited widget type. Descendants read it with [ProviderOf]:
//
//	core.InheritedProvider[*Session]{
//	    Value: session,
//	    Child: app,
//	}
//
// Dependents are notified when Value changes between builds. For aspect-based
// partial notification, implement [AspectAwareInheritedWidget] directly.
type InheritedProvider[T any] struct {
	InheritedBase
	Value T
	Child Widget
}

// ChildWidget returns the wrapped subtree.
func (p InheritedProvider[T]) ChildWidget() Widget { return p.Child }

// UpdateShouldNotify reports whether Value changed since the old widget.
func (p InheritedProvider[T]) UpdateShouldNotify(old InheritedWidget) bool {
	prev, ok := old.(InheritedProvider[T])
	if !ok {
		return true
	}
	return !reflect.DeepEqual(p.Value, prev.Value)
}

// ProviderOf returns the value from the nearest enclosing
// [InheritedProvider] of type T and registers ctx as a dependent. The second
// return is false when no provider is in scope.
func ProviderOf[T any](ctx BuildContext) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v := ctx.DependOnInherited(reflect.TypeFor[InheritedProvider[T]](), nil)
	if v == nil {
		return zero, false
	}
	switch p := v.(type) {
	case InheritedProvider[T]:
		return p.Value, true
	case *InheritedProvider[T]:
		return p.Value, true
	}
	return zero, false
}
