package widgets

import (
	"reflect"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/errors"
)

// ErrorBoundary catches build errors thrown by its subtree and swaps in a
// fallback widget instead of letting the failure take down the whole tree.
//
// FallbackBuilder overrides the global error widget for this boundary only.
// OnError fires once per captured error before the fallback is shown.
type ErrorBoundary struct {
	core.StatefulBase
	ChildWidget     core.Widget
	FallbackBuilder core.ErrorWidgetBuilder
	OnError         func(err *errors.BuildError)
	WidgetKey       any
}

func (b ErrorBoundary) Key() any { return b.WidgetKey }

func (b ErrorBoundary) CreateState() core.State { return &ErrorBoundaryState{} }

// ErrorBoundaryState holds the captured error for a boundary and exposes
// Reset so recovery UI can retry the original subtree.
type ErrorBoundaryState struct {
	core.StateBase
	capturedError *errors.BuildError
}

func (s *ErrorBoundaryState) boundary() ErrorBoundary {
	if el := s.Element(); el != nil {
		if w, ok := el.Widget().(ErrorBoundary); ok {
			return w
		}
	}
	return ErrorBoundary{}
}

func (s *ErrorBoundaryState) Build(ctx core.BuildContext) core.Widget {
	boundary := s.boundary()
	if s.capturedError != nil {
		if boundary.FallbackBuilder != nil {
			if w := boundary.FallbackBuilder(s.capturedError); w != nil {
				return w
			}
		}
		if w := core.GetErrorWidgetBuilder()(s.capturedError); w != nil {
			return w
		}
		return ErrorWidget{Error: s.capturedError}
	}
	return errorBoundaryScope{state: s, child: boundary.ChildWidget}
}

// HasError reports whether the boundary is currently showing a fallback.
func (s *ErrorBoundaryState) HasError() bool { return s.capturedError != nil }

// Error returns the captured error, or nil.
func (s *ErrorBoundaryState) Error() *errors.BuildError { return s.capturedError }

// Reset clears the captured error and rebuilds the original subtree.
func (s *ErrorBoundaryState) Reset() {
	if s.capturedError == nil {
		return
	}
	s.SetState(func() { s.capturedError = nil })
}

// captureError records a descendant failure. Returns false when the boundary
// is already showing a fallback so the error escalates to an outer boundary.
func (s *ErrorBoundaryState) captureError(err *errors.BuildError) bool {
	if s.capturedError != nil {
		return false
	}
	boundary := s.boundary()
	if boundary.OnError != nil {
		boundary.OnError(err)
	}
	s.SetState(func() { s.capturedError = err })
	return true
}

// errorBoundaryScope marks the guarded subtree so descendants can locate
// the boundary and the element layer can route build errors to it.
type errorBoundaryScope struct {
	core.InheritedBase
	state *ErrorBoundaryState
	child core.Widget
}

func (s errorBoundaryScope) CreateElement() core.Element { return newErrorBoundaryScopeElement() }

func (s errorBoundaryScope) ChildWidget() core.Widget { return s.child }

func (s errorBoundaryScope) UpdateShouldNotify(old core.InheritedWidget) bool { return false }

func (s errorBoundaryScope) UpdateShouldNotifyDependent(old core.InheritedWidget, aspects map[any]struct{}) bool {
	return false
}

// errorBoundaryScopeElement wraps InheritedElement so the element in the
// parent chain implements core.ErrorBoundaryCapture.
type errorBoundaryScopeElement struct {
	*core.InheritedElement
}

func newErrorBoundaryScopeElement() *errorBoundaryScopeElement {
	return &errorBoundaryScopeElement{InheritedElement: core.NewInheritedElement()}
}

func (e *errorBoundaryScopeElement) Mount(parent core.Element, slot any) {
	e.MountWithSelf(parent, slot, e)
}

func (e *errorBoundaryScopeElement) RebuildIfNeeded() {
	e.RebuildIfNeededWithSelf(e)
}

// CaptureError implements core.ErrorBoundaryCapture.
func (e *errorBoundaryScopeElement) CaptureError(err *errors.BuildError) bool {
	scope, ok := e.Widget().(errorBoundaryScope)
	if !ok || scope.state == nil {
		return false
	}
	return scope.state.captureError(err)
}

var errorBoundaryScopeType = reflect.TypeOf(errorBoundaryScope{})

// ErrorBoundaryOf returns the state of the nearest enclosing ErrorBoundary,
// or nil when the context is not inside one.
func ErrorBoundaryOf(ctx core.BuildContext) *ErrorBoundaryState {
	if ctx == nil {
		return nil
	}
	w := ctx.DependOnInherited(errorBoundaryScopeType, nil)
	if scope, ok := w.(errorBoundaryScope); ok {
		return scope.state
	}
	return nil
}
