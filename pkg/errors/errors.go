// Package errors provides structured error handling for mathview.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration error.
	KindConfig
	// KindEngine indicates a typesetting engine failure.
	KindEngine
	// KindInit indicates an initialization error.
	KindInit
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindBuild indicates a build-time widget error.
	KindBuild
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindEngine:
		return "engine"
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindBuild:
		return "build"
	default:
		return "unknown"
	}
}

// ViewError represents a structured error in the mathview framework.
type ViewError struct {
	// Op is the operation that failed (e.g., "typeset.Provider.load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ViewError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ViewError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "driver.Pump").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BuildError represents a failure during a framework pipeline phase.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type (StatelessElement, StatefulElement, etc.).
	Element string
	// Phase is the pipeline phase that failed ("build", "layout", "paint", "dispatch").
	Phase string
	// Recovered is the recovered panic value when it was not an error.
	Recovered any
	// Err is the underlying cause. Error-typed panics land here so
	// errors.Is and errors.As reach the original value.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	phase := e.Phase
	if phase == "" {
		phase = "build"
	}
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s during %s: %v", e.Widget, phase, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s during %s: %v", e.Widget, phase, e.Err)
	}
	return fmt.Sprintf("unknown error in %s during %s", e.Widget, phase)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ViewError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a widget build fails.
	HandleBuildError(err *BuildError)
}
