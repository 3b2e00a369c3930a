package typeset

import (
	"github.com/go-drift/mathview/pkg/core"
)

// Provider owns engine acquisition for a subtree. Give it either a ready
// Engine or a Loader; the loader runs off the UI goroutine and resolves
// the scope's handle through the dispatch queue. Boundaries below find
// the engine through the inherited [Scope].
type Provider struct {
	core.StatefulBase

	// Engine is used directly when non-nil.
	Engine Engine
	// Loader produces the engine asynchronously when Engine is nil.
	Loader func() (Engine, error)
	// Config supplies scope defaults (mode, hide policy, conversion).
	Config *Config
	// OnLoad fires once the engine is ready.
	OnLoad func(Engine)
	// OnLoadError fires when the loader fails.
	OnLoadError func(error)

	Child core.Widget
}

// CreateState returns the provider's state.
func (p Provider) CreateState() core.State { return &providerState{} }

type providerState struct {
	core.StateBase
	handle *Handle
}

// InitState resolves or begins resolving the engine. Engine and Loader
// are read once at mount; swapping them on a later build does not
// re-resolve the handle.
func (s *providerState) InitState() {
	widget := s.Element().Widget().(Provider)
	s.handle = NewHandle()

	if widget.Engine != nil {
		s.handle.Resolve(widget.Engine, nil)
		if widget.OnLoad != nil {
			widget.OnLoad(widget.Engine)
		}
		return
	}
	if widget.Loader == nil {
		return
	}

	loader := widget.Loader
	onLoad := widget.OnLoad
	onError := widget.OnLoadError
	handle := s.handle
	go func() {
		engine, err := loader()
		dispatchOrRun(func() {
			if s.IsDisposed() {
				return
			}
			handle.Resolve(engine, err)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				return
			}
			if onLoad != nil {
				onLoad(engine)
			}
		})
	}()
}

// Build wraps the child in a [Scope] carrying the handle and config
// defaults. Config is re-read on every build, so defaults update live.
func (s *providerState) Build(ctx core.BuildContext) core.Widget {
	widget := s.Element().Widget().(Provider)
	scope := Scope{
		Handle: s.handle,
		Child:  widget.Child,
	}
	if cfg := widget.Config; cfg != nil {
		scope.Mode = cfg.RenderMode()
		scope.Hide = cfg.HideUntil()
		scope.Conversion = cfg.ConversionSpec()
	}
	return scope
}

// Handle exposes the scope handle for imperative access.
func (s *providerState) Handle() *Handle { return s.handle }
