package typeset

import (
	"reflect"

	"github.com/go-drift/mathview/pkg/core"
)

// Scope is the inherited widget a [Provider] places above its subtree. It
// exposes the engine handle plus the scope's default mode, hide policy,
// and conversion; [Math] boundaries resolve their effective settings
// against it.
type Scope struct {
	core.InheritedBase

	// Handle is the awaitable engine reference. Required.
	Handle *Handle
	// Mode is the default render mode for boundaries that leave their
	// own unset.
	Mode Mode
	// Hide is the default hide policy.
	Hide HidePolicy
	// Conversion is the default conversion for pre-mode boundaries.
	Conversion Conversion

	Child core.Widget
}

// ChildWidget returns the subtree below the scope.
func (s Scope) ChildWidget() core.Widget { return s.Child }

// UpdateShouldNotify reports whether dependents must rebuild: the handle
// identity or any default changed.
func (s Scope) UpdateShouldNotify(old core.InheritedWidget) bool {
	prev, ok := old.(Scope)
	if !ok {
		return true
	}
	return s.Handle != prev.Handle ||
		s.Mode != prev.Mode ||
		s.Hide != prev.Hide ||
		s.Conversion != prev.Conversion
}

var scopeType = reflect.TypeOf(Scope{})

// ScopeOf returns the nearest enclosing Scope, registering ctx as a
// dependent. ok is false outside any provider.
func ScopeOf(ctx core.BuildContext) (Scope, bool) {
	inherited := ctx.DependOnInherited(scopeType, nil)
	if inherited == nil {
		return Scope{}, false
	}
	s, ok := inherited.(Scope)
	return s, ok
}

// HandleOf returns the nearest scope's engine handle, nil outside any
// provider.
func HandleOf(ctx core.BuildContext) *Handle {
	s, ok := ScopeOf(ctx)
	if !ok {
		return nil
	}
	return s.Handle
}

// EffectiveMode resolves a boundary override against the scope default.
func (s Scope) EffectiveMode(override Mode) Mode {
	if override != ModeDefault {
		return override
	}
	if s.Mode != ModeDefault {
		return s.Mode
	}
	return ModeTypeset
}

// EffectiveHide resolves a boundary override against the scope default.
func (s Scope) EffectiveHide(override HidePolicy) HidePolicy {
	if override != HideDefault {
		return override
	}
	if s.Hide != HideDefault {
		return s.Hide
	}
	return HideNone
}

// EffectiveConversion resolves a boundary override against the scope
// default: an override naming a function wins wholesale.
func (s Scope) EffectiveConversion(override Conversion) Conversion {
	if override.Function != "" {
		return override
	}
	return s.Conversion
}
