package typeset

import (
	"fmt"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
	"github.com/go-drift/mathview/pkg/schedule"
	"github.com/go-drift/mathview/pkg/widgets"
)

// Math is the typeset boundary: one widget whose content the engine
// renders. In typeset ("post") mode the engine scans Content for
// delimited math and rewrites it in place; in convert ("pre") mode the
// engine runs Text through a named conversion function and the produced
// markup replaces the boundary's content.
//
// The boundary must sit below a [Provider]. Engine work is deferred to
// the dispatch queue and serialized per boundary: while a pass is in
// flight, new attempts are dropped silently until a later update.
type Math struct {
	core.StatefulBase

	// Text is the raw math source. Required in convert mode, where it is
	// cached so unchanged text does not reconvert.
	Text string
	// Content is the scannable text for typeset mode; the engine looks
	// for delimited math inside it.
	Content string
	// Inline lays the result out inline instead of as a centered block.
	Inline bool
	// Dynamic re-runs the engine on every qualifying update instead of
	// only once after mount.
	Dynamic bool
	// Hide overrides the scope's hide policy.
	Hide HidePolicy
	// Mode overrides the scope's render mode.
	Mode Mode
	// Conversion overrides the scope's conversion function for convert
	// mode.
	Conversion Conversion
	// OnFirstTypeset fires exactly once, when the first successful or
	// skipped pass completes.
	OnFirstTypeset func()
	// OnTypeset fires after every successful pass.
	OnTypeset func()
	// Style paints the flattened output.
	Style graphics.TextStyle
	// Padding insets the painted output.
	Padding layout.EdgeInsets
	// WidgetKey participates in reconciliation.
	WidgetKey any
}

// Key returns the reconciliation key.
func (m Math) Key() any { return m.WidgetKey }

// CreateState returns the boundary's state.
func (m Math) CreateState() core.State { return &mathState{} }

// mathState owns the boundary bookkeeping: the render object reference
// (nil before mount and after unmount), the in-flight latch, the cached
// last-converted text, the initial-load flag, and the hide state.
type mathState struct {
	core.StateBase

	render      *renderMathView
	fragment    *Fragment
	inFlight    bool
	lastText    string
	initialLoad bool
	hidden      bool
}

func (s *mathState) InitState() {
	widget := s.Element().Widget().(Math)
	s.fragment = NewFragment(widget.Content)
}

func (s *mathState) Dispose() {
	s.render = nil
	s.StateBase.Dispose()
}

// Build resolves the effective settings against the enclosing scope,
// applies the hide policy for this render, and defers a pass attempt to
// the dispatch queue when the update qualifies.
func (s *mathState) Build(ctx core.BuildContext) core.Widget {
	widget := s.Element().Widget().(Math)

	scope, ok := ScopeOf(ctx)
	if !ok || scope.Handle == nil {
		panic(&ConfigError{Op: "build", Reason: "boundary used outside provider scope"})
	}

	mode := scope.EffectiveMode(widget.Mode)
	hide := scope.EffectiveHide(widget.Hide)
	conversion := scope.EffectiveConversion(widget.Conversion)

	if mode == ModeTypeset {
		s.fragment.SetSource(widget.Content)
	}

	if !s.initialLoad && hide != HideNone {
		s.hidden = true
	} else if hide == HideEvery && widget.Dynamic && mode == ModeTypeset && !s.inFlight {
		// Hide only ahead of a pass that will actually start; attempts
		// dropped by the latch must not blank the boundary.
		s.hidden = true
	}

	if widget.Dynamic || !s.initialLoad {
		handle := scope.Handle
		schedule.Dispatch(func() {
			s.runPass(handle, widget, mode, hide, conversion)
		})
	}

	view := mathView{
		fragment: s.fragment,
		revision: s.fragment.Revision(),
		visible:  !s.hidden,
		inline:   widget.Inline,
		style:    widget.Style,
		onRender: s.attachRender,
	}
	if widget.Padding != (layout.EdgeInsets{}) {
		return widgets.Padded(widget.Padding, view)
	}
	return view
}

func (s *mathState) attachRender(r *renderMathView) {
	s.render = r
}

// runPass evaluates one deferred pass attempt. Validation runs before
// the latch so configuration errors never consume it; the equality skip
// for convert mode runs after validation so empty text still fails.
func (s *mathState) runPass(handle *Handle, widget Math, mode Mode, hide HidePolicy, conversion Conversion) {
	if s.render == nil || s.IsDisposed() {
		return
	}
	if s.inFlight {
		return
	}

	if mode == ModeConvert {
		if widget.Text == "" {
			panic(&ConfigError{Op: "convert", Reason: "conversion requires non-empty text"})
		}
		if conversion.Function == "" {
			panic(&ConfigError{Op: "convert", Reason: "no conversion function configured"})
		}
		if widget.Text == s.lastText {
			s.completeSkip(widget)
			return
		}
	}

	s.inFlight = true
	handle.WhenReady(func(engine Engine, err error) {
		if s.render == nil || s.IsDisposed() {
			return
		}
		if err == nil && engine == nil {
			err = fmt.Errorf("handle resolved without an engine")
		}
		if err != nil {
			s.completePass(widget, hide, &PassError{Op: "load", Err: err})
			return
		}
		if mode == ModeConvert {
			s.runConvert(engine, widget, hide, conversion)
			return
		}
		s.runTypeset(engine, widget, hide)
	})
}

func (s *mathState) runConvert(engine Engine, widget Math, hide HidePolicy, conversion Conversion) {
	if !SupportsConvert(engine) {
		s.inFlight = false
		panic(&ConfigError{
			Op:     "convert",
			Reason: fmt.Sprintf("conversion unsupported on engine version %s", engine.Version()),
		})
	}
	doc := engine.(DocumentEngine)
	doc.Convert(conversion.Function, widget.Text, conversion.Options).Then(func(markup string, err error) {
		if s.render == nil || s.IsDisposed() {
			return
		}
		if err != nil {
			s.completePass(widget, hide, &PassError{Op: "convert", Err: err})
			return
		}
		doc.ClearOutput()
		s.fragment.InjectOutput(markup)
		s.lastText = widget.Text
		s.render.contentChanged()
		s.completePass(widget, hide, nil)
	})
}

func (s *mathState) runTypeset(engine Engine, widget Math, hide HidePolicy) {
	runner, ok := runnerFor(engine)
	if !ok {
		s.inFlight = false
		panic(&ConfigError{
			Op:     "typeset",
			Reason: fmt.Sprintf("engine version %s exposes no typeset interface", engine.Version()),
		})
	}
	s.fragment.Restore()
	s.render.contentChanged()
	runner.run(s.fragment, func(err error) {
		if s.render == nil || s.IsDisposed() {
			return
		}
		if err != nil {
			s.completePass(widget, hide, &PassError{Op: "typeset", Err: err})
			return
		}
		s.render.contentChanged()
		s.completePass(widget, hide, nil)
	})
}

// completePass clears the latch and finishes a pass. Success reveals the
// boundary, marks the initial load, and fires the callbacks. Failure
// restores consistent state first (latch cleared, hide-every boundaries
// revealed so they are never left blank) and then surfaces the error;
// the initial load stays unconsumed so the next update retries.
func (s *mathState) completePass(widget Math, hide HidePolicy, passErr error) {
	s.inFlight = false
	if passErr != nil {
		if hide == HideEvery {
			s.reveal()
		}
		panic(passErr)
	}
	first := !s.initialLoad
	s.initialLoad = true
	s.reveal()
	if first && widget.OnFirstTypeset != nil {
		widget.OnFirstTypeset()
	}
	if widget.OnTypeset != nil {
		widget.OnTypeset()
	}
}

// completeSkip finishes an attempt that needed no engine call. The first
// skip still completes the initial load: reveal and init callback, but
// no per-pass callback.
func (s *mathState) completeSkip(widget Math) {
	if s.initialLoad {
		return
	}
	s.initialLoad = true
	s.reveal()
	if widget.OnFirstTypeset != nil {
		widget.OnFirstTypeset()
	}
}

func (s *mathState) reveal() {
	if !s.hidden {
		return
	}
	s.hidden = false
	if s.render != nil {
		s.render.setVisible(true)
	}
}
