package widgets

import (
	"testing"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/errors"
)

type panicOnBuild struct {
	core.StatelessBase
}

func (panicOnBuild) Build(ctx core.BuildContext) core.Widget {
	panic("boom")
}

// flakyChild panics while *fail is set and renders text once cleared.
type flakyChild struct {
	core.StatelessBase
	fail   *bool
	builds *int
}

func (w flakyChild) Build(ctx core.BuildContext) core.Widget {
	*w.builds++
	if *w.fail {
		panic("transient failure")
	}
	return Text{Content: "recovered"}
}

func findText(root core.Element, content string) core.Element {
	var found core.Element
	var walk func(core.Element) bool
	walk = func(el core.Element) bool {
		if el == nil {
			return true
		}
		if text, ok := el.Widget().(Text); ok && text.Content == content {
			found = el
			return false
		}
		el.VisitChildren(walk)
		return found == nil
	}
	walk(root)
	return found
}

func TestErrorBoundary_CapturesBuildPanic(t *testing.T) {
	var captured *errors.BuildError
	owner := core.NewBuildOwner()
	root := core.MountRoot(ErrorBoundary{
		ChildWidget: panicOnBuild{},
		OnError:     func(err *errors.BuildError) { captured = err },
		FallbackBuilder: func(err *errors.BuildError) core.Widget {
			return Text{Content: "fallback"}
		},
	}, owner)
	owner.FlushBuild()

	if captured == nil {
		t.Fatal("OnError did not fire")
	}
	if captured.Phase != "build" {
		t.Errorf("Phase = %q, want build", captured.Phase)
	}
	if findText(root, "fallback") == nil {
		t.Error("fallback widget not in tree")
	}
}

func TestErrorBoundary_DefaultFallback(t *testing.T) {
	owner := core.NewBuildOwner()
	root := core.MountRoot(ErrorBoundary{ChildWidget: panicOnBuild{}}, owner)
	owner.FlushBuild()

	if findText(root, "Something went wrong") == nil {
		t.Error("default error widget not in tree")
	}
}

func TestErrorBoundary_ResetRebuildsSubtree(t *testing.T) {
	fail := true
	builds := 0
	var state *ErrorBoundaryState

	owner := core.NewBuildOwner()
	root := core.MountRoot(ErrorBoundary{
		ChildWidget: flakyChild{fail: &fail, builds: &builds},
		FallbackBuilder: func(err *errors.BuildError) core.Widget {
			return Text{Content: "fallback"}
		},
	}, owner)
	owner.FlushBuild()

	if findText(root, "fallback") == nil {
		t.Fatal("fallback not shown after failure")
	}

	// Locate the boundary state through the mounted stateful element.
	if stateful, ok := root.(interface{ State() core.State }); ok {
		state, _ = stateful.State().(*ErrorBoundaryState)
	}
	if state == nil {
		t.Fatal("boundary state not reachable")
	}
	if !state.HasError() {
		t.Fatal("HasError = false after capture")
	}

	fail = false
	state.Reset()
	owner.FlushBuild()

	if state.HasError() {
		t.Error("HasError = true after reset")
	}
	if findText(root, "recovered") == nil {
		t.Error("original subtree not rebuilt after reset")
	}
	if builds == 0 {
		t.Error("child never rebuilt")
	}
}

func TestErrorBoundary_HealthySubtreePassesThrough(t *testing.T) {
	owner := core.NewBuildOwner()
	root := core.MountRoot(ErrorBoundary{
		ChildWidget: Text{Content: "healthy"},
	}, owner)
	owner.FlushBuild()

	if findText(root, "healthy") == nil {
		t.Error("child widget not in tree")
	}
}

func TestErrorBoundaryOf_FindsNearestBoundary(t *testing.T) {
	var fromChild *ErrorBoundaryState

	probe := core.Stateless(func(ctx core.BuildContext) core.Widget {
		fromChild = ErrorBoundaryOf(ctx)
		return Text{Content: "probe"}
	})

	owner := core.NewBuildOwner()
	core.MountRoot(ErrorBoundary{ChildWidget: probe}, owner)
	owner.FlushBuild()

	if fromChild == nil {
		t.Fatal("ErrorBoundaryOf returned nil inside a boundary")
	}
	if fromChild.HasError() {
		t.Error("fresh boundary reports an error")
	}
}

func TestErrorBoundaryOf_NilOutsideBoundary(t *testing.T) {
	var fromChild *ErrorBoundaryState
	seen := false

	probe := core.Stateless(func(ctx core.BuildContext) core.Widget {
		fromChild = ErrorBoundaryOf(ctx)
		seen = true
		return Text{Content: "probe"}
	})

	owner := core.NewBuildOwner()
	core.MountRoot(probe, owner)
	owner.FlushBuild()

	if !seen {
		t.Fatal("probe never built")
	}
	if fromChild != nil {
		t.Error("ErrorBoundaryOf returned a boundary outside any")
	}
}
