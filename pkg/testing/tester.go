package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/driver"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
)

const (
	// DefaultTestWidth is the default logical width of the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height of the test surface.
	DefaultTestHeight = 600
)

// ErrSettleTimeout is returned when PumpUntilSettled runs out of frames
// with work still pending.
var ErrSettleTimeout = errors.New("PumpUntilSettled: frame budget exhausted before the tree settled")

// WidgetTester drives widgets through real frames without a platform
// surface. It owns a [driver.Driver], so pumping here behaves exactly
// like production pumping: dispatch drain, build, layout, paint. Build
// panics land in the nearest error boundary; panics in any other phase
// are returned from Pump.
type WidgetTester struct {
	driver *driver.Driver
}

// NewWidgetTester creates a tester with the default surface size.
// Call Cleanup when done, or use NewWidgetTesterWithT.
func NewWidgetTester() *WidgetTester {
	return &WidgetTester{
		driver: driver.New(graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}),
	}
}

// NewWidgetTesterWithT creates a tester that unmounts itself via
// t.Cleanup. This is the recommended constructor.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree and disposes all state.
func (t *WidgetTester) Cleanup() {
	t.driver.Shutdown()
}

// SetSize resizes the test surface. Takes effect on the next pump.
func (t *WidgetTester) SetSize(size graphics.Size) {
	t.driver.Resize(size)
}

// PumpWidget mounts (or replaces) the root widget and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	t.driver.SetRoot(widget)
	return t.Pump()
}

// Pump runs a single frame. A panic in dispatch, layout, or paint is
// returned as the error; the tree stays usable for further pumps.
// Build panics do not surface here, they are contained by error
// boundaries.
func (t *WidgetTester) Pump() error {
	_, err := t.driver.Pump()
	return err
}

// PumpUntilSettled pumps frames until no work remains, up to maxFrames.
// Deferred engine passes and their completions land across frames, so
// settle after pumping a boundary.
func (t *WidgetTester) PumpUntilSettled(maxFrames int) error {
	for i := 0; i < maxFrames; i++ {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.driver.NeedsFrame() {
			return nil
		}
	}
	return ErrSettleTimeout
}

// Dispatch queues fn for the next pump's drain phase.
func (t *WidgetTester) Dispatch(fn func()) {
	t.driver.Dispatch(fn)
}

// NeedsFrame reports whether pending work would make another Pump do
// anything.
func (t *WidgetTester) NeedsFrame() bool {
	return t.driver.NeedsFrame()
}

// RootElement returns the root of the mounted element tree.
func (t *WidgetTester) RootElement() core.Element {
	return t.driver.Root()
}

// RootRenderObject returns the root render object.
func (t *WidgetTester) RootRenderObject() layout.RenderObject {
	return t.driver.RootRender()
}

// Frame returns the display list painted by the most recent pump, nil
// when the last pump painted nothing new.
func (t *WidgetTester) Frame() *graphics.DisplayList {
	return t.driver.Frame()
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	root := t.driver.Root()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(root),
		finder:   finder,
	}
}

// extractRenderObject walks from an element to its render object.
func extractRenderObject(e core.Element) layout.RenderObject {
	if e == nil {
		return nil
	}
	if ro, ok := e.(interface{ RenderObject() layout.RenderObject }); ok {
		return ro.RenderObject()
	}
	return nil
}
