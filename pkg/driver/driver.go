// Package driver runs the headless frame loop.
//
// A Driver owns the build owner, the render pipeline, and the dispatch
// queue. Each call to [Driver.Pump] runs one frame: queued dispatch
// callbacks, dirty builds, layout, and paint, producing a
// [graphics.DisplayList]. Panics from dispatched callbacks or pipeline
// phases are recovered and returned as errors rather than crashing the
// caller.
//
// The driver registers itself with [schedule] on creation, so leaf
// packages can defer work to the UI thread without importing this package.
package driver

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/errors"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
	"github.com/go-drift/mathview/pkg/schedule"
)

// Driver drives the widget tree through frames without a platform surface.
// All methods except Dispatch must be called from a single goroutine, the
// UI thread. Dispatch is safe from any goroutine.
type Driver struct {
	buildOwner *core.BuildOwner
	app        core.Widget
	root       core.Element
	rootRender layout.RenderObject
	size       graphics.Size
	lastFrame  *graphics.DisplayList

	dispatchMu    sync.Mutex
	dispatchQueue []func()

	framePending atomic.Bool
}

// New creates a driver rendering at the given logical size and registers
// it as the process-wide dispatcher and frame requester.
func New(size graphics.Size) *Driver {
	d := &Driver{
		buildOwner: core.NewBuildOwner(),
		size:       size,
	}
	d.buildOwner.OnNeedsFrame = d.requestFrame
	schedule.RegisterDispatcher(d.Dispatch)
	schedule.RegisterFrameRequester(d.requestFrame)
	return d
}

// SetRoot replaces the root widget. A mounted tree is unmounted first so
// state disposal runs; the new tree mounts on the next Pump.
func (d *Driver) SetRoot(widget core.Widget) {
	if d.root != nil {
		d.root.Unmount()
		d.root = nil
		d.rootRender = nil
	}
	d.app = widget
	d.framePending.Store(true)
}

// Resize changes the logical frame size. The tree is laid out against the
// new size on the next Pump.
func (d *Driver) Resize(size graphics.Size) {
	if d.size == size {
		return
	}
	d.size = size
	if d.rootRender != nil {
		d.rootRender.MarkNeedsLayout()
	}
	d.framePending.Store(true)
}

// Dispatch queues a callback for the start of the next frame.
// Safe to call from any goroutine.
func (d *Driver) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	d.dispatchMu.Lock()
	d.dispatchQueue = append(d.dispatchQueue, callback)
	d.dispatchMu.Unlock()
	d.framePending.Store(true)
}

func (d *Driver) requestFrame() {
	d.framePending.Store(true)
}

func (d *Driver) drainDispatchQueue() []func() {
	d.dispatchMu.Lock()
	callbacks := d.dispatchQueue
	d.dispatchQueue = nil
	d.dispatchMu.Unlock()
	return callbacks
}

// NeedsFrame reports whether another Pump would do work: queued dispatch
// callbacks, dirty elements, or pending layout or paint.
func (d *Driver) NeedsFrame() bool {
	if d.framePending.Load() {
		return true
	}
	d.dispatchMu.Lock()
	queued := len(d.dispatchQueue) > 0
	d.dispatchMu.Unlock()
	if queued {
		return true
	}
	return d.buildOwner.NeedsWork()
}

// Root returns the mounted root element, or nil before the first Pump.
func (d *Driver) Root() core.Element {
	return d.root
}

// RootRender returns the root render object, or nil before the first Pump.
func (d *Driver) RootRender() layout.RenderObject {
	return d.rootRender
}

// BuildOwner returns the driver's build owner.
func (d *Driver) BuildOwner() *core.BuildOwner {
	return d.buildOwner
}

// Frame returns the most recently recorded display list, which may be from
// an earlier Pump when nothing needed repainting.
func (d *Driver) Frame() *graphics.DisplayList {
	return d.lastFrame
}

// Pump runs one frame: drain dispatch callbacks, mount the root if needed,
// flush builds, layout, and paint. It returns the current display list.
//
// A panic from a dispatched callback or a pipeline phase is recovered,
// reported, and returned as a *errors.BuildError; the tree is left as-is so
// the caller can inspect or unmount it.
func (d *Driver) Pump() (frame *graphics.DisplayList, err error) {
	d.framePending.Store(false)

	phase := "dispatch"
	defer func() {
		if r := recover(); r != nil {
			err = recoveredFrameError(phase, r)
			frame = d.lastFrame
		}
	}()

	for _, callback := range d.drainDispatchQueue() {
		callback()
	}

	phase = "build"
	if d.root == nil && d.app != nil {
		d.root = core.MountRoot(d.app, d.buildOwner)
		if renderElement, ok := d.root.(interface{ RenderObject() layout.RenderObject }); ok {
			d.rootRender = renderElement.RenderObject()
		}
		if d.rootRender != nil {
			pipeline := d.buildOwner.Pipeline()
			pipeline.ScheduleLayout(d.rootRender)
			pipeline.SchedulePaint(d.rootRender)
		}
	}
	d.buildOwner.FlushBuild()

	if d.rootRender == nil {
		return d.lastFrame, nil
	}

	pipeline := d.buildOwner.Pipeline()

	phase = "layout"
	pipeline.FlushLayoutForRoot(d.rootRender, layout.Tight(d.size))

	phase = "paint"
	if pipeline.FlushPaint() {
		d.lastFrame = layout.PaintRoot(d.rootRender, d.size)
	}

	return d.lastFrame, nil
}

// PumpUntil pumps frames until NeedsFrame reports false or maxFrames is
// reached. It returns the last frame and the first error encountered.
func (d *Driver) PumpUntil(maxFrames int) (*graphics.DisplayList, error) {
	var frame *graphics.DisplayList
	var err error
	for i := 0; i < maxFrames; i++ {
		frame, err = d.Pump()
		if err != nil {
			return frame, err
		}
		if !d.NeedsFrame() {
			return frame, nil
		}
	}
	return frame, nil
}

// Shutdown unmounts the tree so state disposal runs. The driver can be
// reused with SetRoot afterwards.
func (d *Driver) Shutdown() {
	if d.root != nil {
		d.root.Unmount()
		d.root = nil
	}
	d.rootRender = nil
	d.app = nil
	d.lastFrame = nil
}

// recoveredFrameError converts a recovered panic into a reported BuildError.
// Error panics keep the original error as the cause so callers can unwrap
// domain error types; other values land in Recovered.
func recoveredFrameError(phase string, recovered any) error {
	buildErr := &errors.BuildError{
		Phase:      phase,
		StackTrace: errors.CaptureStack(),
		Timestamp:  time.Now(),
	}
	if cause, ok := recovered.(error); ok {
		buildErr.Err = cause
	} else {
		buildErr.Recovered = recovered
	}
	errors.ReportBuildError(buildErr)
	return buildErr
}
