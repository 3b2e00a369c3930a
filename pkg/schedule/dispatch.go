// Package schedule routes deferred work onto the UI thread.
//
// The frame driver (or the widget tester) registers itself here once;
// leaf packages then call [Dispatch] without importing the driver. All
// dispatched callbacks run at the start of the next frame pump, before
// building.
package schedule

import "sync"

var (
	mu            sync.RWMutex
	dispatchFunc  func(callback func())
	frameRequests func()
)

// RegisterDispatcher sets the function used to queue callbacks for the UI
// thread. Called once by the frame driver (or widget tester) during setup.
func RegisterDispatcher(fn func(callback func())) {
	mu.Lock()
	dispatchFunc = fn
	mu.Unlock()
}

// Dispatch queues a callback to run on the UI thread at the next frame pump.
// Safe to call from any goroutine. Returns false if no dispatcher is
// registered or the callback is nil.
func Dispatch(callback func()) bool {
	mu.RLock()
	fn := dispatchFunc
	mu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// RegisterFrameRequester sets the function used to request a new frame.
func RegisterFrameRequester(fn func()) {
	mu.Lock()
	frameRequests = fn
	mu.Unlock()
}

// RequestFrame asks the registered driver to schedule a frame.
func RequestFrame() {
	mu.RLock()
	fn := frameRequests
	mu.RUnlock()
	if fn != nil {
		fn()
	}
}
