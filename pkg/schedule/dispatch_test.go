package schedule

import "testing"

func TestDispatchWithoutRegistration(t *testing.T) {
	RegisterDispatcher(nil)
	if Dispatch(func() {}) {
		t.Error("dispatch without a registered dispatcher should report false")
	}
}

func TestDispatchRoutesCallback(t *testing.T) {
	var queued []func()
	RegisterDispatcher(func(cb func()) { queued = append(queued, cb) })
	defer RegisterDispatcher(nil)

	ran := false
	if !Dispatch(func() { ran = true }) {
		t.Fatal("dispatch should succeed with a registered dispatcher")
	}
	if ran {
		t.Error("callback must not run synchronously")
	}
	for _, cb := range queued {
		cb()
	}
	if !ran {
		t.Error("callback should run when the queue drains")
	}
}

func TestDispatchNilCallback(t *testing.T) {
	RegisterDispatcher(func(cb func()) { cb() })
	defer RegisterDispatcher(nil)
	if Dispatch(nil) {
		t.Error("nil callback should not be scheduled")
	}
}

func TestRequestFrame(t *testing.T) {
	requests := 0
	RegisterFrameRequester(func() { requests++ })
	defer RegisterFrameRequester(nil)

	RequestFrame()
	RequestFrame()
	if requests != 2 {
		t.Errorf("expected 2 frame requests, got %d", requests)
	}
}
