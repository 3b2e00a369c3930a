package typeset

import (
	"errors"
	"testing"
)

func TestHandle_ResolveDeliversWaiters(t *testing.T) {
	withInlineDispatch(t)
	h := NewHandle()
	if h.Ready() {
		t.Fatal("new handle reports ready")
	}
	engine := &fakeDocEngine{}
	var got Engine
	var gotErr error
	h.WhenReady(func(e Engine, err error) { got, gotErr = e, err })
	if got != nil {
		t.Fatal("waiter ran before resolution")
	}
	h.Resolve(engine, nil)
	if got != Engine(engine) || gotErr != nil {
		t.Errorf("waiter got (%v, %v), want the engine", got, gotErr)
	}
	if !h.Ready() {
		t.Error("Ready() = false after Resolve")
	}
	if h.Engine() != Engine(engine) {
		t.Error("Engine() does not return the resolved engine")
	}
	if h.Err() != nil {
		t.Errorf("Err() = %v, want nil", h.Err())
	}
}

func TestHandle_WhenReadyAfterResolve(t *testing.T) {
	withInlineDispatch(t)
	engine := &fakeDocEngine{}
	h := NewReadyHandle(engine)
	var got Engine
	h.WhenReady(func(e Engine, _ error) { got = e })
	if got != Engine(engine) {
		t.Errorf("late waiter got %v, want immediate delivery", got)
	}
}

func TestHandle_FirstResolveWins(t *testing.T) {
	withInlineDispatch(t)
	first := &fakeDocEngine{}
	second := newFakeQueuedEngine()
	h := NewHandle()
	h.Resolve(first, nil)
	h.Resolve(second, nil)
	if h.Engine() != Engine(first) {
		t.Error("second Resolve overwrote the handle")
	}
	var got Engine
	h.WhenReady(func(e Engine, _ error) { got = e })
	if got != Engine(first) {
		t.Errorf("waiter got %v, want the first engine", got)
	}
}

func TestHandle_LoadErrorExposed(t *testing.T) {
	withInlineDispatch(t)
	boom := errors.New("fetch failed")
	h := NewHandle()
	h.Resolve(nil, boom)
	if !h.Ready() {
		t.Error("a failed load still resolves the handle")
	}
	if h.Engine() != nil {
		t.Errorf("Engine() = %v, want nil after a failed load", h.Engine())
	}
	if h.Err() != boom {
		t.Errorf("Err() = %v, want %v", h.Err(), boom)
	}
	var gotErr error
	h.WhenReady(func(_ Engine, err error) { gotErr = err })
	if gotErr != boom {
		t.Errorf("waiter got error %v, want %v", gotErr, boom)
	}
}

func TestHandle_NotifiesListeners(t *testing.T) {
	withInlineDispatch(t)
	h := NewHandle()
	kept, dropped := 0, 0
	h.AddListener(func() { kept++ })
	unsubscribe := h.AddListener(func() { dropped++ })
	unsubscribe()
	h.Resolve(&fakeDocEngine{}, nil)
	if kept != 1 {
		t.Errorf("listener ran %d times, want 1", kept)
	}
	if dropped != 0 {
		t.Errorf("unsubscribed listener ran %d times", dropped)
	}
}

func TestHandle_NilWaiterIgnored(t *testing.T) {
	withInlineDispatch(t)
	h := NewReadyHandle(&fakeDocEngine{})
	h.WhenReady(nil)
}
