package typeset

import (
	"sync"

	"github.com/go-drift/mathview/pkg/core"
)

// Handle is an awaitable reference to an engine that may still be
// loading. The provider resolves it once; boundaries either find it ready
// or register to hear when it is. Handle implements [core.Listenable] so
// widgets can rebuild on readiness.
type Handle struct {
	mu       sync.Mutex
	ready    bool
	engine   Engine
	err      error
	waiters  []func(Engine, error)
	notifier core.Notifier
}

// NewHandle returns an unresolved handle.
func NewHandle() *Handle {
	return &Handle{}
}

// NewReadyHandle returns a handle already resolved with engine.
func NewReadyHandle(engine Engine) *Handle {
	h := &Handle{}
	h.Resolve(engine, nil)
	return h
}

// Resolve settles the handle with an engine or a load error. Only the
// first call wins.
func (h *Handle) Resolve(engine Engine, err error) {
	h.mu.Lock()
	if h.ready {
		h.mu.Unlock()
		return
	}
	h.ready = true
	h.engine = engine
	h.err = err
	waiters := h.waiters
	h.waiters = nil
	h.mu.Unlock()

	for _, fn := range waiters {
		fn := fn
		dispatchOrRun(func() { fn(engine, err) })
	}
	h.notifier.Notify()
}

// Ready reports whether the handle has resolved.
func (h *Handle) Ready() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ready
}

// Engine returns the resolved engine, nil before resolution or after a
// failed load.
func (h *Handle) Engine() Engine {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine
}

// Err returns the load error, if any.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// WhenReady runs fn once the handle resolves, immediately when it already
// has. Delivery goes through the dispatch queue when one is registered.
func (h *Handle) WhenReady(fn func(Engine, error)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	if !h.ready {
		h.waiters = append(h.waiters, fn)
		h.mu.Unlock()
		return
	}
	engine, err := h.engine, h.err
	h.mu.Unlock()
	dispatchOrRun(func() { fn(engine, err) })
}

// AddListener registers a readiness listener and returns an unsubscribe
// function.
func (h *Handle) AddListener(listener func()) func() {
	return h.notifier.AddListener(listener)
}
