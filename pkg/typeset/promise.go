package typeset

import (
	"sync"

	"github.com/go-drift/mathview/pkg/schedule"
)

// dispatchOrRun defers fn to the UI goroutine when a dispatcher is
// registered and runs it inline otherwise, so promises and queues work
// both under a driver and in plain CLI code.
func dispatchOrRun(fn func()) {
	if !schedule.Dispatch(fn) {
		fn()
	}
}

// Promise is a single-completion future. It may settle on any goroutine;
// callbacks registered with Then are delivered through dispatchOrRun, one
// dispatch per callback, in registration order.
type Promise[T any] struct {
	mu      sync.Mutex
	settled bool
	value   T
	err     error
	waiters []func(T, error)
}

// NewPromise returns an unsettled promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{}
}

// Resolved returns a promise already completed with value.
func Resolved[T any](value T) *Promise[T] {
	p := &Promise[T]{}
	p.Complete(value)
	return p
}

// Rejected returns a promise already failed with err.
func Rejected[T any](err error) *Promise[T] {
	p := &Promise[T]{}
	p.Fail(err)
	return p
}

// Complete settles the promise with value. Only the first settle wins;
// later Complete and Fail calls are ignored.
func (p *Promise[T]) Complete(value T) {
	p.settle(value, nil)
}

// Fail settles the promise with err.
func (p *Promise[T]) Fail(err error) {
	var zero T
	p.settle(zero, err)
}

func (p *Promise[T]) settle(value T, err error) {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return
	}
	p.settled = true
	p.value = value
	p.err = err
	waiters := p.waiters
	p.waiters = nil
	p.mu.Unlock()

	for _, fn := range waiters {
		fn := fn
		dispatchOrRun(func() { fn(value, err) })
	}
}

// Then registers fn to run when the promise settles. Registering after
// settlement delivers immediately through the same dispatch path.
func (p *Promise[T]) Then(fn func(T, error)) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	if !p.settled {
		p.waiters = append(p.waiters, fn)
		p.mu.Unlock()
		return
	}
	value, err := p.value, p.err
	p.mu.Unlock()
	dispatchOrRun(func() { fn(value, err) })
}

// Settled reports whether the promise has completed or failed.
func (p *Promise[T]) Settled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settled
}
