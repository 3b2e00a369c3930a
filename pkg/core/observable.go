package core

import "sync"

// Observable holds a value and notifies listeners when it changes.
// Observable is thread-safe and can be shared across goroutines; listeners
// run synchronously on the goroutine that calls Set.
//
// Use [UseObservable] to bind an observable to a widget state so changes
// trigger rebuilds.
type Observable[T any] struct {
	mu        sync.Mutex
	value     T
	equals    func(a, b T) bool
	listeners []observableListener[T]
	nextID    int
}

type observableListener[T any] struct {
	id int
	fn func(T)
}

// NewObservable creates an observable with the given initial value.
// Listeners are only notified when the value actually changes (compared
// with ==).
func NewObservable[T comparable](initial T) *Observable[T] {
	return &Observable[T]{
		value:  initial,
		equals: func(a, b T) bool { return a == b },
	}
}

// NewObservableWithEquality creates an observable with a custom equality
// function. Listeners are only notified when equals reports a change.
// A nil equals treats every Set as a change.
func NewObservableWithEquality[T any](initial T, equals func(a, b T) bool) *Observable[T] {
	return &Observable[T]{
		value:  initial,
		equals: equals,
	}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set updates the value and notifies listeners if it changed.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	if o.equals != nil && o.equals(o.value, value) {
		o.mu.Unlock()
		return
	}
	o.value = value
	listeners := make([]func(T), len(o.listeners))
	for i, entry := range o.listeners {
		listeners[i] = entry.fn
	}
	o.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

// Update applies a transformation to the current value.
func (o *Observable[T]) Update(transform func(T) T) {
	o.mu.Lock()
	next := transform(o.value)
	if o.equals != nil && o.equals(o.value, next) {
		o.mu.Unlock()
		return
	}
	o.value = next
	listeners := make([]func(T), len(o.listeners))
	for i, entry := range o.listeners {
		listeners[i] = entry.fn
	}
	o.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// AddListener registers a listener called with the new value on every change.
// Returns an unsubscribe function.
func (o *Observable[T]) AddListener(listener func(T)) func() {
	if listener == nil {
		return func() {}
	}
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners = append(o.listeners, observableListener[T]{id: id, fn: listener})
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, entry := range o.listeners {
			if entry.id == id {
				o.listeners = append(o.listeners[:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// Notifier broadcasts value-less events to listeners. Unlike [Observable],
// it doesn't hold a value. Thread-safe.
type Notifier struct {
	mu        sync.Mutex
	listeners []notifierListener
	nextID    int
}

type notifierListener struct {
	id int
	fn func()
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers a listener and returns an unsubscribe function.
// Notifier implements [Listenable].
func (n *Notifier) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners = append(n.listeners, notifierListener{id: id, fn: listener})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, entry := range n.listeners {
			if entry.id == id {
				n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify calls all listeners in registration order.
func (n *Notifier) Notify() {
	n.mu.Lock()
	listeners := make([]func(), len(n.listeners))
	for i, entry := range n.listeners {
		listeners[i] = entry.fn
	}
	n.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// ControllerBase provides listener management for controllers. Embed it to
// get [Listenable] and [Disposable] implementations for free:
//
//	type PassController struct {
//	    core.ControllerBase
//	    count int
//	}
//
//	func (c *PassController) Advance() {
//	    c.count++
//	    c.NotifyListeners()
//	}
//
// The zero value is ready to use.
type ControllerBase struct {
	notifier Notifier
	disposed bool
}

// AddListener registers a listener and returns an unsubscribe function.
func (c *ControllerBase) AddListener(listener func()) func() {
	return c.notifier.AddListener(listener)
}

// NotifyListeners calls all registered listeners.
func (c *ControllerBase) NotifyListeners() {
	c.notifier.Notify()
}

// ListenerCount returns the number of registered listeners.
func (c *ControllerBase) ListenerCount() int {
	return c.notifier.ListenerCount()
}

// Dispose drops all listeners. Further notifications are no-ops.
func (c *ControllerBase) Dispose() {
	c.notifier.mu.Lock()
	defer c.notifier.mu.Unlock()
	c.disposed = true
	c.notifier.listeners = nil
}

// IsDisposed returns true once Dispose has been called.
func (c *ControllerBase) IsDisposed() bool {
	c.notifier.mu.Lock()
	defer c.notifier.mu.Unlock()
	return c.disposed
}
