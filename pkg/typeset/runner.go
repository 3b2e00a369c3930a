package typeset

// passRunner abstracts one typeset pass over the two engine generations.
type passRunner interface {
	run(fragment *Fragment, done func(error))
}

// promiseRunner drives a version-3 engine: one call, one promise.
type promiseRunner struct {
	engine DocumentEngine
}

func (r promiseRunner) run(fragment *Fragment, done func(error)) {
	r.engine.Typeset(fragment).Then(func(_ struct{}, err error) {
		done(err)
	})
}

// queueRunner drives a version-2 engine: the pass and a completion
// callback are enqueued FIFO. The queue carries no error channel, so a
// finished pass always reports success.
type queueRunner struct {
	engine QueuedEngine
}

func (r queueRunner) run(fragment *Fragment, done func(error)) {
	r.engine.QueueTypeset(fragment)
	r.engine.QueueCallback(func() {
		done(nil)
	})
}

// runnerFor selects the pass runner for an engine's generation. Engines
// exposing both APIs get the promise path from major version 3 on and
// the queue path below that. ok is false when neither API is present.
func runnerFor(engine Engine) (passRunner, bool) {
	doc, isDoc := engine.(DocumentEngine)
	queued, isQueued := engine.(QueuedEngine)
	switch {
	case isDoc && (!isQueued || Major(engine) >= 3):
		return promiseRunner{engine: doc}, true
	case isQueued:
		return queueRunner{engine: queued}, true
	default:
		return nil, false
	}
}
