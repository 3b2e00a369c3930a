package texmath

import "github.com/go-drift/mathview/pkg/typeset"

// LegacyVersion is the semantic version the queued wrapper reports.
const LegacyVersion = "2.7.3"

// Legacy exposes the bundled engine through the version-2 queued
// interface: passes and callbacks run strictly FIFO over a job queue.
// The queue carries no error channel, so a failed pass leaves the
// fragment's raw source in place and the queue moves on.
type Legacy struct {
	engine *Engine
	queue  *typeset.JobQueue
}

// NewLegacy wraps engine; a nil engine gets defaults.
func NewLegacy(engine *Engine) *Legacy {
	if engine == nil {
		engine = New(Options{})
	}
	return &Legacy{engine: engine, queue: typeset.NewJobQueue()}
}

// Version implements typeset.Engine.
func (l *Legacy) Version() string { return LegacyVersion }

// QueueTypeset implements typeset.QueuedEngine. The queue advances only
// once the underlying pass settles, preserving FIFO order behind
// asynchronous work.
func (l *Legacy) QueueTypeset(fragment *typeset.Fragment) {
	l.queue.Enqueue(func(done func()) {
		l.engine.Typeset(fragment).Then(func(struct{}, error) {
			done()
		})
	})
}

// QueueCallback implements typeset.QueuedEngine.
func (l *Legacy) QueueCallback(fn func()) {
	l.queue.EnqueueFunc(fn)
}
