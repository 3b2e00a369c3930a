package typeset

import "sync"

// JobQueue serializes work in submission order. One job runs at a time;
// each job receives a done callback whose first call starts the next job.
// Version-2 engines pump their typeset passes and callbacks through one
// of these.
type JobQueue struct {
	mu   sync.Mutex
	jobs []func(done func())
	busy bool
}

// NewJobQueue returns an idle queue.
func NewJobQueue() *JobQueue {
	return &JobQueue{}
}

// Enqueue appends job, starting the pump when the queue was idle. The job
// must call done exactly once; extra calls are ignored.
func (q *JobQueue) Enqueue(job func(done func())) {
	if job == nil {
		return
	}
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	start := !q.busy
	if start {
		q.busy = true
	}
	q.mu.Unlock()

	if start {
		dispatchOrRun(q.runNext)
	}
}

// EnqueueFunc appends a synchronous job.
func (q *JobQueue) EnqueueFunc(fn func()) {
	if fn == nil {
		return
	}
	q.Enqueue(func(done func()) {
		fn()
		done()
	})
}

func (q *JobQueue) runNext() {
	q.mu.Lock()
	if len(q.jobs) == 0 {
		q.busy = false
		q.mu.Unlock()
		return
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	q.mu.Unlock()

	var once sync.Once
	job(func() {
		once.Do(func() {
			dispatchOrRun(q.runNext)
		})
	})
}

// Busy reports whether a job is running or waiting.
func (q *JobQueue) Busy() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.busy
}

// Len returns the number of jobs not yet started.
func (q *JobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
