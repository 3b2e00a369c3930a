package typeset

import (
	"reflect"
	"testing"
)

func TestJobQueue_RunsJobsInOrder(t *testing.T) {
	withInlineDispatch(t)
	q := NewJobQueue()
	var order []int
	q.EnqueueFunc(func() { order = append(order, 1) })
	q.EnqueueFunc(func() { order = append(order, 2) })
	q.EnqueueFunc(func() { order = append(order, 3) })
	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
	if q.Busy() {
		t.Error("queue still busy after draining")
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestJobQueue_SerializesUnderDispatcher(t *testing.T) {
	drain := withManualDispatch(t)
	q := NewJobQueue()
	var order []string
	q.EnqueueFunc(func() { order = append(order, "a") })
	q.EnqueueFunc(func() { order = append(order, "b") })
	if len(order) != 0 {
		t.Fatalf("jobs ran before the dispatch drain: %v", order)
	}
	if !q.Busy() {
		t.Fatal("queue should report busy while the pump is pending")
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	drain()
	if !reflect.DeepEqual(order, []string{"a", "b"}) {
		t.Errorf("order = %v, want [a b]", order)
	}
	if q.Busy() || q.Len() != 0 {
		t.Errorf("queue not idle after drain: busy=%v len=%d", q.Busy(), q.Len())
	}
}

func TestJobQueue_AsyncJobBlocksUntilDone(t *testing.T) {
	withInlineDispatch(t)
	q := NewJobQueue()
	var release func()
	var order []string
	q.Enqueue(func(done func()) {
		order = append(order, "async")
		release = done
	})
	q.EnqueueFunc(func() { order = append(order, "after") })
	if !reflect.DeepEqual(order, []string{"async"}) {
		t.Fatalf("order = %v, want the async job started and the next held", order)
	}
	if !q.Busy() {
		t.Error("queue should stay busy while a job is outstanding")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
	release()
	if !reflect.DeepEqual(order, []string{"async", "after"}) {
		t.Errorf("order = %v, want [async after]", order)
	}
	if q.Busy() {
		t.Error("queue still busy after the last job")
	}
}

func TestJobQueue_DoneIdempotent(t *testing.T) {
	withInlineDispatch(t)
	q := NewJobQueue()
	var finish func()
	count := 0
	q.Enqueue(func(done func()) { finish = done })
	q.EnqueueFunc(func() { count++ })
	finish()
	finish()
	if count != 1 {
		t.Errorf("next job ran %d times, want 1", count)
	}
	if q.Busy() {
		t.Error("queue still busy after completion")
	}
}

func TestJobQueue_NilJobsIgnored(t *testing.T) {
	withInlineDispatch(t)
	q := NewJobQueue()
	q.Enqueue(nil)
	q.EnqueueFunc(nil)
	if q.Busy() || q.Len() != 0 {
		t.Errorf("nil jobs changed the queue: busy=%v len=%d", q.Busy(), q.Len())
	}
}
