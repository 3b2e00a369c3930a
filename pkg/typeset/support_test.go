package typeset

import (
	"sync"
	"testing"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/schedule"
	mathtest "github.com/go-drift/mathview/pkg/testing"
)

// withInlineDispatch clears any dispatcher a previous test left registered
// so dispatchOrRun falls back to running callbacks inline.
func withInlineDispatch(t *testing.T) {
	t.Helper()
	schedule.RegisterDispatcher(nil)
	t.Cleanup(func() { schedule.RegisterDispatcher(nil) })
}

// withManualDispatch installs a hand-pumped dispatch queue. The returned
// drain runs queued callbacks, including ones they queue in turn, and
// reports how many ran.
func withManualDispatch(t *testing.T) func() int {
	t.Helper()
	var mu sync.Mutex
	var queue []func()
	schedule.RegisterDispatcher(func(callback func()) {
		mu.Lock()
		queue = append(queue, callback)
		mu.Unlock()
	})
	t.Cleanup(func() { schedule.RegisterDispatcher(nil) })
	return func() int {
		ran := 0
		for {
			mu.Lock()
			if len(queue) == 0 {
				mu.Unlock()
				return ran
			}
			next := queue[0]
			queue = queue[1:]
			mu.Unlock()
			next()
			ran++
		}
	}
}

// markTypeset rewrites fragment the way a finished pass would, so tests
// can tell raw content from typeset content in painted frames.
func markTypeset(fragment *Fragment) {
	fragment.SetRuns([]Run{{
		Kind:   RunMath,
		Source: fragment.Source(),
		Output: "typeset:" + fragment.Source(),
	}})
}

// heldPass is a typeset call whose promise the test settles by hand.
type heldPass struct {
	fragment *Fragment
	promise  *Promise[struct{}]
}

// fakeDocEngine implements the version-3 document API with controllable
// results. With hold set, typeset promises stay open until released.
type fakeDocEngine struct {
	version    string
	hold       bool
	typesetErr error
	convertErr error

	typesets int
	converts []string
	clears   int
	held     []heldPass
}

func (e *fakeDocEngine) Version() string {
	if e.version == "" {
		return "3.2.2"
	}
	return e.version
}

func (e *fakeDocEngine) ClearOutput() { e.clears++ }

func (e *fakeDocEngine) Typeset(fragment *Fragment) *Promise[struct{}] {
	e.typesets++
	if e.typesetErr != nil {
		return Rejected[struct{}](e.typesetErr)
	}
	if e.hold {
		p := NewPromise[struct{}]()
		e.held = append(e.held, heldPass{fragment: fragment, promise: p})
		return p
	}
	markTypeset(fragment)
	return Resolved(struct{}{})
}

func (e *fakeDocEngine) Convert(name, text string, options ConvertOptions) *Promise[string] {
	e.converts = append(e.converts, text)
	if e.convertErr != nil {
		return Rejected[string](e.convertErr)
	}
	return Resolved("<" + name + ">" + text)
}

// release finishes the oldest held typeset pass.
func (e *fakeDocEngine) release(t *testing.T) {
	t.Helper()
	if len(e.held) == 0 {
		t.Fatal("no held typeset pass to release")
	}
	pass := e.held[0]
	e.held = e.held[1:]
	markTypeset(pass.fragment)
	pass.promise.Complete(struct{}{})
}

// fakeQueuedEngine implements the version-2 FIFO API over a JobQueue.
type fakeQueuedEngine struct {
	version  string
	queue    *JobQueue
	typesets int
}

func newFakeQueuedEngine() *fakeQueuedEngine {
	return &fakeQueuedEngine{queue: NewJobQueue()}
}

func (e *fakeQueuedEngine) Version() string {
	if e.version == "" {
		return "2.7.9"
	}
	return e.version
}

func (e *fakeQueuedEngine) QueueTypeset(fragment *Fragment) {
	e.queue.EnqueueFunc(func() {
		e.typesets++
		markTypeset(fragment)
	})
}

func (e *fakeQueuedEngine) QueueCallback(fn func()) {
	e.queue.EnqueueFunc(fn)
}

// fakeBareEngine satisfies only the base interface.
type fakeBareEngine struct {
	version string
}

func (e fakeBareEngine) Version() string { return e.version }

// fakeDualEngine exposes both generations so the version decides the path.
type fakeDualEngine struct {
	version string
	doc     *fakeDocEngine
	queued  *fakeQueuedEngine
}

func newFakeDualEngine(version string) *fakeDualEngine {
	return &fakeDualEngine{
		version: version,
		doc:     &fakeDocEngine{version: version},
		queued:  &fakeQueuedEngine{version: version, queue: NewJobQueue()},
	}
}

func (e *fakeDualEngine) Version() string { return e.version }

func (e *fakeDualEngine) ClearOutput() { e.doc.ClearOutput() }

func (e *fakeDualEngine) Typeset(fragment *Fragment) *Promise[struct{}] {
	return e.doc.Typeset(fragment)
}

func (e *fakeDualEngine) Convert(name, text string, options ConvertOptions) *Promise[string] {
	return e.doc.Convert(name, text, options)
}

func (e *fakeDualEngine) QueueTypeset(fragment *Fragment) { e.queued.QueueTypeset(fragment) }

func (e *fakeDualEngine) QueueCallback(fn func()) { e.queued.QueueCallback(fn) }

// boundaryHost pins a Provider in place so tests can mutate boundary props
// through SetState instead of remounting the tree.
type boundaryHost struct {
	core.StatefulBase
	engine Engine
	config *Config
	math   Math
}

func (h boundaryHost) CreateState() core.State { return &boundaryHostState{} }

type boundaryHostState struct {
	core.StateBase
	math Math
}

func (s *boundaryHostState) InitState() {
	s.math = s.Element().Widget().(boundaryHost).math
}

func (s *boundaryHostState) Build(ctx core.BuildContext) core.Widget {
	host := s.Element().Widget().(boundaryHost)
	return Provider{Engine: host.engine, Config: host.config, Child: s.math}
}

// update mutates the hosted boundary widget and schedules a rebuild. A nil
// fn forces a rebuild with unchanged props.
func (s *boundaryHostState) update(fn func(*Math)) {
	s.SetState(func() {
		if fn != nil {
			fn(&s.math)
		}
	})
}

// hostOf returns the root host state for prop updates.
func hostOf(t *testing.T, tester *mathtest.WidgetTester) *boundaryHostState {
	t.Helper()
	root, ok := tester.RootElement().(*core.StatefulElement)
	if !ok {
		t.Fatalf("root element is %T, want stateful", tester.RootElement())
	}
	state, ok := root.State().(*boundaryHostState)
	if !ok {
		t.Fatalf("root state is %T, want *boundaryHostState", root.State())
	}
	return state
}

// boundaryState digs out the mounted boundary's state.
func boundaryState(t *testing.T, tester *mathtest.WidgetTester) *mathState {
	t.Helper()
	element := tester.Find(mathtest.ByType[Math]()).First()
	stateful, ok := element.(*core.StatefulElement)
	if !ok {
		t.Fatalf("boundary element is %T, want stateful", element)
	}
	state, ok := stateful.State().(*mathState)
	if !ok {
		t.Fatalf("boundary state is %T, want *mathState", stateful.State())
	}
	return state
}

// pumpBoundary mounts a host around math and settles the initial pass.
func pumpBoundary(t *testing.T, tester *mathtest.WidgetTester, engine Engine, math Math) {
	t.Helper()
	if err := tester.PumpWidget(boundaryHost{engine: engine, math: math}); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if err := tester.PumpUntilSettled(16); err != nil {
		t.Fatalf("settle: %v", err)
	}
}
