// Package testing provides a headless widget-test harness.
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestMyWidget(t *testing.T) {
//	    tester := mathtest.NewWidgetTesterWithT(t)
//	    if err := tester.PumpWidget(MyWidget{}); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if !tester.Find(mathtest.ByText("ready")).Exists() {
//	        t.Error("expected 'ready' text")
//	    }
//	}
//
// The tester drives the same frame loop as pkg/driver: each Pump drains
// the dispatch queue, then flushes build, layout, and paint. Panics from
// dispatched callbacks and pipeline phases come back as the Pump error;
// build panics land in the nearest error boundary instead. PumpUntilSettled
// keeps pumping until no work remains, which is how asynchronous engine
// passes are awaited.
//
// Finders locate elements in the mounted tree (ByType, ByKey, ByText,
// ByPredicate, Descendant, Ancestor); CaptureFrame replays the last
// painted frame into a flat op list so tests can assert on what was
// actually drawn, including that hidden content was not.
package testing
