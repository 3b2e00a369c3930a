package typeset

import "testing"

func TestNewFragment_SingleRawRun(t *testing.T) {
	f := NewFragment(`when \(a\) then`)
	runs := f.Runs()
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	if runs[0].Kind != RunText || runs[0].Source != `when \(a\) then` {
		t.Errorf("run = %+v, want raw source text", runs[0])
	}
	if f.Revision() != 0 {
		t.Errorf("revision = %d, want 0 at creation", f.Revision())
	}
	if got := f.PlainText(); got != `when \(a\) then` {
		t.Errorf("PlainText() = %q", got)
	}
}

func TestSetSource_NoOpWhenUnchanged(t *testing.T) {
	f := NewFragment("x")
	f.SetSource("x")
	if f.Revision() != 0 {
		t.Errorf("revision = %d after identical SetSource, want 0", f.Revision())
	}
	f.SetSource("y")
	if f.Revision() != 1 {
		t.Errorf("revision = %d after change, want 1", f.Revision())
	}
	if f.Source() != "y" {
		t.Errorf("source = %q, want %q", f.Source(), "y")
	}
}

func TestSetSource_DropsEngineOutput(t *testing.T) {
	f := NewFragment("x")
	f.SetRuns([]Run{{Kind: RunMath, Source: "x", Output: "X"}})
	// Same source string, but the runs hold engine output: must reset.
	f.SetSource("x")
	runs := f.Runs()
	if len(runs) != 1 || runs[0].Kind != RunText || runs[0].Output != "" {
		t.Errorf("runs = %+v, want single raw run", runs)
	}
	if f.Revision() != 2 {
		t.Errorf("revision = %d, want 2", f.Revision())
	}
}

func TestRestore_CollapsesToSource(t *testing.T) {
	f := NewFragment("a + b")
	f.SetRuns([]Run{
		{Kind: RunText, Source: "a + "},
		{Kind: RunMath, Source: "b", Output: "B"},
	})
	if got := f.PlainText(); got != "a + B" {
		t.Fatalf("PlainText() = %q, want rendered output", got)
	}
	f.Restore()
	runs := f.Runs()
	if len(runs) != 1 || runs[0].Kind != RunText || runs[0].Source != "a + b" {
		t.Errorf("runs = %+v, want original source", runs)
	}
	if got := f.PlainText(); got != "a + b" {
		t.Errorf("PlainText() = %q after restore", got)
	}
}

func TestInjectOutput_ReplacesContentKeepsSource(t *testing.T) {
	f := NewFragment("E=mc^2")
	f.InjectOutput("<math>E=mc^2</math>")
	if got := f.PlainText(); got != "<math>E=mc^2</math>" {
		t.Errorf("PlainText() = %q, want injected markup", got)
	}
	if f.Source() != "E=mc^2" {
		t.Errorf("source = %q, want original preserved", f.Source())
	}
	f.Restore()
	if got := f.PlainText(); got != "E=mc^2" {
		t.Errorf("PlainText() = %q after restore", got)
	}
}

func TestRuns_ReturnsSnapshot(t *testing.T) {
	f := NewFragment("x")
	runs := f.Runs()
	runs[0].Source = "mutated"
	if got := f.PlainText(); got != "x" {
		t.Errorf("mutating the snapshot changed the fragment: %q", got)
	}
}

func TestRevision_CountsMutations(t *testing.T) {
	f := NewFragment("x")
	f.SetRuns([]Run{{Kind: RunMath, Source: "x", Output: "X"}})
	f.Restore()
	f.InjectOutput("y")
	if f.Revision() != 3 {
		t.Errorf("revision = %d, want 3", f.Revision())
	}
}
