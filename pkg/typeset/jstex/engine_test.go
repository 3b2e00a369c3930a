package jstex

import (
	"strings"
	"testing"
	"time"

	"github.com/go-drift/mathview/pkg/typeset"
)

const testScript = `
version = "3.9.1";

var clears = 0;

function clearOutput() {
	clears++;
}

function clearCount(text, options) {
	return String(clears);
}

function tex2html(text, options) {
	var out = "<b>" + text + "</b>";
	if (options.display) {
		out += "!";
	}
	return out;
}

function boom(text, options) {
	throw new Error("bad markup");
}

function typeset(source) {
	if (source === "raw") {
		return "[" + source + "]";
	}
	return [
		{kind: "text", source: "see "},
		{kind: "math", source: "x", output: "(x)", display: true},
	];
}
`

func newTestEngine(t *testing.T, script string) *Engine {
	t.Helper()
	e, err := New(script)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func awaitString(t *testing.T, p *typeset.Promise[string]) (string, error) {
	t.Helper()
	type result struct {
		out string
		err error
	}
	ch := make(chan result, 1)
	p.Then(func(out string, err error) { ch <- result{out, err} })
	select {
	case r := <-ch:
		return r.out, r.err
	case <-time.After(2 * time.Second):
		t.Fatal("conversion did not settle")
		return "", nil
	}
}

func awaitPass(t *testing.T, p *typeset.Promise[struct{}]) error {
	t.Helper()
	ch := make(chan error, 1)
	p.Then(func(_ struct{}, err error) { ch <- err })
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("typeset did not settle")
		return nil
	}
}

func TestNew_RejectsBrokenScript(t *testing.T) {
	if _, err := New("function ("); err == nil {
		t.Error("New should fail on a script that does not compile")
	}
}

func TestEngine_VersionFromScript(t *testing.T) {
	e := newTestEngine(t, testScript)
	if e.Version() != "3.9.1" {
		t.Errorf("Version = %q, want 3.9.1", e.Version())
	}
	if got := typeset.Major(e); got != 3 {
		t.Errorf("Major = %d, want 3", got)
	}
	if !typeset.SupportsConvert(e) {
		t.Error("scripted document engine should support conversion")
	}
}

func TestEngine_VersionDefaultsWhenUnset(t *testing.T) {
	e := newTestEngine(t, "function typeset(s) { return s; }")
	if e.Version() != DefaultVersion {
		t.Errorf("Version = %q, want %q", e.Version(), DefaultVersion)
	}
}

func TestEngine_ConvertCallsScriptFunction(t *testing.T) {
	e := newTestEngine(t, testScript)
	out, err := awaitString(t, e.Convert("tex2html", "x", typeset.ConvertOptions{Display: true}))
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if out != "<b>x</b>!" {
		t.Errorf("convert = %q, want display-flagged markup", out)
	}
}

func TestEngine_ConvertUnknownFunctionRejects(t *testing.T) {
	e := newTestEngine(t, testScript)
	_, err := awaitString(t, e.Convert("tex2nothing", "x", typeset.ConvertOptions{}))
	if err == nil || !strings.Contains(err.Error(), "does not define conversion function") {
		t.Errorf("error = %v, want missing function", err)
	}
}

func TestEngine_ConvertScriptThrowRejects(t *testing.T) {
	e := newTestEngine(t, testScript)
	_, err := awaitString(t, e.Convert("boom", "x", typeset.ConvertOptions{}))
	if err == nil || !strings.Contains(err.Error(), "bad markup") {
		t.Errorf("error = %v, want script exception text", err)
	}
}

func TestEngine_TypesetStringRewritesWholeFragment(t *testing.T) {
	e := newTestEngine(t, testScript)
	f := typeset.NewFragment("raw")
	if err := awaitPass(t, e.Typeset(f)); err != nil {
		t.Fatalf("typeset failed: %v", err)
	}
	runs := f.Runs()
	if len(runs) != 1 || runs[0].Kind != typeset.RunOutput || runs[0].Output != "[raw]" {
		t.Errorf("runs = %+v, want single rewritten output run", runs)
	}
	if got := f.PlainText(); got != "[raw]" {
		t.Errorf("PlainText = %q", got)
	}
}

func TestEngine_TypesetRunArrayMapsKinds(t *testing.T) {
	e := newTestEngine(t, testScript)
	f := typeset.NewFragment("see x")
	if err := awaitPass(t, e.Typeset(f)); err != nil {
		t.Fatalf("typeset failed: %v", err)
	}
	runs := f.Runs()
	if len(runs) != 2 {
		t.Fatalf("runs = %+v, want 2", runs)
	}
	if runs[0].Kind != typeset.RunText || runs[0].Source != "see " {
		t.Errorf("run 0 = %+v", runs[0])
	}
	if runs[1].Kind != typeset.RunMath || runs[1].Output != "(x)" || !runs[1].Display {
		t.Errorf("run 1 = %+v, want display math", runs[1])
	}
	if got := f.PlainText(); got != "see (x)" {
		t.Errorf("PlainText = %q", got)
	}
}

func TestEngine_TypesetRejectsUnknownRunKind(t *testing.T) {
	e := newTestEngine(t, `function typeset(s) { return [{kind: "sparkle"}]; }`)
	f := typeset.NewFragment("x")
	err := awaitPass(t, e.Typeset(f))
	if err == nil || !strings.Contains(err.Error(), "unknown run kind") {
		t.Errorf("error = %v, want unknown run kind", err)
	}
	if got := f.PlainText(); got != "x" {
		t.Errorf("PlainText = %q, failed pass must leave the fragment raw", got)
	}
}

func TestEngine_TypesetWithoutScriptFunctionRejects(t *testing.T) {
	e := newTestEngine(t, `version = "3.0.0";`)
	err := awaitPass(t, e.Typeset(typeset.NewFragment("x")))
	if err == nil || !strings.Contains(err.Error(), "does not define typeset") {
		t.Errorf("error = %v, want missing typeset", err)
	}
}

func TestEngine_ClearOutputReachesScript(t *testing.T) {
	e := newTestEngine(t, testScript)
	e.ClearOutput()
	e.ClearOutput()
	// Calls run FIFO on the runtime goroutine, so the count is stable by
	// the time the conversion behind them settles.
	out, err := awaitString(t, e.Convert("clearCount", "", typeset.ConvertOptions{}))
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if out != "2" {
		t.Errorf("clear count = %q, want 2", out)
	}
}

func TestEngine_CloseRejectsNewWork(t *testing.T) {
	e := newTestEngine(t, testScript)
	e.Close()
	_, err := awaitString(t, e.Convert("tex2html", "x", typeset.ConvertOptions{}))
	if err == nil || !strings.Contains(err.Error(), "engine closed") {
		t.Errorf("error = %v, want engine closed", err)
	}
}
