package errors

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestViewErrorString(t *testing.T) {
	err := &ViewError{
		Op:   "typeset.Provider.load",
		Kind: KindEngine,
		Err:  errors.New("engine refused"),
	}
	got := err.Error()
	if !strings.Contains(got, "typeset.Provider.load") {
		t.Errorf("error string %q should contain the op", got)
	}
	if !strings.Contains(got, "engine") {
		t.Errorf("error string %q should contain the kind", got)
	}
	if !strings.Contains(got, "engine refused") {
		t.Errorf("error string %q should contain the cause", got)
	}
}

func TestViewErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &ViewError{Op: "op", Kind: KindConfig, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindEngine, "engine"},
		{KindInit, "init"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindBuild, "build"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	withOp := &PanicError{Op: "driver.Pump", Value: "boom"}
	if got, want := withOp.Error(), "panic in driver.Pump: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestBuildErrorString(t *testing.T) {
	panicked := &BuildError{Widget: "Math", Phase: "build", Recovered: "nil scope"}
	if got := panicked.Error(); !strings.Contains(got, "panic in Math during build") {
		t.Errorf("unexpected build error string %q", got)
	}

	wrapped := &BuildError{Widget: "Math", Err: errors.New("bad child")}
	if got := wrapped.Error(); !strings.Contains(got, "error in Math during build") {
		t.Errorf("unexpected build error string %q", got)
	}

	layout := &BuildError{Widget: "renderMath", Phase: "layout", Recovered: "bad size"}
	if got := layout.Error(); !strings.Contains(got, "during layout") {
		t.Errorf("unexpected layout error string %q", got)
	}
}

// captureHandler records reported errors for assertions.
type captureHandler struct {
	errs   []*ViewError
	panics []*PanicError
	builds []*BuildError
}

func (c *captureHandler) HandleError(err *ViewError)      { c.errs = append(c.errs, err) }
func (c *captureHandler) HandlePanic(err *PanicError)     { c.panics = append(c.panics, err) }
func (c *captureHandler) HandleBuildError(e *BuildError)  { c.builds = append(c.builds, e) }

func TestReportUsesGlobalHandler(t *testing.T) {
	capture := &captureHandler{}
	SetHandler(capture)
	defer SetHandler(nil)

	Report(&ViewError{Op: "op", Kind: KindRender, Err: errors.New("x")})
	Report(nil)

	if len(capture.errs) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(capture.errs))
	}
	if capture.errs[0].Timestamp.IsZero() {
		t.Error("Report should stamp the time")
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	capture := &captureHandler{}
	SetHandler(capture)
	defer SetHandler(nil)

	func() {
		defer Recover("test.op")
		panic("expected")
	}()

	if len(capture.panics) != 1 {
		t.Fatalf("expected 1 reported panic, got %d", len(capture.panics))
	}
	if capture.panics[0].Op != "test.op" {
		t.Errorf("unexpected op %q", capture.panics[0].Op)
	}
	if capture.panics[0].StackTrace == "" {
		t.Error("expected captured stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	capture := &captureHandler{}
	SetHandler(capture)
	defer SetHandler(nil)

	var got any
	func() {
		defer RecoverWithCallback("test.op", func(r any) { got = r })
		panic("value")
	}()

	if got != "value" {
		t.Errorf("callback should receive the panic value, got %v", got)
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	SetHandler(&captureHandler{})
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("expected LogHandler default, got %T", DefaultHandler)
	}
}
