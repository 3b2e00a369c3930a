package typeset

import (
	"fmt"

	"github.com/go-drift/mathview/pkg/errors"
)

// ConfigError reports programmer misuse of a boundary: a required prop is
// missing for the selected mode, the mode is unsupported by the engine
// generation, or the boundary is used outside a provider scope.
//
// Config errors are raised as panics at the point of detection on the UI
// thread. During build they route to the nearest error boundary; from a
// dispatched callback they surface as an error from the frame pump.
type ConfigError struct {
	Op     string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("typeset: %s: %s", e.Op, e.Reason)
}

// Kind classifies the error for the structured error channel.
func (e *ConfigError) Kind() errors.ErrorKind { return errors.KindConfig }

// PassError reports an engine failure during a typeset or conversion pass.
// The boundary clears its in-flight latch and runs completion bookkeeping
// before surfacing one, so the next qualifying update retries.
type PassError struct {
	Op  string
	Err error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("typeset: %s: %v", e.Op, e.Err)
}

func (e *PassError) Unwrap() error { return e.Err }

// Kind classifies the error for the structured error channel.
func (e *PassError) Kind() errors.ErrorKind { return errors.KindEngine }
