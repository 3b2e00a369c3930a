package typeset

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Engine is the seam every typesetting engine satisfies. The two
// generations extend it: [DocumentEngine] (version 3, promise-based) and
// [QueuedEngine] (version 2, FIFO queue).
type Engine interface {
	// Version returns the engine's semantic version, with or without the
	// leading "v".
	Version() string
}

// DocumentEngine is the version-3 generation: direct calls that settle
// promises, plus named text conversion.
type DocumentEngine interface {
	Engine

	// ClearOutput discards all engine-produced state so the next pass
	// starts from pristine input. Display equation numbering restarts.
	ClearOutput()

	// Typeset scans fragment for delimited math and rewrites it in
	// place, settling the returned promise when the pass finishes.
	Typeset(fragment *Fragment) *Promise[struct{}]

	// Convert runs the named conversion function over text. Synchronous
	// functions return an already-settled promise; functions whose name
	// ends in "Promise" settle later.
	Convert(name, text string, options ConvertOptions) *Promise[string]
}

// QueuedEngine is the version-2 generation: work is enqueued FIFO and
// completion is observed by queueing a callback behind it.
type QueuedEngine interface {
	Engine

	// QueueTypeset appends a typeset pass over fragment to the engine's
	// queue.
	QueueTypeset(fragment *Fragment)

	// QueueCallback appends fn behind all previously queued work.
	QueueCallback(fn func())
}

// Major derives an engine's major version from its semver string, 0 when
// the string does not parse.
func Major(e Engine) int {
	if e == nil {
		return 0
	}
	v := strings.TrimSpace(e.Version())
	if v == "" {
		return 0
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(semver.Major(v), "v"))
	if err != nil {
		return 0
	}
	return n
}

// SupportsConvert reports whether e can serve pre-mode boundaries.
// Conversion functions arrived with the version-3 document API.
func SupportsConvert(e Engine) bool {
	if _, ok := e.(DocumentEngine); !ok {
		return false
	}
	return Major(e) >= 3
}
