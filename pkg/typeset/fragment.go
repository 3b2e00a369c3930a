package typeset

import (
	"strings"
	"sync"
)

// RunKind classifies one span of a fragment.
type RunKind int

const (
	// RunText is raw text the engine left alone.
	RunText RunKind = iota
	// RunMath is a recognized math span; Output holds its rendering once
	// a typeset pass completes.
	RunMath
	// RunOutput is markup injected wholesale by a convert pass.
	RunOutput
)

func (k RunKind) String() string {
	switch k {
	case RunText:
		return "text"
	case RunMath:
		return "math"
	case RunOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Run is one span of a fragment's content.
type Run struct {
	Kind RunKind
	// Source is the original text; for math runs the delimiters are
	// stripped.
	Source string
	// Output is engine-produced rendering, empty until a pass completes.
	Output string
	// Display marks block-style math.
	Display bool
}

// Fragment is the mutable content model a boundary shares with its
// engine. Typeset passes replace recognized spans with rendered runs;
// Restore collapses everything back to the original source so the next
// pass scans pristine input. Safe for concurrent use; the revision
// counter drives repaints.
type Fragment struct {
	mu       sync.Mutex
	source   string
	runs     []Run
	revision uint64
}

// NewFragment returns a fragment holding source as a single raw run.
func NewFragment(source string) *Fragment {
	return &Fragment{
		source: source,
		runs:   []Run{{Kind: RunText, Source: source}},
	}
}

// Source returns the fragment's original text.
func (f *Fragment) Source() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.source
}

// SetSource replaces the content with source, dropping any engine output.
func (f *Fragment) SetSource(source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.source == source && len(f.runs) == 1 && f.runs[0].Kind == RunText && f.runs[0].Source == source {
		return
	}
	f.source = source
	f.runs = []Run{{Kind: RunText, Source: source}}
	f.revision++
}

// Runs returns a snapshot of the current runs.
func (f *Fragment) Runs() []Run {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Run, len(f.runs))
	copy(out, f.runs)
	return out
}

// SetRuns publishes a typeset pass, replacing the runs wholesale.
func (f *Fragment) SetRuns(runs []Run) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = make([]Run, len(runs))
	copy(f.runs, runs)
	f.revision++
}

// Restore discards engine output, collapsing the fragment back to its
// original source.
func (f *Fragment) Restore() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = []Run{{Kind: RunText, Source: f.source}}
	f.revision++
}

// InjectOutput replaces the content with a single rendered run while
// keeping the source for later restores.
func (f *Fragment) InjectOutput(markup string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = []Run{{Kind: RunOutput, Source: f.source, Output: markup}}
	f.revision++
}

// PlainText flattens the fragment for painting: rendered output where
// present, source text otherwise.
func (f *Fragment) PlainText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var b strings.Builder
	for _, run := range f.runs {
		if run.Output != "" {
			b.WriteString(run.Output)
		} else {
			b.WriteString(run.Source)
		}
	}
	return b.String()
}

// Revision returns the mutation counter.
func (f *Fragment) Revision() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revision
}
