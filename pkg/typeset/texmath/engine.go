// Package texmath implements the bundled TeX typesetting engine.
//
// The engine parses a TeX math subset (Greek letters, operator symbols,
// \frac, \sqrt, sub/superscripts, grouping, \text) and renders it as
// plain unicode text or as MathML. It satisfies the version-3 document
// interface; Legacy re-exposes it through the version-2 queued one.
package texmath

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-drift/mathview/pkg/typeset"
)

// EngineVersion is the semantic version the bundled engine reports.
const EngineVersion = "3.4.1"

// macroDepth bounds recursive macro expansion so cycles fail instead of
// spinning.
const macroDepth = 12

// Options configure the bundled engine.
type Options struct {
	// Macros maps control sequence names, with or without the leading
	// backslash, to replacement TeX.
	Macros map[string]string
	// Delimiters extends the default math delimiters recognized while
	// scanning fragments.
	Delimiters []typeset.DelimiterPair
	// MathML switches fragment output from plain unicode to MathML.
	MathML bool
}

// Engine is the bundled version-3 typesetting engine. Display equations
// found while typesetting fragments are numbered sequentially until
// ClearOutput restarts the count.
type Engine struct {
	mu      sync.Mutex
	macros  map[string]string
	delims  []delimiter
	mathml  bool
	counter int
}

// New returns an engine with opts applied.
func New(opts Options) *Engine {
	e := &Engine{
		macros: make(map[string]string, len(opts.Macros)),
		delims: defaultDelimiters(),
		mathml: opts.MathML,
	}
	for name, body := range opts.Macros {
		e.macros[strings.TrimPrefix(strings.TrimSpace(name), `\`)] = body
	}
	for _, d := range opts.Delimiters {
		e.delims = append(e.delims, delimiter{open: d.Open, close: d.Close, display: d.Display})
	}
	return e
}

// FromConfig builds an engine from a loaded mathview.yaml, carrying its
// macros and extra delimiters.
func FromConfig(cfg *typeset.Config) *Engine {
	if cfg == nil {
		return New(Options{})
	}
	return New(Options{Macros: cfg.Macros, Delimiters: cfg.Delimiters})
}

// Version implements typeset.Engine.
func (e *Engine) Version() string { return EngineVersion }

// ClearOutput implements typeset.DocumentEngine. Display equation
// numbering restarts at one.
func (e *Engine) ClearOutput() {
	e.mu.Lock()
	e.counter = 0
	e.mu.Unlock()
}

// Typeset implements typeset.DocumentEngine: the fragment source is
// scanned for delimited math and rewritten span by span. A fragment
// whose math fails to parse is left untouched and the promise rejects.
func (e *Engine) Typeset(fragment *typeset.Fragment) *typeset.Promise[struct{}] {
	if fragment == nil {
		return typeset.Rejected[struct{}](fmt.Errorf("texmath: typeset of nil fragment"))
	}
	runs, count, err := e.typesetRuns(fragment.Source())
	if err != nil {
		return typeset.Rejected[struct{}](err)
	}
	fragment.SetRuns(runs)
	e.mu.Lock()
	e.counter = count
	e.mu.Unlock()
	return typeset.Resolved(struct{}{})
}

// typesetRuns renders every delimited span of source, numbering display
// equations from the current counter without committing it.
func (e *Engine) typesetRuns(source string) ([]typeset.Run, int, error) {
	e.mu.Lock()
	count := e.counter
	delims := e.delims
	e.mu.Unlock()

	segments := splitSegments(source, delims)
	runs := make([]typeset.Run, 0, len(segments))
	for _, seg := range segments {
		if !seg.math {
			runs = append(runs, typeset.Run{Kind: typeset.RunText, Source: seg.text})
			continue
		}
		out, err := e.render(seg.tex, seg.display)
		if err != nil {
			return nil, 0, fmt.Errorf("texmath: %q: %w", seg.tex, err)
		}
		if seg.display {
			count++
			out += " (" + strconv.Itoa(count) + ")"
		}
		runs = append(runs, typeset.Run{
			Kind:    typeset.RunMath,
			Source:  seg.tex,
			Output:  out,
			Display: seg.display,
		})
	}
	return runs, count, nil
}

func (e *Engine) render(tex string, display bool) (string, error) {
	if e.mathml {
		return e.mathMLFor(tex, display, 0)
	}
	return e.plainFor(tex)
}

// Convert implements typeset.DocumentEngine. The recognized functions
// are tex2mml and tex2plain; their Promise-suffixed flavors settle off
// the calling goroutine.
func (e *Engine) Convert(name, text string, options typeset.ConvertOptions) *typeset.Promise[string] {
	base := strings.TrimSuffix(name, "Promise")
	run := func() (string, error) {
		switch base {
		case "tex2mml":
			return e.ToMathML(text, options)
		case "tex2plain":
			return e.ToPlain(text)
		default:
			return "", fmt.Errorf("texmath: unknown conversion function %q", name)
		}
	}
	if base != name {
		p := typeset.NewPromise[string]()
		go func() {
			out, err := run()
			if err != nil {
				p.Fail(err)
				return
			}
			p.Complete(out)
		}()
		return p
	}
	out, err := run()
	if err != nil {
		return typeset.Rejected[string](err)
	}
	return typeset.Resolved(out)
}

// ToMathML converts one TeX expression to a MathML string.
func (e *Engine) ToMathML(tex string, options typeset.ConvertOptions) (string, error) {
	return e.mathMLFor(tex, options.Display, options.Scale)
}

// ToPlain converts one TeX expression to plain unicode text.
func (e *Engine) ToPlain(tex string) (string, error) {
	return e.plainFor(tex)
}

func (e *Engine) mathMLFor(tex string, display bool, scale float64) (string, error) {
	root, src, err := e.parse(tex)
	if err != nil {
		return "", err
	}
	return renderMathML(src, root, display, scale)
}

func (e *Engine) plainFor(tex string) (string, error) {
	root, src, err := e.parse(tex)
	if err != nil {
		return "", err
	}
	return renderPlain(src, root)
}

// parse expands macros and parses the result. The expanded source comes
// back too; node positions index into it.
func (e *Engine) parse(tex string) (*Expression, string, error) {
	src, err := expandMacros(tex, e.macros)
	if err != nil {
		return nil, "", err
	}
	root, err := ParseString(src)
	if err != nil {
		return nil, "", err
	}
	return root, src, nil
}

// expandMacros rewrites configured control sequences until the source
// stops changing. Longest-name matching follows TeX: \RRx is its own
// command, not \RR followed by x.
func expandMacros(src string, macros map[string]string) (string, error) {
	if len(macros) == 0 {
		return src, nil
	}
	for pass := 0; pass < macroDepth; pass++ {
		out, changed := expandOnce(src, macros)
		if !changed {
			return out, nil
		}
		src = out
	}
	return "", fmt.Errorf("macro expansion exceeded %d passes", macroDepth)
}

func expandOnce(src string, macros map[string]string) (string, bool) {
	var b strings.Builder
	changed := false
	for i := 0; i < len(src); {
		if src[i] != '\\' {
			b.WriteByte(src[i])
			i++
			continue
		}
		j := i + 1
		for j < len(src) && isCommandLetter(src[j]) {
			j++
		}
		if j == i+1 {
			// Escaped punctuation: copy the backslash and whatever
			// follows it.
			b.WriteByte(src[i])
			i++
			if i < len(src) {
				b.WriteByte(src[i])
				i++
			}
			continue
		}
		name := src[i+1 : j]
		if body, ok := macros[name]; ok {
			b.WriteString(body)
			changed = true
		} else {
			b.WriteString(src[i:j])
		}
		i = j
	}
	return b.String(), changed
}

func isCommandLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
