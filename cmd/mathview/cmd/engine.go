package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/mathview/pkg/typeset"
	"github.com/go-drift/mathview/pkg/typeset/jstex"
	"github.com/go-drift/mathview/pkg/typeset/texmath"
)

// loadConfig reads mathview.yaml from the configured directory. A
// missing file yields a usable zero config.
func loadConfig() (*typeset.Config, error) {
	return typeset.LoadConfig(configDir)
}

// engineFromConfig builds the engine the config asks for: a scripted
// engine when engine.source names a script, otherwise the bundled one,
// wrapped behind the version-2 queue when engine.version selects it.
func engineFromConfig(cfg *typeset.Config, mathml bool) (typeset.Engine, error) {
	if src := strings.TrimSpace(cfg.Engine.Source); src != "" {
		return jstex.LoadFile(src)
	}
	bundled := texmath.New(texmath.Options{
		Macros:     cfg.Macros,
		Delimiters: cfg.Delimiters,
		MathML:     mathml,
	})
	if strings.HasPrefix(strings.TrimSpace(cfg.Engine.Version), "2") {
		return texmath.NewLegacy(bundled), nil
	}
	return bundled, nil
}

// closeEngine shuts down engines that hold a goroutine.
func closeEngine(engine typeset.Engine) {
	if closer, ok := engine.(interface{ Close() }); ok {
		closer.Close()
	}
}

// awaitConvert blocks until a conversion settles. Without a frame pump
// there is no dispatcher, so delivery happens on whichever goroutine
// completes the promise.
func awaitConvert(p *typeset.Promise[string]) (string, error) {
	type result struct {
		out string
		err error
	}
	ch := make(chan result, 1)
	p.Then(func(out string, err error) { ch <- result{out, err} })
	r := <-ch
	return r.out, r.err
}

// typesetFragment drives one pass over either engine generation,
// mirroring how a mounted boundary would.
func typesetFragment(engine typeset.Engine, fragment *typeset.Fragment) error {
	if doc, ok := engine.(typeset.DocumentEngine); ok && typeset.Major(engine) >= 3 {
		ch := make(chan error, 1)
		doc.Typeset(fragment).Then(func(_ struct{}, err error) { ch <- err })
		return <-ch
	}
	if queued, ok := engine.(typeset.QueuedEngine); ok {
		done := make(chan struct{})
		queued.QueueTypeset(fragment)
		queued.QueueCallback(func() { close(done) })
		<-done
		return nil
	}
	return fmt.Errorf("engine %s exposes no typesetting interface", engine.Version())
}
