// Package jstex adapts a scripted typesetting engine running inside a
// goja JavaScript runtime.
//
// The script defines plain globals: an optional version string, a
// typeset(source) function returning either a rewritten string or an
// array of {kind, source, output, display} runs, conversion functions
// looked up by name, and an optional clearOutput(). The runtime is
// confined to one goroutine; calls are marshalled onto it and their
// results settle promises, so completions reach the UI thread through
// the usual dispatch queue.
package jstex

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dop251/goja"

	"github.com/go-drift/mathview/pkg/typeset"
)

// DefaultVersion is reported when the script does not set one.
const DefaultVersion = "3.0.0"

// Engine runs a scripted engine. It satisfies the version-3 document
// interface as long as the script reports a version-3 number.
type Engine struct {
	version   string
	calls     chan func(*goja.Runtime)
	quit      chan struct{}
	closeOnce sync.Once
}

var _ typeset.DocumentEngine = (*Engine)(nil)

// New evaluates source in a fresh runtime and starts the goroutine that
// owns it from then on.
func New(source string) (*Engine, error) {
	rt := goja.New()
	rt.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	if _, err := rt.RunString(source); err != nil {
		return nil, fmt.Errorf("jstex: script failed to load: %w", err)
	}

	version := DefaultVersion
	if v := rt.Get("version"); v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
		version = v.String()
	}

	e := &Engine{
		version: version,
		calls:   make(chan func(*goja.Runtime), 16),
		quit:    make(chan struct{}),
	}
	go e.loop(rt)
	return e, nil
}

// LoadFile reads a script from disk and builds an engine around it.
func LoadFile(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jstex: %w", err)
	}
	return New(string(data))
}

func (e *Engine) loop(rt *goja.Runtime) {
	for {
		select {
		case <-e.quit:
			return
		case fn := <-e.calls:
			fn(rt)
		}
	}
}

// submit hands fn to the runtime goroutine. A closed engine refuses
// outright rather than parking work in the buffer.
func (e *Engine) submit(fn func(*goja.Runtime)) error {
	select {
	case <-e.quit:
		return errors.New("jstex: engine closed")
	default:
	}
	select {
	case <-e.quit:
		return errors.New("jstex: engine closed")
	case e.calls <- fn:
		return nil
	}
}

// Close stops the runtime goroutine. Work still queued is abandoned;
// its promises never settle.
func (e *Engine) Close() {
	e.closeOnce.Do(func() { close(e.quit) })
}

// Version implements typeset.Engine.
func (e *Engine) Version() string { return e.version }

// ClearOutput implements typeset.DocumentEngine. The script's
// clearOutput function runs if it defines one.
func (e *Engine) ClearOutput() {
	_ = e.submit(func(rt *goja.Runtime) {
		fn, ok := assertGlobalFunction(rt, "clearOutput")
		if !ok {
			return
		}
		_, _ = fn(goja.Undefined())
	})
}

// Typeset implements typeset.DocumentEngine: the script's typeset
// function decides the fragment's new runs.
func (e *Engine) Typeset(fragment *typeset.Fragment) *typeset.Promise[struct{}] {
	if fragment == nil {
		return typeset.Rejected[struct{}](errors.New("jstex: typeset of nil fragment"))
	}
	p := typeset.NewPromise[struct{}]()
	source := fragment.Source()
	err := e.submit(func(rt *goja.Runtime) {
		fn, ok := assertGlobalFunction(rt, "typeset")
		if !ok {
			p.Fail(errors.New("jstex: script does not define typeset"))
			return
		}
		res, err := fn(goja.Undefined(), rt.ToValue(source))
		if err != nil {
			p.Fail(fmt.Errorf("jstex: typeset: %w", err))
			return
		}
		runs, err := runsFromValue(rt, res, source)
		if err != nil {
			p.Fail(err)
			return
		}
		fragment.SetRuns(runs)
		p.Complete(struct{}{})
	})
	if err != nil {
		return typeset.Rejected[struct{}](err)
	}
	return p
}

// Convert implements typeset.DocumentEngine: conversion functions are
// script globals looked up by name, Promise-suffixed or not.
func (e *Engine) Convert(name, text string, options typeset.ConvertOptions) *typeset.Promise[string] {
	p := typeset.NewPromise[string]()
	err := e.submit(func(rt *goja.Runtime) {
		fn, ok := assertGlobalFunction(rt, name)
		if !ok {
			p.Fail(fmt.Errorf("jstex: script does not define conversion function %q", name))
			return
		}
		opts := rt.ToValue(map[string]interface{}{
			"display":        options.Display,
			"scale":          options.Scale,
			"em":             options.Em,
			"ex":             options.Ex,
			"containerWidth": options.ContainerWidth,
		})
		res, err := fn(goja.Undefined(), rt.ToValue(text), opts)
		if err != nil {
			p.Fail(fmt.Errorf("jstex: %s: %w", name, err))
			return
		}
		p.Complete(res.String())
	})
	if err != nil {
		return typeset.Rejected[string](err)
	}
	return p
}

func assertGlobalFunction(rt *goja.Runtime, name string) (goja.Callable, bool) {
	v := rt.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, false
	}
	return goja.AssertFunction(v)
}

// jsRun is the shape scripts return from typeset.
type jsRun struct {
	Kind    string `json:"kind"`
	Source  string `json:"source"`
	Output  string `json:"output"`
	Display bool   `json:"display"`
}

// runsFromValue accepts a plain string, rewriting the whole fragment,
// or an array of run objects.
func runsFromValue(rt *goja.Runtime, v goja.Value, source string) ([]typeset.Run, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, errors.New("jstex: typeset returned nothing")
	}
	if s, ok := v.Export().(string); ok {
		return []typeset.Run{{Kind: typeset.RunOutput, Source: source, Output: s}}, nil
	}

	var raw []jsRun
	if err := rt.ExportTo(v, &raw); err != nil {
		return nil, fmt.Errorf("jstex: typeset result: %w", err)
	}
	runs := make([]typeset.Run, 0, len(raw))
	for i, r := range raw {
		kind, err := runKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("jstex: typeset result[%d]: %w", i, err)
		}
		runs = append(runs, typeset.Run{
			Kind:    kind,
			Source:  r.Source,
			Output:  r.Output,
			Display: r.Display,
		})
	}
	return runs, nil
}

func runKind(s string) (typeset.RunKind, error) {
	switch s {
	case "text":
		return typeset.RunText, nil
	case "math":
		return typeset.RunMath, nil
	case "output":
		return typeset.RunOutput, nil
	default:
		return 0, fmt.Errorf("unknown run kind %q", s)
	}
}
