package typeset

import (
	"fmt"
	"strings"
)

// Mode selects how a boundary feeds the engine.
type Mode int

const (
	// ModeDefault defers to the enclosing scope's configured mode.
	ModeDefault Mode = iota
	// ModeTypeset ("post") scans the boundary's existing content and
	// rewrites recognized math in place on every qualifying update.
	ModeTypeset
	// ModeConvert ("pre") sends the Text prop through a named conversion
	// function and injects the produced markup, once per text change.
	ModeConvert
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeTypeset:
		return "typeset"
	case ModeConvert:
		return "convert"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a config string to a Mode. Both the short names and the
// pre/post aliases are accepted; an empty string is ModeDefault.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ModeDefault, nil
	case "post", "typeset":
		return ModeTypeset, nil
	case "pre", "convert":
		return ModeConvert, nil
	default:
		return ModeDefault, fmt.Errorf("unknown render mode %q", s)
	}
}

// HidePolicy controls when a boundary suppresses painting of content that
// has not been typeset yet.
type HidePolicy int

const (
	// HideDefault defers to the enclosing scope's configured policy.
	HideDefault HidePolicy = iota
	// HideNone never suppresses painting.
	HideNone
	// HideFirst hides the boundary until its first completed pass or
	// first skip, then leaves it permanently visible.
	HideFirst
	// HideEvery hides the boundary at the start of each render that
	// precedes a new pass and reveals it when that pass completes. Only
	// effective for dynamic boundaries in typeset mode; convert mode
	// falls back to the initial-load reveal.
	HideEvery
)

func (p HidePolicy) String() string {
	switch p {
	case HideDefault:
		return "default"
	case HideNone:
		return "none"
	case HideFirst:
		return "first"
	case HideEvery:
		return "every"
	default:
		return fmt.Sprintf("HidePolicy(%d)", int(p))
	}
}

// ParseHide maps a config string to a HidePolicy. An empty string is
// HideNone, matching an absent config key.
func ParseHide(s string) (HidePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return HideNone, nil
	case "first":
		return HideFirst, nil
	case "every":
		return HideEvery, nil
	case "none":
		return HideNone, nil
	default:
		return HideNone, fmt.Errorf("unknown hide policy %q", s)
	}
}

// ConvertOptions are passed through to the engine's conversion functions.
type ConvertOptions struct {
	// Display requests display-style (block) output.
	Display bool
	// Em and Ex are font metrics in pixels; zero means engine defaults.
	Em float64
	Ex float64
	// ContainerWidth bounds line breaking; zero means unbounded.
	ContainerWidth float64
	// Scale multiplies the output size; zero means 1.
	Scale float64
}

// Conversion names an engine conversion function plus its option bag.
type Conversion struct {
	Function string
	Options  ConvertOptions
}

// Async reports whether the named function delivers its markup through a
// promise rather than returning synchronously, indicated by the "Promise"
// name suffix.
func (c Conversion) Async() bool {
	return strings.HasSuffix(c.Function, "Promise")
}
