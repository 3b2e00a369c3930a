package graphics

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16
)

// FontWeight represents a numeric font weight.
type FontWeight int

const (
	FontWeightNormal   FontWeight = 400
	FontWeightMedium   FontWeight = 500
	FontWeightSemibold FontWeight = 600
	FontWeightBold     FontWeight = 700
)

// String returns a human-readable representation of the font weight.
func (w FontWeight) String() string {
	switch w {
	case FontWeightNormal:
		return "normal"
	case FontWeightMedium:
		return "medium"
	case FontWeightSemibold:
		return "semibold"
	case FontWeightBold:
		return "bold"
	default:
		return fmt.Sprintf("FontWeight(%d)", int(w))
	}
}

// FontStyle represents normal or italic text styles.
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

// String returns a human-readable representation of the font style.
func (s FontStyle) String() string {
	switch s {
	case FontStyleNormal:
		return "normal"
	case FontStyleItalic:
		return "italic"
	default:
		return fmt.Sprintf("FontStyle(%d)", int(s))
	}
}

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color      Color
	FontFamily string
	FontSize   float64
	FontWeight FontWeight
	FontStyle  FontStyle
}

// WithColor returns a copy of the TextStyle with the specified color.
func (s TextStyle) WithColor(c Color) TextStyle {
	s.Color = c
	return s
}

// TextLine represents a single laid-out line of text.
type TextLine struct {
	Text  string
	Width float64
}

// TextLayout contains measured text metrics and a resolved font face.
type TextLayout struct {
	Text       string
	Style      TextStyle
	Size       Size
	Ascent     float64
	Descent    float64
	LineHeight float64
	Lines      []TextLine
	Face       font.Face
}

// FontManager resolves font faces for text measurement.
//
// A bundled bitmap face backs every family that has not been registered
// explicitly, so measurement always succeeds in headless environments.
// Embedders with real font stacks register faces per family name.
type FontManager struct {
	mu    sync.RWMutex
	faces map[string]font.Face
}

// NewFontManager creates a font manager backed by the bundled face.
func NewFontManager() *FontManager {
	return &FontManager{faces: make(map[string]font.Face)}
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerOnce sync.Once
)

// DefaultFontManager returns a shared font manager with the bundled face.
func DefaultFontManager() *FontManager {
	defaultFontManagerOnce.Do(func() {
		defaultFontManager = NewFontManager()
	})
	return defaultFontManager
}

// RegisterFace registers a font face for a family name.
func (m *FontManager) RegisterFace(name string, face font.Face) error {
	if name == "" {
		return errors.New("font name required")
	}
	if face == nil {
		return errors.New("font face required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces[name] = face
	return nil
}

// Face resolves a font face for the given style, falling back to the
// bundled face when the family is unknown.
func (m *FontManager) Face(style TextStyle) font.Face {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if face, ok := m.faces[style.FontFamily]; ok {
		return face
	}
	return basicfont.Face7x13
}

// LayoutText measures text with the provided font manager.
//
// Metrics scale linearly from the face's native size to the style's
// FontSize. A nil manager uses [DefaultFontManager].
func LayoutText(text string, style TextStyle, manager *FontManager) *TextLayout {
	if manager == nil {
		manager = DefaultFontManager()
	}
	face := manager.Face(style)
	metrics := face.Metrics()

	nativeAscent := fixedToFloat(metrics.Ascent)
	nativeDescent := fixedToFloat(metrics.Descent)
	nativeHeight := fixedToFloat(metrics.Height)
	if nativeHeight <= 0 {
		nativeHeight = nativeAscent + nativeDescent
	}

	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	scale := 1.0
	if nativeHeight > 0 {
		scale = size / nativeHeight
	}

	var lines []TextLine
	maxWidth := 0.0
	for _, raw := range strings.Split(text, "\n") {
		width := fixedToFloat(font.MeasureString(face, raw)) * scale
		if width > maxWidth {
			maxWidth = width
		}
		lines = append(lines, TextLine{Text: raw, Width: width})
	}

	lineHeight := nativeHeight * scale
	return &TextLayout{
		Text:       text,
		Style:      style,
		Size:       Size{Width: maxWidth, Height: lineHeight * float64(len(lines))},
		Ascent:     nativeAscent * scale,
		Descent:    nativeDescent * scale,
		LineHeight: lineHeight,
		Lines:      lines,
		Face:       face,
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
