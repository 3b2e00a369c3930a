package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/layout"
	"github.com/go-drift/mathview/pkg/widgets"
)

// Finder locates elements in the widget tree.
type Finder interface {
	// Evaluate returns all matching elements under root in depth-first
	// pre-order.
	Evaluate(root core.Element) []core.Element
	// Description returns a human-readable description for failures.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

// First returns the first match. Panics if there are none.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("finder matched no elements: %s", r.describe()))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics when out of range.
func (r FinderResult) At(index int) core.Element {
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("finder index %d out of range (found %d): %s", index, len(r.elements), r.describe()))
	}
	return r.elements[index]
}

// All returns every match in traversal order.
func (r FinderResult) All() []core.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists reports whether anything matched.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Widget returns the first match's widget. Panics if there are none.
func (r FinderResult) Widget() core.Widget {
	return r.First().Widget()
}

// RenderObject returns the first match's render object, nil when the
// element has none.
func (r FinderResult) RenderObject() layout.RenderObject {
	return extractRenderObject(r.First())
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// typeFinder matches elements whose widget has the given dynamic type.
type typeFinder struct {
	widgetType reflect.Type
	typeName   string
}

func (f *typeFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		return reflect.TypeOf(e.Widget()) == f.widgetType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typeName)
}

// ByType matches elements whose widget is exactly type T.
func ByType[T core.Widget]() Finder {
	t := reflect.TypeFor[T]()
	return &typeFinder{widgetType: t, typeName: t.String()}
}

// keyFinder matches elements whose widget key equals the given key.
type keyFinder struct {
	key any
}

func (f *keyFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		k := e.Widget().Key()
		if k == nil || f.key == nil {
			return k == nil && f.key == nil
		}
		// Non-comparable keys (slices, maps) fall back to DeepEqual.
		if !reflect.TypeOf(k).Comparable() || !reflect.TypeOf(f.key).Comparable() {
			return reflect.DeepEqual(k, f.key)
		}
		return k == f.key
	})
}

func (f *keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%v)", f.key)
}

// ByKey matches elements whose widget key equals key.
func ByKey(key any) Finder {
	return &keyFinder{key: key}
}

// textFinder matches widgets.Text elements by exact content.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		t, ok := e.Widget().(widgets.Text)
		return ok && t.Content == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText matches [widgets.Text] with exactly the given content.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches widgets.Text elements by substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		t, ok := e.Widget().(widgets.Text)
		return ok && strings.Contains(t.Content, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining matches [widgets.Text] containing substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// predicateFinder matches elements satisfying an arbitrary predicate.
type predicateFinder struct {
	fn   func(core.Element) bool
	desc string
}

func (f *predicateFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate matches elements for which fn returns true.
func ByPredicate(fn func(core.Element) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder matches elements satisfying matching inside subtrees
// of elements satisfying of.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root core.Element) []core.Element {
	ancestors := f.of.Evaluate(root)
	if len(ancestors) == 0 {
		return nil
	}
	var results []core.Element
	seen := make(map[core.Element]bool)
	for _, ancestor := range ancestors {
		ancestor.VisitChildren(func(child core.Element) bool {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
			return true
		})
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant matches elements satisfying matching that sit below an
// element satisfying of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder matches elements satisfying matching whose subtree
// holds an element satisfying of.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root core.Element) []core.Element {
	descendants := f.of.Evaluate(root)
	if len(descendants) == 0 {
		return nil
	}
	var results []core.Element
	for _, candidate := range f.matching.Evaluate(root) {
		for _, desc := range descendants {
			if candidate != desc && isAncestorOf(candidate, desc) {
				results = append(results, candidate)
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor matches elements satisfying matching that sit above an
// element satisfying of.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// isAncestorOf reports whether descendant is inside ancestor's subtree.
func isAncestorOf(ancestor, descendant core.Element) bool {
	found := false
	walkTree(ancestor, func(e core.Element) bool {
		if e == descendant {
			found = true
			return false
		}
		return true
	})
	return found
}

// collectMatches gathers elements satisfying predicate in depth-first
// pre-order.
func collectMatches(root core.Element, predicate func(core.Element) bool) []core.Element {
	var results []core.Element
	walkTree(root, func(e core.Element) bool {
		if predicate(e) {
			results = append(results, e)
		}
		return true
	})
	return results
}

// walkTree traverses depth-first pre-order; the visitor returns false to
// stop.
func walkTree(root core.Element, visitor func(core.Element) bool) {
	if !visitor(root) {
		return
	}
	root.VisitChildren(func(child core.Element) bool {
		walkTree(child, visitor)
		return true
	})
}
