// Package widgets provides the built-in widget set for mathview documents.
//
// The set is deliberately small: layout primitives (Row, Column, Padding,
// SizedBox, Center), a Text widget backed by the graphics text layouter,
// and an ErrorBoundary for containing build failures. Typeset content
// widgets live in pkg/typeset and compose these primitives.
//
// All render widgets embed core.RenderObjectBase and expose their children
// through either Child() or Children(), which is how the element layer
// discovers and syncs the render tree.
package widgets
