// Package typeset binds asynchronous math typesetting engines into the
// widget tree.
//
// The central widget is [Math], a boundary around content whose math
// markup is processed by an ambient engine. A [Provider] higher in the
// tree owns engine acquisition and exposes it through an inherited
// [Scope] carrying an awaitable [Handle]; boundaries read the handle and
// ambient defaults from the scope and never construct engines themselves.
//
// Each boundary serializes its own engine work: at most one pass is in
// flight per instance, guarded by a boolean latch on the UI thread.
// Trigger checks run during build; engine invocations are deferred
// through the dispatch queue so they start after the committing frame
// has painted. Completions are delivered back to the UI thread the same
// way.
//
// Two engine generations are supported. Version 3 engines implement
// [DocumentEngine]: promise-based typeset passes plus named conversion
// functions. Version 2 engines implement [QueuedEngine]: work and
// completion callbacks enqueued on a shared FIFO queue. The bundled
// implementations live in the texmath (pure Go) and jstex (goja-scripted)
// subpackages.
package typeset
