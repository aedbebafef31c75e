// Package reactive provides the dependency-tracking substrate the routing
// engine is built on: signals (mutable cells), memos (cached derivations),
// effects (re-running observers), batches, and the transition scheduler used
// to stage navigation commits.
//
// Reading a Signal or Memo inside a tracked context (a memo computation or
// an effect body) subscribes the current listener; writes notify subscribers
// once the outermost batch completes. Evaluation is cooperative and
// single-threaded per goroutine: propagation never re-enters a computation
// that is already running.
package reactive
