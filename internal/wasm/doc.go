// Package wasm loads and instantiates the compiled computation module.
//
// The loader is a one-shot state machine (idle → loading → ready|failed):
// the underlying load starts at most once per process, cannot be cancelled
// or retried, and delivers exactly one result over the channel returned by
// Begin. On success the result carries an opaque Handle exposing the
// module's configured export as a nullary function.
package wasm
