// Package shell renders the panel UI: a heading and a single button wired
// to the loaded computation. The shell is only ever constructed after the
// module loader has resolved, so the button can never reach an unresolved
// handle.
package shell
