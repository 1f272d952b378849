// Package registry holds the set of host capabilities offered to a loaded
// computation module. Capabilities are the only way a guest reaches back
// into the host: each one is a named function installed into a wasm host
// module (conventionally "env") at instantiation time.
package registry
