// Package fixtures holds test doubles that depend on nothing above the wasm
// loader: hand-assembled artifact binaries and fake fetchers. It must stay
// import-free of internal/app so in-package app tests can use it alongside
// the testutil harness.
package fixtures
