package wasm

import "errors"

// The load failure taxonomy. Every error returned from a load wraps exactly
// one of these sentinels, so callers can classify with errors.Is.
var (
	// ErrArtifactNotFound means the artifact could not be fetched at all:
	// missing file, unreachable URL or a non-2xx response.
	ErrArtifactNotFound = errors.New("computation artifact not found")

	// ErrBadArtifact means the fetched bytes are not a valid wasm module, or
	// the module failed to instantiate.
	ErrBadArtifact = errors.New("malformed computation artifact")

	// ErrIncompatible means the artifact is a valid module but does not
	// expose the configured export as a nullary function.
	ErrIncompatible = errors.New("incompatible computation artifact")
)
