package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads panel configuration from the given paths (files or
	// directories), translates it into the format-agnostic model, applies
	// defaults and returns the merged result.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
