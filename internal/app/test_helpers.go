package app

import (
	"github.com/vk/wasmpanel/internal/registry"
	"github.com/vk/wasmpanel/internal/wasm"
)

// Accessors below expose internals for tests and the healthcheck; production
// code paths do not need them.

// UseFetcher rebuilds the module loader around the given fetcher so tests
// can control artifact delivery. Only meaningful before the load begins.
func (a *App) UseFetcher(f wasm.Fetcher) {
	a.loader = wasm.NewLoader(
		wasm.Config{
			Name:     a.config.Module.Name,
			Artifact: a.config.Module.Artifact,
			Export:   a.config.Module.Export,
		},
		f,
		a.registry.Capabilities(),
	)
}

// Registry returns the application's capability registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// LoaderState reports the module loader's current state.
func (a *App) LoaderState() string {
	return a.loader.State().String()
}

// Alerts returns the feed of guest alert messages.
func (a *App) Alerts() <-chan string {
	return a.alerts
}

// Mounted reports whether the shell was ever constructed and mounted.
func (a *App) Mounted() bool {
	return a.mounted.Load()
}
