package wasm

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Handle is the opaque reference to a loaded computation module. It is
// created once by a successful load, never mutated, and closed at teardown.
type Handle struct {
	runtime wazero.Runtime
	module  api.Module
	export  string
	fn      api.Function
}

// RunComputation invokes the module's configured export. The export takes no
// arguments and returns no value; a guest trap surfaces as an error.
func (h *Handle) RunComputation(ctx context.Context) error {
	if _, err := h.fn.Call(ctx); err != nil {
		return fmt.Errorf("computation %q failed: %w", h.export, err)
	}
	return nil
}

// Export returns the name of the guest function the handle delegates to.
func (h *Handle) Export() string {
	return h.export
}

// Close tears down the module and everything its runtime created.
func (h *Handle) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}
