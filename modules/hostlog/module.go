package hostlog

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/vk/wasmpanel/internal/ctxlog"
	"github.com/vk/wasmpanel/internal/registry"
)

// Module exposes `env.log(ptr, len)` so the guest can write into the host's
// structured log instead of inventing its own output channel.
type Module struct{}

// New creates the hostlog module.
func New() *Module {
	return &Module{}
}

func (m *Module) log(ctx context.Context, mod api.Module, ptr, size uint32) {
	logger := ctxlog.FromContext(ctx)

	buf, ok := mod.Memory().Read(ptr, size)
	if !ok {
		logger.Warn("Guest log message pointed outside linear memory.", "ptr", ptr, "len", size)
		return
	}

	logger.Info(string(buf), "origin", "guest")
}

// Register registers the capability with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCapability(&registry.Capability{
		Module: registry.HostModule,
		Name:   "log",
		Doc:    "Write a message to the host log. Signature: log(ptr: u32, len: u32).",
		Fn:     m.log,
	})
}
