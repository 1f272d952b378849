package alert

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/vk/wasmpanel/internal/ctxlog"
	"github.com/vk/wasmpanel/internal/registry"
)

// Module exposes `env.alert(ptr, len)` to the guest: the computation module
// hands the host a UTF-8 message, and the host forwards it to the Notify
// sink (in the app, the shell's status line).
type Module struct {
	notify func(string)
}

// New creates the alert module with the given notification sink. A nil sink
// drops messages.
func New(notify func(string)) *Module {
	return &Module{notify: notify}
}

// alert reads the message bytes from guest linear memory and forwards them.
// An out-of-range read is the guest's fault and is logged, not fatal.
func (m *Module) alert(ctx context.Context, mod api.Module, ptr, size uint32) {
	logger := ctxlog.FromContext(ctx)

	buf, ok := mod.Memory().Read(ptr, size)
	if !ok {
		logger.Warn("Guest alert pointed outside linear memory.", "ptr", ptr, "len", size)
		return
	}

	msg := string(buf)
	logger.Debug("Guest alert received.", "message", msg)
	if m.notify != nil {
		m.notify(msg)
	}
}

// Register registers the capability with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCapability(&registry.Capability{
		Module: registry.HostModule,
		Name:   "alert",
		Doc:    "Show a message to the user. Signature: alert(ptr: u32, len: u32).",
		Fn:     m.alert,
	})
}
