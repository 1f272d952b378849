package app

import (
	"github.com/vk/wasmpanel/internal/registry"
	"github.com/vk/wasmpanel/modules/alert"
	"github.com/vk/wasmpanel/modules/hostlog"
)

// coreModules returns the default capability set offered to every guest.
func (a *App) coreModules() []registry.Module {
	return []registry.Module{
		alert.New(a.publishAlert),
		hostlog.New(),
	}
}
