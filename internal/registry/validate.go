package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/wasmpanel/internal/ctxlog"
)

// Validate performs an integrity check over the registered capabilities
// before any of them is installed into a host module.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	for _, c := range r.capabilities {
		if c.Module == "" {
			errs = append(errs, fmt.Sprintf("capability %q: empty host module name", c.Name))
		}
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("capability in module %q: empty import name", c.Module))
		}
		if c.Fn == nil {
			errs = append(errs, fmt.Sprintf("capability %q: nil host function", c.key()))
		}
		if c.Doc == "" {
			logger.Warn("Capability registered without documentation.", "capability", c.key())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "capability_count", len(r.capabilities))
	return nil
}
