package registry

import "fmt"

// HostModule is the wasm import module name under which core capabilities
// are exported.
const HostModule = "env"

// Capability is a single host function offered to the guest. Fn must be a
// wazero-compatible Go function; guest-memory access is available to
// signatures that accept an api.Module parameter.
type Capability struct {
	Module string
	Name   string
	Doc    string
	Fn     any
}

// key returns the fully qualified import name, e.g. "env.alert".
func (c *Capability) key() string {
	return c.Module + "." + c.Name
}

// Module is the interface that all core modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered capabilities for a single application
// instance. Registration order is preserved so host modules are assembled
// deterministically.
type Registry struct {
	capabilities []*Capability
	index        map[string]*Capability
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		index: make(map[string]*Capability),
	}
}

// RegisterCapability adds a capability to the registry. Registering the same
// import name twice is a programmer error, so it panics.
func (r *Registry) RegisterCapability(c *Capability) {
	if _, exists := r.index[c.key()]; exists {
		panic(fmt.Sprintf("registry: capability %q registered twice", c.key()))
	}
	r.capabilities = append(r.capabilities, c)
	r.index[c.key()] = c
}

// Capabilities returns all registered capabilities in registration order.
func (r *Registry) Capabilities() []*Capability {
	return r.capabilities
}
