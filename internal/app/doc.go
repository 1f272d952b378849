// Package app wires the application together: it owns the isolated logger,
// loads the panel configuration, assembles the capability registry, drives
// the computation module loader and mounts the shell once the load resolves.
package app
