// Package config defines the format-agnostic configuration model for a
// wasmpanel instance, along with the Loader interface that concrete
// configuration formats (currently HCL) implement.
//
// The `config.Model` is the single source of truth for the computation
// module loader and the shell.
package config
