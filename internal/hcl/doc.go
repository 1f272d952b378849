// Package hcl implements the config.Loader interface for HCL-formatted
// panel files. It discovers .hcl files, decodes their blocks and translates
// them into the format-agnostic config model.
package hcl
