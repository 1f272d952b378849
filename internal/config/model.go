package config

// DefaultExport is the export invoked when a module block does not name one.
const DefaultExport = "runComputation"

// Default shell labels, applied when the panel files omit a shell block.
const (
	DefaultHeading = "wasmpanel"
	DefaultButton  = "Run Computation"
)

// Model is the unified, format-agnostic representation of the entire panel
// configuration: the one computation module plus the shell presentation.
type Model struct {
	Module *Module
	Shell  *Shell
}

// Module is the format-agnostic representation of a `module` block. It names
// the compiled computation artifact and the export the shell's button invokes.
type Module struct {
	Name     string
	Artifact string
	Export   string
}

// Shell is the format-agnostic representation of a `shell` block.
type Shell struct {
	Heading string
	Button  string
}
