package hcl

import "github.com/hashicorp/hcl/v2"

// moduleBlock represents a `module` block from a panel file. It declares the
// compiled computation artifact the loader fetches and instantiates.
type moduleBlock struct {
	Name string `hcl:"name,label"`
	// Artifact stays an expression so panel files can reference the `env`
	// object, e.g. artifact = "${env.HOME}/computation.wasm".
	Artifact hcl.Expression `hcl:"artifact"`
	Export   string         `hcl:"export,optional"`
}

// shellBlock represents a `shell` block from a panel file.
type shellBlock struct {
	Heading string `hcl:"heading,optional"`
	Button  string `hcl:"button,optional"`
}

// fileRoot is a struct used to decode all top-level blocks from any panel
// file. There is intentionally no `remain` body: an unknown block is a
// configuration error, not something to silently skip.
type fileRoot struct {
	Modules []*moduleBlock `hcl:"module,block"`
	Shells  []*shellBlock  `hcl:"shell,block"`
}
