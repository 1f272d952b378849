// Package cli parses the command line into an app.Config. It owns flag
// definitions, usage text and argument validation, but no application logic.
package cli
