package hcl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/wasmpanel/internal/config"
	"github.com/vk/wasmpanel/internal/ctxlog"
	"github.com/vk/wasmpanel/internal/fsutil"
)

// ErrNoPanel is returned when the given paths contain no module block at all.
var ErrNoPanel = errors.New("no panel configuration found")

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL loading process: file discovery, parsing,
// decoding, translation into the agnostic model and cross-file merging.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findPanelFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files), "files", files)

	evalCtx := newEvalContext()
	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, mod := range root.Modules {
			translated, err := l.translateModule(ctx, mod, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			if model.Module != nil {
				return nil, fmt.Errorf("duplicate module block %q in %s: module %q is already declared", mod.Name, file, model.Module.Name)
			}
			model.Module = translated
		}
		for _, sh := range root.Shells {
			if model.Shell != nil {
				return nil, fmt.Errorf("duplicate shell block in %s", file)
			}
			model.Shell = &config.Shell{Heading: sh.Heading, Button: sh.Button}
		}
	}

	if model.Module == nil {
		return nil, ErrNoPanel
	}
	applyDefaults(model)

	logger.Debug("HCL loading complete.", "module", model.Module.Name, "artifact", model.Module.Artifact, "export", model.Module.Export)
	return model, nil
}

// applyDefaults fills in the optional parts of a merged model.
func applyDefaults(model *config.Model) {
	if model.Module.Export == "" {
		model.Module.Export = config.DefaultExport
	}
	if model.Shell == nil {
		model.Shell = &config.Shell{}
	}
	if model.Shell.Heading == "" {
		model.Shell.Heading = config.DefaultHeading
	}
	if model.Shell.Button == "" {
		model.Shell.Button = config.DefaultButton
	}
}

// findPanelFiles resolves each configured path to a flat, de-duplicated list
// of .hcl files. A path may be a single file or a directory tree.
func (l *Loader) findPanelFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, ok := seen[p]; !ok {
			all = append(all, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, p := range found {
				add(p)
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	return all, nil
}
