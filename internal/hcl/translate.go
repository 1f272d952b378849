// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/wasmpanel/internal/config"
)

// translateModule converts an HCL module block into the agnostic model,
// evaluating the artifact expression against the shared evaluation context.
func (l *Loader) translateModule(ctx context.Context, m *moduleBlock, evalCtx *hcl.EvalContext) (*config.Module, error) {
	val, diags := m.Artifact.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid artifact expression for module %q: %w", m.Name, diags)
	}

	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return nil, fmt.Errorf("artifact for module %q must be a string: %w", m.Name, err)
	}
	if converted.IsNull() || converted.AsString() == "" {
		return nil, fmt.Errorf("artifact for module %q must not be empty", m.Name)
	}

	return &config.Module{
		Name:     m.Name,
		Artifact: converted.AsString(),
		Export:   m.Export,
	}, nil
}

// newEvalContext builds the evaluation context available to panel file
// expressions. Currently it exposes one object, `env`, holding the process
// environment, so artifact paths can be parameterized per machine.
func newEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
