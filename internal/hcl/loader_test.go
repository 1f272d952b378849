package hcl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/wasmpanel/internal/hcl"
)

func writePanel(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestLoad_ModuleWithDefaults(t *testing.T) {
	t.Parallel()

	dir := writePanel(t, map[string]string{
		"panel.hcl": `
module "computation" {
  artifact = "build/computation.wasm"
}
`,
	})

	model, err := hcl.NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	require.Equal(t, "computation", model.Module.Name)
	require.Equal(t, "build/computation.wasm", model.Module.Artifact)
	require.Equal(t, "runComputation", model.Module.Export)
	require.Equal(t, "wasmpanel", model.Shell.Heading)
	require.Equal(t, "Run Computation", model.Shell.Button)
}

func TestLoad_ShellOverridesAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := writePanel(t, map[string]string{
		"module.hcl": `
module "computation" {
  artifact = "computation.wasm"
  export   = "transform"
}
`,
		"shell.hcl": `
shell {
  heading = "Number Cruncher"
  button  = "Crunch"
}
`,
	})

	model, err := hcl.NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	require.Equal(t, "transform", model.Module.Export)
	require.Equal(t, "Number Cruncher", model.Shell.Heading)
	require.Equal(t, "Crunch", model.Shell.Button)
}

func TestLoad_SingleFilePath(t *testing.T) {
	t.Parallel()

	dir := writePanel(t, map[string]string{
		"panel.hcl": `
module "computation" {
  artifact = "computation.wasm"
}
`,
	})

	model, err := hcl.NewLoader().Load(context.Background(), filepath.Join(dir, "panel.hcl"))
	require.NoError(t, err)
	require.Equal(t, "computation.wasm", model.Module.Artifact)
}

func TestLoad_EnvInterpolation(t *testing.T) {
	t.Setenv("WASMPANEL_TEST_ARTIFACT_DIR", "/opt/panels")

	dir := writePanel(t, map[string]string{
		"panel.hcl": `
module "computation" {
  artifact = "${env.WASMPANEL_TEST_ARTIFACT_DIR}/computation.wasm"
}
`,
	})

	model, err := hcl.NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, "/opt/panels/computation.wasm", model.Module.Artifact)
}

func TestLoad_NoModuleBlock(t *testing.T) {
	t.Parallel()

	dir := writePanel(t, map[string]string{
		"panel.hcl": `
shell {
  heading = "Empty"
}
`,
	})

	_, err := hcl.NewLoader().Load(context.Background(), dir)
	require.ErrorIs(t, err, hcl.ErrNoPanel)
}

func TestLoad_DuplicateModuleBlocks(t *testing.T) {
	t.Parallel()

	dir := writePanel(t, map[string]string{
		"a.hcl": `
module "first" {
  artifact = "a.wasm"
}
`,
		"b.hcl": `
module "second" {
  artifact = "b.wasm"
}
`,
	})

	_, err := hcl.NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate module block")
}

func TestLoad_DuplicateShellBlocks(t *testing.T) {
	t.Parallel()

	dir := writePanel(t, map[string]string{
		"panel.hcl": `
module "computation" {
  artifact = "computation.wasm"
}

shell {
  heading = "One"
}

shell {
  heading = "Two"
}
`,
	})

	_, err := hcl.NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate shell block")
}

func TestLoad_EmptyArtifact(t *testing.T) {
	t.Parallel()

	dir := writePanel(t, map[string]string{
		"panel.hcl": `
module "computation" {
  artifact = ""
}
`,
	})

	_, err := hcl.NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be empty")
}

func TestLoad_UnknownBlockIsRejected(t *testing.T) {
	t.Parallel()

	dir := writePanel(t, map[string]string{
		"panel.hcl": `
module "computation" {
  artifact = "computation.wasm"
}

widget "clock" {}
`,
	})

	_, err := hcl.NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode HCL file")
}

func TestLoad_InvalidSyntax(t *testing.T) {
	t.Parallel()

	dir := writePanel(t, map[string]string{
		"panel.hcl": `
module "computation" {
  artifact =
`,
	})

	_, err := hcl.NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := hcl.NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "error accessing path")
}
