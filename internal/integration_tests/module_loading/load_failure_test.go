package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/wasmpanel/internal/testutil"
	"github.com/vk/wasmpanel/internal/testutil/fixtures"
	"github.com/vk/wasmpanel/internal/wasm"
)

// Test for: a rejected load leaves the mount point untouched.
func TestModuleLoading_CorruptArtifact_NeverMounts(t *testing.T) {
	result := testutil.RunStartupTest(t,
		map[string]string{"panel.hcl": testutil.PanelHCL("computation.wasm")},
		map[string][]byte{"computation.wasm": fixtures.CorruptModule},
	)

	require.ErrorIs(t, result.Err, wasm.ErrBadArtifact)
	require.Nil(t, result.Handle)
	require.Equal(t, "failed", result.App.LoaderState())
	require.False(t, result.App.Mounted(), "the shell must never mount after a load rejection")
}

// Test for: a missing artifact maps to the not-found error kind.
func TestModuleLoading_MissingArtifact(t *testing.T) {
	result := testutil.RunStartupTest(t,
		map[string]string{"panel.hcl": testutil.PanelHCL("absent.wasm")},
		nil,
	)

	require.ErrorIs(t, result.Err, wasm.ErrArtifactNotFound)
	require.Equal(t, "failed", result.App.LoaderState())
}

// Test for: a valid module without the expected export is incompatible.
func TestModuleLoading_IncompatibleArtifact(t *testing.T) {
	result := testutil.RunStartupTest(t,
		map[string]string{"panel.hcl": testutil.PanelHCL("computation.wasm")},
		map[string][]byte{"computation.wasm": fixtures.NoExportModule},
	)

	require.ErrorIs(t, result.Err, wasm.ErrIncompatible)
	require.False(t, result.App.Mounted())
}

// Test for: a non-nullary export is incompatible even though it has the
// right name.
func TestModuleLoading_NonNullaryExport(t *testing.T) {
	result := testutil.RunStartupTest(t,
		map[string]string{"panel.hcl": testutil.PanelHCL("computation.wasm")},
		map[string][]byte{"computation.wasm": fixtures.NonNullaryModule},
	)

	require.ErrorIs(t, result.Err, wasm.ErrIncompatible)
	require.Contains(t, result.Err.Error(), "no parameters")
}

// Test for: panel files without a module block fail at startup, before any
// load begins.
func TestModuleLoading_NoPanelConfiguration(t *testing.T) {
	result := testutil.RunStartupTest(t,
		map[string]string{"panel.hcl": `shell { heading = "empty" }`},
		nil,
	)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "application startup panicked")
	require.Contains(t, result.Err.Error(), "no panel configuration found")
	require.Nil(t, result.App)
}
