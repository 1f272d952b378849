package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/wasmpanel/internal/app"
	"github.com/vk/wasmpanel/internal/hcl"
	"github.com/vk/wasmpanel/internal/wasm"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Handle    *wasm.Handle
}

// RunStartupTest provides a standardized harness for integration tests: it
// writes the given panel files and artifacts into a temporary directory,
// boots the app against them and runs the load phase.
//
// File contents may reference the temporary directory as "{{dir}}", which is
// how panel files point at artifacts written by the same test. Instead of
// calling the full app.Run(), the harness calls app.AwaitModule() directly:
// loading tests stay focused and never need a terminal to mount into.
func RunStartupTest(t *testing.T, files map[string]string, artifacts map[string][]byte) *HarnessResult {
	t.Helper()
	return RunStartupTestWithContext(context.Background(), t, files, artifacts)
}

// RunStartupTestWithContext is RunStartupTest with a caller-provided context.
func RunStartupTestWithContext(ctx context.Context, t *testing.T, files map[string]string, artifacts map[string][]byte) *HarnessResult {
	t.Helper()
	return RunStartupTestWithFetcher(ctx, t, files, artifacts, nil)
}

// RunStartupTestWithFetcher additionally swaps the app's artifact fetcher
// before the load phase. A nil fetcher keeps the one derived from the panel
// configuration.
func RunStartupTestWithFetcher(ctx context.Context, t *testing.T, files map[string]string, artifacts map[string][]byte, fetcher wasm.Fetcher) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root directory for the test.
	tmpDir, err := os.MkdirTemp("", ".tmp-wasmpanel-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	// 2. Write artifacts first so panel files can reference them.
	for name, content := range artifacts {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, content, 0644))
	}
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		content = strings.ReplaceAll(content, "{{dir}}", tmpDir)
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.Config{
		PanelPath: tmpDir,
		LogLevel:  "debug",
		LogFormat: "text",
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("WASMPANEL_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader())
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			App:       nil,
		}
	}

	if fetcher != nil {
		testApp.UseFetcher(fetcher)
	}

	// Run the load phase only; mounting the shell is exercised elsewhere.
	handle, runErr := testApp.AwaitModule(ctx)
	if handle != nil {
		t.Cleanup(func() { handle.Close(context.Background()) })
	}

	if os.Getenv("WASMPANEL_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Handle:    handle,
	}
}

// PanelHCL renders a minimal panel file pointing at an artifact path
// relative to the harness's temporary directory.
func PanelHCL(artifact string) string {
	return fmt.Sprintf(`
module "computation" {
  artifact = "{{dir}}/%s"
}
`, artifact)
}
