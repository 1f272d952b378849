package wasm_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/wasmpanel/internal/registry"
	"github.com/vk/wasmpanel/internal/testutil/fixtures"
	"github.com/vk/wasmpanel/internal/wasm"
	"github.com/vk/wasmpanel/modules/alert"
)

// newAlertRegistry builds a registry whose alert capability appends into the
// returned slice.
func newAlertRegistry(t *testing.T) (*registry.Registry, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var messages []string
	reg := registry.New()
	alert.New(func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		messages = append(messages, msg)
	}).Register(reg)

	return reg, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), messages...)
	}
}

func newLoader(fetcher wasm.Fetcher, caps []*registry.Capability) *wasm.Loader {
	return wasm.NewLoader(wasm.Config{
		Name:     "computation",
		Artifact: "fixture.wasm",
		Export:   "runComputation",
	}, fetcher, caps)
}

func TestLoader_SuccessfulLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg, messages := newAlertRegistry(t)
	fetcher := &fixtures.CountingFetcher{Data: fixtures.AlertingModule}
	loader := newLoader(fetcher, reg.Capabilities())

	require.Equal(t, wasm.StateIdle, loader.State())

	res := <-loader.Begin(ctx)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Handle)
	require.Equal(t, wasm.StateReady, loader.State())
	t.Cleanup(func() { res.Handle.Close(ctx) })

	// Each invocation delivers exactly one alert, with the fixture's text.
	require.NoError(t, res.Handle.RunComputation(ctx))
	require.Equal(t, []string{fixtures.AlertText}, messages())

	require.NoError(t, res.Handle.RunComputation(ctx))
	require.Equal(t, []string{fixtures.AlertText, fixtures.AlertText}, messages())
}

func TestLoader_BeginIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg, _ := newAlertRegistry(t)
	fetcher := &fixtures.CountingFetcher{Data: fixtures.AlertingModule}
	loader := newLoader(fetcher, reg.Capabilities())

	ch1 := loader.Begin(ctx)
	ch2 := loader.Begin(ctx)
	require.True(t, ch1 == ch2, "every Begin call must return the same channel")

	res := <-ch1
	require.NoError(t, res.Err)
	t.Cleanup(func() { res.Handle.Close(ctx) })

	// Re-initiating after completion must not fetch again.
	ch3 := loader.Begin(ctx)
	require.True(t, ch1 == ch3)
	require.Equal(t, 1, fetcher.Count(), "the artifact must be fetched at most once per process")
}

func TestLoader_ArtifactMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	loader := wasm.NewLoader(wasm.Config{
		Name:     "computation",
		Artifact: "/definitely/not/here.wasm",
		Export:   "runComputation",
	}, wasm.NewFetcher("/definitely/not/here.wasm"), nil)

	res := <-loader.Begin(ctx)
	require.ErrorIs(t, res.Err, wasm.ErrArtifactNotFound)
	require.Nil(t, res.Handle)
	require.Equal(t, wasm.StateFailed, loader.State())
}

func TestLoader_CorruptArtifact(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fetcher := &fixtures.CountingFetcher{Data: fixtures.CorruptModule}
	loader := newLoader(fetcher, nil)

	res := <-loader.Begin(ctx)
	require.ErrorIs(t, res.Err, wasm.ErrBadArtifact)
	require.Equal(t, wasm.StateFailed, loader.State())
}

func TestLoader_MissingExport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fetcher := &fixtures.CountingFetcher{Data: fixtures.NoExportModule}
	loader := newLoader(fetcher, nil)

	res := <-loader.Begin(ctx)
	require.ErrorIs(t, res.Err, wasm.ErrIncompatible)
	require.ErrorContains(t, res.Err, `export "runComputation" not found`)
}

func TestLoader_NonNullaryExport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fetcher := &fixtures.CountingFetcher{Data: fixtures.NonNullaryModule}
	loader := newLoader(fetcher, nil)

	res := <-loader.Begin(ctx)
	require.ErrorIs(t, res.Err, wasm.ErrIncompatible)
	require.Equal(t, wasm.StateFailed, loader.State())
}

func TestLoader_ResultChannelCloses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg, _ := newAlertRegistry(t)
	fetcher := &fixtures.CountingFetcher{Data: fixtures.AlertingModule}
	loader := newLoader(fetcher, reg.Capabilities())

	ch := loader.Begin(ctx)
	res := <-ch
	require.NoError(t, res.Err)
	t.Cleanup(func() { res.Handle.Close(ctx) })

	// Exactly one result is delivered; afterwards the channel reads closed.
	_, open := <-ch
	require.False(t, open, "result channel must be closed after the single result")
}

func TestState_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "idle", wasm.StateIdle.String())
	require.Equal(t, "loading", wasm.StateLoading.String())
	require.Equal(t, "ready", wasm.StateReady.String())
	require.Equal(t, "failed", wasm.StateFailed.String())
}
