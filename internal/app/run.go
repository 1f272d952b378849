package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vk/wasmpanel/internal/ctxlog"
	"github.com/vk/wasmpanel/internal/shell"
	"github.com/vk/wasmpanel/internal/wasm"
)

// Run executes the main application flow: begin the module load, await its
// single result, and mount the shell only inside the success path. On load
// failure the shell never mounts and the error propagates to the caller.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.appConfig.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.appConfig.HealthcheckPort)
	}

	handle, err := a.AwaitModule(ctx)
	if err != nil {
		return err
	}
	defer handle.Close(ctx)

	model := shell.New(shell.Config{
		Heading: a.config.Shell.Heading,
		Button:  a.config.Shell.Button,
		Run:     handle.RunComputation,
		Alerts:  a.alerts,
	})

	a.mounted.Store(true)
	a.logger.Info("🚀 Mounting panel shell.", "module", a.config.Module.Name, "export", handle.Export())
	if err := shell.Mount(ctx, model, tea.WithOutput(a.outW)); err != nil {
		return fmt.Errorf("shell failed: %w", err)
	}
	a.logger.Info("🏁 Shell exited.")

	return nil
}

// AwaitModule initiates the load (idempotently) and blocks until its single
// result arrives. It is the load phase of Run, exposed separately so tests
// can exercise loading without mounting a terminal program.
func (a *App) AwaitModule(ctx context.Context) (*wasm.Handle, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	select {
	case res := <-a.loader.Begin(ctx):
		if res.Err != nil {
			a.logger.Error("Computation module load failed.", "module", a.config.Module.Name, "error", res.Err)
			return nil, res.Err
		}
		return res.Handle, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
