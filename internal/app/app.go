package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/vk/wasmpanel/internal/config"
	"github.com/vk/wasmpanel/internal/ctxlog"
	"github.com/vk/wasmpanel/internal/registry"
	"github.com/vk/wasmpanel/internal/wasm"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	appConfig *Config
	registry  *registry.Registry
	config    *config.Model
	loader    *wasm.Loader
	alerts    chan string
	mounted   atomic.Bool
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, registry and
// module loader. A failure to load configuration is a fatal startup error
// and panics; cmd/cli recovers it into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfgModel, err := loader.Load(ctx, appConfig.PanelPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	a := &App{
		outW:      outW,
		logger:    logger,
		appConfig: appConfig,
		config:    cfgModel,
		alerts:    make(chan string, 8),
	}

	// Create and populate the registry of host capabilities.
	reg := registry.New()
	if len(modules) == 0 {
		modules = a.coreModules()
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All capability modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		// This is a programmer error (a broken capability module), so we panic.
		panic(err)
	}
	a.registry = reg

	a.loader = wasm.NewLoader(
		wasm.Config{
			Name:     cfgModel.Module.Name,
			Artifact: cfgModel.Module.Artifact,
			Export:   cfgModel.Module.Export,
		},
		wasm.NewFetcher(cfgModel.Module.Artifact),
		reg.Capabilities(),
	)

	return a
}

// publishAlert is the sink handed to the alert capability. Publishing never
// blocks the guest: when the shell is not draining, the message is dropped.
func (a *App) publishAlert(msg string) {
	select {
	case a.alerts <- msg:
	default:
		a.logger.Debug("Alert dropped: shell not draining.", "message", msg)
	}
}
