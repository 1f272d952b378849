package wasm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/vk/wasmpanel/internal/ctxlog"
	"github.com/vk/wasmpanel/internal/registry"
)

// State is the loader's observable lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns the lowercase name of the state, as reported by the
// healthcheck endpoint and log attributes.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Result is the single outcome of a load: exactly one of Handle or Err is
// set.
type Result struct {
	Handle *Handle
	Err    error
}

// Config describes the artifact a Loader instantiates.
type Config struct {
	Name     string
	Artifact string
	Export   string
}

// Loader fetches and instantiates the computation module exactly once per
// process lifetime.
type Loader struct {
	cfg     Config
	fetcher Fetcher
	caps    []*registry.Capability

	state atomic.Int32
	once  sync.Once
	done  chan Result
}

// NewLoader creates an idle loader for the configured artifact. The given
// capabilities are installed into host modules before instantiation.
func NewLoader(cfg Config, fetcher Fetcher, caps []*registry.Capability) *Loader {
	return &Loader{
		cfg:     cfg,
		fetcher: fetcher,
		caps:    caps,
		done:    make(chan Result, 1),
	}
}

// State reports the loader's current lifecycle state.
func (l *Loader) State() State {
	return State(l.state.Load())
}

// Begin initiates the asynchronous load. Initiation is idempotent: the load
// starts at most once, and every call returns the same channel. The channel
// receives exactly one Result and is then closed. There is no cancellation
// of an in-flight load.
func (l *Loader) Begin(ctx context.Context) <-chan Result {
	l.once.Do(func() {
		l.state.Store(int32(StateLoading))
		go l.load(ctx)
	})
	return l.done
}

// load runs the whole fetch → compile → check → instantiate pipeline and
// delivers the terminal result.
func (l *Loader) load(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Computation module load started.", "module", l.cfg.Name, "artifact", l.cfg.Artifact)

	handle, err := l.instantiate(ctx)
	if err != nil {
		l.state.Store(int32(StateFailed))
		logger.Debug("Computation module load failed.", "module", l.cfg.Name, "error", err)
		l.done <- Result{Err: err}
	} else {
		l.state.Store(int32(StateReady))
		logger.Info("🧩 Computation module ready.", "module", l.cfg.Name, "export", l.cfg.Export)
		l.done <- Result{Handle: handle}
	}
	close(l.done)
}

func (l *Loader) instantiate(ctx context.Context) (*Handle, error) {
	data, err := l.fetcher.Fetch(ctx, l.cfg.Artifact)
	if err != nil {
		return nil, err
	}

	rt := wazero.NewRuntime(ctx)
	success := false
	defer func() {
		if !success {
			rt.Close(ctx)
		}
	}()

	compiled, err := rt.CompileModule(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %s: %v", ErrBadArtifact, l.cfg.Artifact, err)
	}

	// Compatibility check before anything runs: the export must exist and be
	// nullary.
	def, ok := compiled.ExportedFunctions()[l.cfg.Export]
	if !ok {
		return nil, fmt.Errorf("%w: export %q not found in %s", ErrIncompatible, l.cfg.Export, l.cfg.Artifact)
	}
	if len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 0 {
		return nil, fmt.Errorf("%w: export %q must take no parameters and return no results", ErrIncompatible, l.cfg.Export)
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		return nil, fmt.Errorf("%w: instantiating WASI: %v", ErrBadArtifact, err)
	}
	if err := l.instantiateHostModules(ctx, rt); err != nil {
		return nil, err
	}

	// Reactor-style modules initialize via _initialize; a command-style
	// _start is deliberately not run here.
	modConfig := wazero.NewModuleConfig().
		WithName(l.cfg.Name).
		WithStartFunctions("_initialize")

	module, err := rt.InstantiateModule(ctx, compiled, modConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: instantiating %s: %v", ErrBadArtifact, l.cfg.Artifact, err)
	}

	success = true
	return &Handle{
		runtime: rt,
		module:  module,
		export:  l.cfg.Export,
		fn:      module.ExportedFunction(l.cfg.Export),
	}, nil
}

// instantiateHostModules assembles the registered capabilities into wasm host
// modules, grouped by import module name and kept in registration order.
func (l *Loader) instantiateHostModules(ctx context.Context, rt wazero.Runtime) error {
	grouped := make(map[string][]*registry.Capability)
	var order []string
	for _, c := range l.caps {
		if _, seen := grouped[c.Module]; !seen {
			order = append(order, c.Module)
		}
		grouped[c.Module] = append(grouped[c.Module], c)
	}

	for _, name := range order {
		builder := rt.NewHostModuleBuilder(name)
		for _, c := range grouped[name] {
			builder = builder.NewFunctionBuilder().WithFunc(c.Fn).Export(c.Name)
		}
		if _, err := builder.Instantiate(ctx); err != nil {
			return fmt.Errorf("%w: instantiating host module %q: %v", ErrBadArtifact, name, err)
		}
	}
	return nil
}
