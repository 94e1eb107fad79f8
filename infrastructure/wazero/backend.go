// Package wazero implements the WASM isolation backend on the wazero
// engine. The guest runs inside a fresh runtime whose WASI surface is
// derived only from the granted capability set; anything not granted is
// simply absent from the guest's world.
package wazero

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	sberrors "github.com/AAEO04/ifa-lang-sub001/domain/errors"
	"github.com/AAEO04/ifa-lang-sub001/domain/ports"
)

const backendName = "wasm"

// wasmPageSize is fixed by the WebAssembly spec.
const wasmPageSize = 65536

type backendConfig struct {
	logger *slog.Logger
}

func defaultBackendConfig() backendConfig {
	return backendConfig{logger: slog.Default()}
}

// Option configures the backend.
type Option func(*backendConfig)

// WithLogger sets the logger for engine lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *backendConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Backend is the engine-based isolation backend. It is the strongest
// available isolation and the default whenever usable.
type Backend struct {
	config backendConfig
}

// Compile-time interface compliance check
var _ ports.Backend = (*Backend)(nil)

// NewBackend creates the WASM backend.
func NewBackend(opts ...Option) *Backend {
	cfg := defaultBackendConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Backend{config: cfg}
}

// Name implements ports.Backend.
func (b *Backend) Name() string { return backendName }

// Available implements ports.Backend. The engine is pure Go and runs
// everywhere.
func (b *Backend) Available() bool { return true }

// Isolate compiles and runs the workload's module under the config's
// grants and limits. MaxExecutionTime is enforced as a hard ceiling via a
// context deadline that tears the runtime down; MaxMemoryBytes bounds the
// guest's linear memory.
func (b *Backend) Isolate(ctx context.Context, config *entities.SandboxConfig, workload entities.Workload) (*entities.ExecutionHandle, error) {
	if len(workload.Module) == 0 {
		return nil, &sberrors.BackendError{
			Backend: backendName, Op: "load module",
			Err: errors.New("workload has no module bytes"),
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, config.Limits.MaxExecutionTime)
	defer cancel()

	runtimeCfg := wazero.NewRuntimeConfig().
		WithCloseOnContextDone(true).
		WithMemoryLimitPages(memoryPages(config.Limits.MaxMemoryBytes))

	runtime := wazero.NewRuntimeWithConfig(runCtx, runtimeCfg)
	// Close with a fresh context so teardown survives deadline expiry and
	// no partially-initialized engine outlives the attempt.
	defer runtime.Close(context.Background())

	if _, err := wasi_snapshot_preview1.Instantiate(runCtx, runtime); err != nil {
		return nil, &sberrors.BackendError{Backend: backendName, Op: "instantiate WASI", Err: err}
	}

	var stdout, stderr bytes.Buffer
	moduleCfg := moduleConfig(config.Capabilities, &stdout, &stderr)

	start := time.Now()
	_, runErr := runtime.InstantiateWithConfig(runCtx, workload.Module, moduleCfg)
	elapsed := time.Since(start)

	handle := &entities.ExecutionHandle{
		Backend:     backendName,
		Stdout:      stdout.String(),
		Stderr:      stderr.String(),
		Elapsed:     elapsed,
		Termination: entities.TerminationCompleted,
	}

	switch {
	case runErr == nil:
		return handle, nil
	case runCtx.Err() != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded):
		b.config.logger.Warn("guest hit wall-clock ceiling",
			"limit", config.Limits.MaxExecutionTime, "elapsed", elapsed)
		handle.Termination = entities.TerminationTimeout
		handle.Reason = (&sberrors.LimitError{
			Limit:  entities.TerminationTimeout,
			Detail: "execution exceeded " + config.Limits.MaxExecutionTime.String(),
		}).Error()
		return handle, nil
	default:
		var exitErr *sys.ExitError
		if errors.As(runErr, &exitErr) {
			handle.ExitCode = int(exitErr.ExitCode())
			if exitErr.ExitCode() == 0 {
				return handle, nil
			}
			handle.Termination = entities.TerminationError
			handle.Reason = runErr.Error()
			return handle, nil
		}
		return nil, &sberrors.BackendError{Backend: backendName, Op: "run module", Err: runErr}
	}
}

// memoryPages converts a byte limit to WASM pages, clamped to the engine's
// addressable range. At least one page so a trivial guest can start.
func memoryPages(maxBytes uint64) uint32 {
	pages := maxBytes / wasmPageSize
	if pages == 0 {
		return 1
	}
	if pages > 65536 {
		return 65536
	}
	return uint32(pages)
}
