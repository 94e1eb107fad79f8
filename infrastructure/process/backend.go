// Package process implements the OS-process isolation backend: the
// workload is spawned under platform isolation primitives with a hard
// wall-clock ceiling, and its output and termination class are captured.
//
// This backend enforces only the time ceiling at the OS level. It does not
// translate the fine-grained capability set into OS restrictions: it is
// defense-in-depth alongside the in-process enforcement gate, not a
// substitute for it.
package process

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strconv"
	"time"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	sberrors "github.com/AAEO04/ifa-lang-sub001/domain/errors"
	"github.com/AAEO04/ifa-lang-sub001/domain/ports"
)

const backendName = "process"

// timeoutExitCode is what the timeout(1) wrapper reports on expiry.
const timeoutExitCode = 124

// ceilingGrace gives an OS-level timeout wrapper a moment to report exit
// 124 before the context backstop kills the whole tree.
const ceilingGrace = 2 * time.Second

type backendConfig struct {
	logger *slog.Logger
}

func defaultBackendConfig() backendConfig {
	return backendConfig{logger: slog.Default()}
}

// Option configures the backend.
type Option func(*backendConfig)

// WithLogger sets the logger for spawn and termination events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *backendConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Backend is the OS-process isolation backend.
type Backend struct {
	config backendConfig
}

// Compile-time interface compliance check
var _ ports.Backend = (*Backend)(nil)

// NewBackend creates the OS-process backend.
func NewBackend(opts ...Option) *Backend {
	cfg := defaultBackendConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Backend{config: cfg}
}

// Name implements ports.Backend.
func (b *Backend) Name() string { return backendName }

// Available reports whether the platform's isolation wrapper is installed.
func (b *Backend) Available() bool { return wrapperAvailable() }

// Isolate spawns the workload under the platform wrapper, captures
// stdout/stderr and elapsed time, and distinguishes normal, timeout, and
// error termination. MaxExecutionTime is a hard ceiling: the wrapper
// enforces it where one exists, and a context deadline backstops it
// unconditionally.
func (b *Backend) Isolate(ctx context.Context, config *entities.SandboxConfig, workload entities.Workload) (*entities.ExecutionHandle, error) {
	if workload.Program == "" {
		return nil, &sberrors.BackendError{
			Backend: backendName, Op: "spawn",
			Err: errors.New("workload has no program"),
		}
	}

	ceiling := config.Limits.MaxExecutionTime
	wrapped := isolationCommand(workload.Program, workload.Args, ceiling)

	backstop := ceiling
	if wrapped.wrapperEnforcesTimeout {
		backstop += ceilingGrace
	}
	runCtx, cancel := context.WithTimeout(ctx, backstop)
	defer cancel()

	cmd := exec.CommandContext(runCtx, wrapped.name, wrapped.args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	handle := &entities.ExecutionHandle{
		Backend:     backendName,
		Stdout:      stdout.String(),
		Stderr:      stderr.String(),
		Elapsed:     elapsed,
		Termination: entities.TerminationCompleted,
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		return handle, nil
	case errors.As(runErr, &exitErr):
		handle.ExitCode = exitErr.ExitCode()
		if handle.ExitCode == timeoutExitCode || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			b.config.logger.Warn("guest hit wall-clock ceiling",
				"limit", ceiling, "elapsed", elapsed)
			handle.Termination = entities.TerminationTimeout
			handle.Reason = (&sberrors.LimitError{
				Limit:  entities.TerminationTimeout,
				Detail: "execution exceeded " + ceiling.String(),
			}).Error()
			return handle, nil
		}
		handle.Termination = entities.TerminationError
		handle.Reason = stderr.String()
		return handle, nil
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		handle.Termination = entities.TerminationTimeout
		handle.Reason = (&sberrors.LimitError{
			Limit:  entities.TerminationTimeout,
			Detail: "execution exceeded " + ceiling.String(),
		}).Error()
		return handle, nil
	default:
		// Spawn failure: the wrapper or program never started.
		return nil, &sberrors.BackendError{Backend: backendName, Op: "spawn", Err: runErr}
	}
}

// wrappedCommand is the platform-specific command line that confines the
// workload.
type wrappedCommand struct {
	name string
	args []string

	// wrapperEnforcesTimeout is true when the wrapper itself applies the
	// wall-clock ceiling, so the context deadline is only a backstop.
	wrapperEnforcesTimeout bool
}

// ceilingSeconds renders the ceiling for timeout(1). Fractional seconds
// round up, never down: the wrapper must not kill the guest before the
// ceiling, and the context backstop still bounds the overshoot.
func ceilingSeconds(ceiling time.Duration) string {
	secs := int64((ceiling + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
