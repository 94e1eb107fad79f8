// Package sandbox orchestrates one confined execution session: a state
// machine over the session lifecycle plus the security-sensitive queries
// the runtime consults while the guest runs.
package sandbox

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	sberrors "github.com/AAEO04/ifa-lang-sub001/domain/errors"
	"github.com/AAEO04/ifa-lang-sub001/domain/ports"
	"github.com/AAEO04/ifa-lang-sub001/netguard"
)

// State is the session lifecycle position. Completed and Terminated are
// terminal: no transition leaves them.
type State string

const (
	StateCreated    State = "created"
	StateRunning    State = "running"
	StateCompleted  State = "completed"
	StateTerminated State = "terminated"
)

// Sandbox drives one execution session over a SandboxConfig.
type Sandbox struct {
	config            *entities.SandboxConfig
	state             State
	startTime         time.Time
	terminationReason string
}

// New creates a sandbox with the Standard profile and no grants.
func New() *Sandbox {
	return WithConfig(entities.NewSandboxConfig(entities.ProfileStandard))
}

// WithConfig creates a sandbox over an existing session config.
func WithConfig(config *entities.SandboxConfig) *Sandbox {
	return &Sandbox{
		config: config,
		state:  StateCreated,
	}
}

// Config returns the session configuration.
func (s *Sandbox) Config() *entities.SandboxConfig {
	return s.config
}

// GrantCapability adds a grant to the session. Grants only ever grow.
func (s *Sandbox) GrantCapability(cap entities.Capability) {
	s.config.Capabilities.Grant(cap)
}

// HasCapability reports whether the session's grants subsume cap.
func (s *Sandbox) HasCapability(cap entities.Capability) bool {
	return s.config.Capabilities.Check(cap)
}

// IsRestricted reports whether the session holds no grants at all.
func (s *Sandbox) IsRestricted() bool {
	return s.config.Capabilities.IsEmpty()
}

// StartExecution transitions Created -> Running and begins wall-clock
// tracking.
func (s *Sandbox) StartExecution() error {
	if s.state != StateCreated {
		return &sberrors.BackendError{
			Backend: "sandbox", Op: "start",
			Err: invalidTransition(s.state, StateRunning),
		}
	}
	s.state = StateRunning
	s.startTime = time.Now()
	return nil
}

// Complete transitions Running -> Completed.
func (s *Sandbox) Complete() error {
	if s.state != StateRunning {
		return &sberrors.BackendError{
			Backend: "sandbox", Op: "complete",
			Err: invalidTransition(s.state, StateCompleted),
		}
	}
	s.state = StateCompleted
	return nil
}

// Terminate flips the session into the Terminated state. It is advisory:
// actually interrupting a running workload is backend-specific teardown
// owned by whoever holds the blocking Isolate call. Terminating an already
// terminal session is a no-op.
func (s *Sandbox) Terminate(reason string) {
	if s.state == StateCompleted || s.state == StateTerminated {
		return
	}
	if reason == "" {
		reason = "manual termination"
	}
	s.state = StateTerminated
	s.terminationReason = reason
}

// State returns the current lifecycle position.
func (s *Sandbox) State() State { return s.state }

// IsRunning reports whether the session is mid-execution.
func (s *Sandbox) IsRunning() bool { return s.state == StateRunning }

// WasTerminated reports a Terminated end, as opposed to Completed.
func (s *Sandbox) WasTerminated() bool { return s.state == StateTerminated }

// TerminationReason names why the session was terminated, empty otherwise.
func (s *Sandbox) TerminationReason() string { return s.terminationReason }

// ElapsedTime returns wall clock since StartExecution, zero before it.
func (s *Sandbox) ElapsedTime() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// CanAccessFile reports whether reading path is permitted. The path is
// canonicalized first, and a path that is itself a symlink is denied
// outright, even when its target lies under a granted root, closing the
// symlink-swap window. Paths that cannot be resolved are denied.
func (s *Sandbox) CanAccessFile(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return false
	}
	return s.config.Capabilities.Check(entities.ReadFiles(canonical))
}

// CheckConnect validates connecting to host: the capability check and the
// SSRF guard must both pass, and no grant ever overrides the guard. The
// error distinguishes the two denial classes: a *errors.CapabilityError is
// cured by granting the host, a *errors.SSRFError never is.
func (s *Sandbox) CheckConnect(host, callSite string) error {
	if !s.config.Capabilities.Check(entities.Network(host)) {
		return &sberrors.CapabilityError{
			Required: entities.Network(host),
			CallSite: callSite,
		}
	}
	return netguard.Validate(host)
}

// CanConnectTo reports whether connecting to host is permitted.
func (s *Sandbox) CanConnectTo(host string) bool {
	return s.CheckConnect(host, "") == nil
}

// CanAccessEnvVar reports whether reading the environment key is permitted.
func (s *Sandbox) CanAccessEnvVar(key string) bool {
	return s.config.Capabilities.Check(entities.Environment(key))
}

// CanCreateFile reports whether any write grant exists. File-count
// enforcement belongs to the resource monitor, not here.
func (s *Sandbox) CanCreateFile() bool {
	return s.config.Capabilities.HasKind(entities.KindWriteFiles)
}

// CanSpawnProcess reports whether any execute grant exists.
func (s *Sandbox) CanSpawnProcess() bool {
	return s.config.Capabilities.HasKind(entities.KindExecute)
}

// TreatAsLiteral documents the boundary rule for guest-supplied data: it
// must never be reinterpreted as code, paths, or commands. The sandbox does
// not rewrite the input; honoring the rule is the caller's responsibility.
func (s *Sandbox) TreatAsLiteral(string) bool {
	return true
}

// Execute drives one confined execution attempt through a backend,
// transitioning the session state to match the outcome. A timeout or limit
// termination leaves the session Terminated with the limit named; a backend
// failure terminates the attempt and surfaces the error.
func (s *Sandbox) Execute(ctx context.Context, backend ports.Backend, workload entities.Workload) (*entities.ExecutionHandle, error) {
	if err := s.StartExecution(); err != nil {
		return nil, err
	}
	handle, err := backend.Isolate(ctx, s.config, workload)
	if err != nil {
		s.Terminate("backend failure: " + err.Error())
		return nil, err
	}
	if handle.Termination == entities.TerminationCompleted {
		_ = s.Complete()
	} else {
		s.Terminate(handle.Reason)
	}
	return handle, nil
}

// SelectBackend picks the backend for a config: the engine backend whenever
// it is available or forced, otherwise OS-process isolation when requested
// and available. Returns nil when nothing fits.
func SelectBackend(config *entities.SandboxConfig, engine, osProcess ports.Backend) ports.Backend {
	if engine != nil && (config.ForceWASM || engine.Available()) {
		return engine
	}
	if config.ForceWASM {
		return engine
	}
	if config.UseOSIsolation && osProcess != nil && osProcess.Available() {
		return osProcess
	}
	return nil
}

type transitionError struct {
	from, to State
}

func invalidTransition(from, to State) error {
	return &transitionError{from: from, to: to}
}

func (e *transitionError) Error() string {
	return "invalid state transition from " + string(e.from) + " to " + string(e.to)
}
