package entities

import "time"

// Termination classifies how a confined execution ended.
type Termination string

const (
	// TerminationCompleted means the workload exited on its own.
	TerminationCompleted Termination = "completed"
	// TerminationTimeout means the wall-clock ceiling was hit.
	TerminationTimeout Termination = "timeout"
	// TerminationMemory means the memory limit was hit.
	TerminationMemory Termination = "memory"
	// TerminationError means the workload failed for another reason.
	TerminationError Termination = "error"
)

// Workload is what an isolation backend confines. Engine-based backends
// consume Module; process-based backends consume Program/Args.
type Workload struct {
	// Module is the guest compiled to WASM bytes.
	Module []byte

	// Program and Args form the host command line for process isolation.
	Program string
	Args    []string
}

// ExecutionHandle is the outcome of one confined execution attempt.
type ExecutionHandle struct {
	Backend     string
	Stdout      string
	Stderr      string
	Elapsed     time.Duration
	ExitCode    int
	Termination Termination

	// Reason names the limit or failure for non-completed terminations.
	Reason string
}

// Success reports a normal exit with code zero.
func (h *ExecutionHandle) Success() bool {
	return h.Termination == TerminationCompleted && h.ExitCode == 0
}

// TimedOut reports whether the wall-clock ceiling ended the execution.
func (h *ExecutionHandle) TimedOut() bool {
	return h.Termination == TerminationTimeout
}
