// Package errors provides the typed error taxonomy of the security core.
// All errors propagate by return value and support errors.Is/errors.As.
package errors

import (
	"fmt"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
)

// CapabilityError is a recoverable, expected denial from the enforcement
// gate. It carries the exact capability required and the call site so the
// user can add the missing grant.
type CapabilityError struct {
	Required entities.Capability
	CallSite string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability denied: %s at %s", e.Required, e.CallSite)
}

// LimitError reports that a resource limit terminated the workload. Fatal
// to the guest, recoverable at orchestration level. Limit names the limit
// hit: timeout, memory, or another termination class.
type LimitError struct {
	Limit  entities.Termination
	Detail string
}

func (e *LimitError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("resource limit exceeded (%s): %s", e.Limit, e.Detail)
	}
	return fmt.Sprintf("resource limit exceeded (%s)", e.Limit)
}

// SSRFError is an always-deny network rejection. Unlike an ordinary
// capability denial, no grant can ever satisfy it.
type SSRFError struct {
	Host   string
	Reason string
}

func (e *SSRFError) Error() string {
	return fmt.Sprintf("connection to %s blocked: %s", e.Host, e.Reason)
}

// ParseError is a per-file, recoverable inference failure. The file is
// skipped and scanning continues.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// BackendError is an internal isolation-backend failure (engine
// instantiation, process spawn). Fatal to the attempt; the backend must not
// leave partially-initialized state behind it.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
