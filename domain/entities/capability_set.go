package entities

import (
	"sync"
	"time"
)

// CapabilityViolation is one audit record of a denied requirement. The log
// is append-only and read by nothing but diagnostics; it never feeds back
// into checks.
type CapabilityViolation struct {
	Capability Capability `json:"capability"`
	CallSite   string     `json:"call_site"`
	Timestamp  time.Time  `json:"timestamp"`
}

// CapabilitySet is the monotonic, accumulated grants for one execution
// session. Grants are append-only and never removed; Check is pure.
//
// Grant is not safe for concurrent use: the set is built single-threaded
// during inference/configuration and treated as frozen for cross-goroutine
// reads afterwards. The violation log has its own lock because auditing may
// happen from any goroutine that holds the gate.
//
// Neither grants nor violations are deduplicated or bounded; the session
// owns the growth.
type CapabilitySet struct {
	grants []Capability

	mu         sync.Mutex
	violations []CapabilityViolation
}

// NewCapabilitySet returns an empty set. An empty set denies everything.
func NewCapabilitySet() *CapabilitySet {
	return &CapabilitySet{}
}

// Grant appends a capability. Grants are never deduplicated.
func (s *CapabilitySet) Grant(cap Capability) {
	s.grants = append(s.grants, cap)
}

// Check reports whether some granted capability subsumes required.
// It is pure and side-effect-free.
func (s *CapabilitySet) Check(required Capability) bool {
	for _, granted := range s.grants {
		if granted.Subsumes(required) {
			return true
		}
	}
	return false
}

// HasKind reports whether any grant of the given kind exists, regardless of
// its scope.
func (s *CapabilitySet) HasKind(kind CapabilityKind) bool {
	for _, granted := range s.grants {
		if granted.Kind == kind {
			return true
		}
	}
	return false
}

// All returns the grants in grant order. The slice must not be mutated.
func (s *CapabilitySet) All() []Capability {
	return s.grants
}

// IsEmpty reports whether no capability has been granted.
func (s *CapabilitySet) IsEmpty() bool {
	return len(s.grants) == 0
}

// Merge appends every grant of other. Violations are not merged.
func (s *CapabilitySet) Merge(other *CapabilitySet) {
	if other == nil {
		return
	}
	s.grants = append(s.grants, other.grants...)
}

// RecordViolation appends an audit record for a denied requirement.
// It never affects what Check returns.
func (s *CapabilitySet) RecordViolation(cap Capability, callSite string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.violations = append(s.violations, CapabilityViolation{
		Capability: cap,
		CallSite:   callSite,
		Timestamp:  time.Now(),
	})
}

// Violations returns a snapshot of the audit log.
func (s *CapabilitySet) Violations() []CapabilityViolation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CapabilityViolation, len(s.violations))
	copy(out, s.violations)
	return out
}
