// Package policy implements the enforcement gate: the single synchronous
// choke-point every guarded native operation must call before acting.
package policy

import (
	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	"github.com/AAEO04/ifa-lang-sub001/domain/errors"
	"github.com/AAEO04/ifa-lang-sub001/domain/ports"
)

type gateConfig struct {
	denialHandler ports.DenialHandler
	audit         bool
}

func defaultGateConfig() gateConfig {
	return gateConfig{
		denialHandler: &SlogDenialHandler{},
	}
}

// GateOption configures a Gate.
type GateOption func(*gateConfig)

// WithDenialHandler sets the handler invoked on every denial.
func WithDenialHandler(h ports.DenialHandler) GateOption {
	return func(c *gateConfig) {
		if h != nil {
			c.denialHandler = h
		}
	}
}

// WithAudit records every denial into the capability set's violation log.
// Auditing is a side channel; it never affects check results.
func WithAudit(enabled bool) GateOption {
	return func(c *gateConfig) {
		c.audit = enabled
	}
}

// Gate checks required capabilities against one session's grants. Checks
// are synchronous, callable from any goroutine once the set is frozen, and
// never perform the guarded action themselves.
type Gate struct {
	caps   *entities.CapabilitySet
	config gateConfig
}

// NewGate builds a gate over the session's capability set.
func NewGate(caps *entities.CapabilitySet, opts ...GateOption) *Gate {
	cfg := defaultGateConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Gate{caps: caps, config: cfg}
}

// Check returns nil when some grant subsumes required, else a
// *errors.CapabilityError carrying the exact capability and call site.
func (g *Gate) Check(required entities.Capability, callSite string) error {
	if g.caps != nil && g.caps.Check(required) {
		return nil
	}
	g.config.denialHandler.OnDenial(required, callSite)
	if g.config.audit && g.caps != nil {
		g.caps.RecordViolation(required, callSite)
	}
	return &errors.CapabilityError{Required: required, CallSite: callSite}
}

// Capabilities exposes the underlying set for read-only use by backends.
func (g *Gate) Capabilities() *entities.CapabilitySet {
	return g.caps
}
