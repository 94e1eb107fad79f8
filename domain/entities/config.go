package entities

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a package-level singleton; constructing a validator is
// expensive and the instance is safe for concurrent use.
var validate = validator.New()

// SandboxConfig is the per-session configuration consumed by the enforcement
// gate and the isolation backends. It is built once per session: Limits are
// immutable after construction, Capabilities may only grow. The config
// itself enforces nothing.
type SandboxConfig struct {
	Profile      SecurityProfile `json:"profile" yaml:"profile" validate:"required"`
	Capabilities *CapabilitySet  `json:"-" yaml:"-"`
	Limits       ResourceLimits  `json:"limits" yaml:"limits"`

	// UseOSIsolation selects the OS-process backend when the WASM engine is
	// not forced or not available.
	UseOSIsolation bool `json:"use_os_isolation" yaml:"use_os_isolation"`

	// ForceWASM pins execution to the WASM backend.
	ForceWASM bool `json:"force_wasm" yaml:"force_wasm"`
}

// NewSandboxConfig builds a config for the given profile with its canned
// limits, an empty capability set, and OS isolation enabled.
func NewSandboxConfig(profile SecurityProfile) *SandboxConfig {
	return &SandboxConfig{
		Profile:        profile,
		Capabilities:   NewCapabilitySet(),
		Limits:         LimitsFor(profile),
		UseOSIsolation: true,
	}
}

// WithCapability grants a capability and returns the config for chaining.
func (c *SandboxConfig) WithCapability(cap Capability) *SandboxConfig {
	c.Capabilities.Grant(cap)
	return c
}

// WithForceWASM pins the WASM backend and returns the config for chaining.
func (c *SandboxConfig) WithForceWASM() *SandboxConfig {
	c.ForceWASM = true
	return c
}

// Validate checks structural invariants: a named profile and strictly
// positive limits.
func (c *SandboxConfig) Validate() error {
	switch c.Profile {
	case ProfileUntrusted, ProfileStandard, ProfileDevelopment, ProfileCustom:
	default:
		return fmt.Errorf("unknown security profile %q", c.Profile)
	}
	if c.Capabilities == nil {
		return fmt.Errorf("capability set must not be nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("sandbox config validation failed: %w", err)
	}
	return nil
}
