package entities

import "time"

// SecurityProfile names a trust level that maps to a fixed bundle of
// resource limits.
type SecurityProfile string

const (
	// ProfileUntrusted is maximum security: 5s, 64 MiB, stdio-only descriptors.
	ProfileUntrusted SecurityProfile = "untrusted"
	// ProfileStandard is the default moderate profile.
	ProfileStandard SecurityProfile = "standard"
	// ProfileDevelopment is permissive, for local iteration.
	ProfileDevelopment SecurityProfile = "development"
	// ProfileCustom starts from Standard limits and is expected to be
	// overridden by the caller.
	ProfileCustom SecurityProfile = "custom"
)

// ResourceLimits bounds one sandboxed execution. Limits are fixed at config
// construction and enforced downstream: the gate and backends consume them,
// the limits themselves enforce nothing.
type ResourceLimits struct {
	MaxExecutionTime   time.Duration `json:"max_execution_time" yaml:"max_execution_time" validate:"gt=0"`
	MaxMemoryBytes     uint64        `json:"max_memory_bytes" yaml:"max_memory_bytes" validate:"gt=0"`
	MaxStackDepth      int           `json:"max_stack_depth" yaml:"max_stack_depth" validate:"gt=0"`
	MaxFileDescriptors int           `json:"max_file_descriptors" yaml:"max_file_descriptors" validate:"gt=0"`
}

// LimitsFor returns the canned limits for a profile. Custom shares the
// Standard tuple and is expected to be overridden.
func LimitsFor(profile SecurityProfile) ResourceLimits {
	switch profile {
	case ProfileUntrusted:
		return ResourceLimits{
			MaxExecutionTime:   5 * time.Second,
			MaxMemoryBytes:     64 * 1024 * 1024,
			MaxStackDepth:      100,
			MaxFileDescriptors: 3, // stdio only
		}
	case ProfileDevelopment:
		return ResourceLimits{
			MaxExecutionTime:   300 * time.Second,
			MaxMemoryBytes:     2 * 1024 * 1024 * 1024,
			MaxStackDepth:      2000,
			MaxFileDescriptors: 1024,
		}
	default: // Standard and Custom
		return ResourceLimits{
			MaxExecutionTime:   30 * time.Second,
			MaxMemoryBytes:     256 * 1024 * 1024,
			MaxStackDepth:      500,
			MaxFileDescriptors: 20,
		}
	}
}
