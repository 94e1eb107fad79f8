// Package ports declares the interfaces that connect the security core to
// its collaborators: isolation backends, denial handlers, and the external
// guest-language parser.
package ports

import (
	"context"

	"github.com/AAEO04/ifa-lang-sub001/ast"
	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
)

// Backend turns a resolved capability set plus limits into an actually
// confined execution. Isolate blocks for the lifetime of the workload and
// must be driven off any latency-sensitive goroutine. Implementations treat
// the config's MaxExecutionTime as a hard ceiling, never a hint, and must
// not leave partially-initialized state on failure.
type Backend interface {
	// Name identifies the backend in handles and logs.
	Name() string

	// Available reports whether the backend can run on this host.
	Available() bool

	// Isolate runs the workload confined to the config's grants and limits.
	// The config's capability set is borrowed read-only.
	Isolate(ctx context.Context, config *entities.SandboxConfig, workload entities.Workload) (*entities.ExecutionHandle, error)
}

// DenialHandler observes capability denials from the enforcement gate.
// Handlers must not perform the guarded action and must be safe for
// concurrent use.
type DenialHandler interface {
	OnDenial(required entities.Capability, callSite string)
}

// Parser is the out-of-scope lexer/parser collaborator. The inferencer
// only depends on this contract.
type Parser interface {
	Parse(source string) (*ast.Program, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(source string) (*ast.Program, error)

// Parse implements Parser.
func (f ParserFunc) Parse(source string) (*ast.Program, error) { return f(source) }

// Prompter asks a human to approve capabilities before a session is
// configured with them. Implementations default to deny: anything not
// explicitly approved stays out of the session.
type Prompter interface {
	// IsInteractive reports whether a human can actually be asked.
	IsInteractive() bool

	// ApproveCapability asks about one capability. always marks the
	// approval as persistent, for the caller to record.
	ApproveCapability(cap entities.Capability) (granted bool, always bool, err error)

	// ApproveCapabilities asks about a batch and returns the approved
	// subset as a ready-to-use set.
	ApproveCapabilities(caps []entities.Capability) (*entities.CapabilitySet, error)
}

// ManifestStore persists an approved capability manifest between runs.
type ManifestStore interface {
	// Load returns the stored manifest, or a zero manifest when none has
	// been saved yet.
	Load() (entities.Manifest, error)

	// Save persists the manifest, replacing any previous one.
	Save(m entities.Manifest) error
}
