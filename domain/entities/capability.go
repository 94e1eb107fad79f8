// Package entities defines the authorization vocabulary of the sandbox:
// capabilities, capability sets, security profiles, and the session
// configuration consumed by the enforcement gate and isolation backends.
package entities

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Wildcard is the sentinel element that satisfies any required value for
// set-valued capabilities. It is produced only by inference, never typed by
// operators directly.
const Wildcard = "*"

// CapabilityKind discriminates the capability union.
type CapabilityKind string

const (
	KindReadFiles   CapabilityKind = "read_files"
	KindWriteFiles  CapabilityKind = "write_files"
	KindNetwork     CapabilityKind = "network"
	KindExecute     CapabilityKind = "execute"
	KindEnvironment CapabilityKind = "environment"
	KindTime        CapabilityKind = "time"
	KindRandom      CapabilityKind = "random"
	KindStdio       CapabilityKind = "stdio"
)

// Capability is a single broad, reusable grant: one authorization unit for
// one category of effectful operation. It is a tagged union: Root is set
// for the file kinds, Values for the set-valued kinds, and neither for the
// nullary kinds (Time, Random, Stdio).
type Capability struct {
	Kind CapabilityKind `json:"kind" yaml:"kind"`

	// Root scopes ReadFiles/WriteFiles to a directory subtree.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`

	// Values holds Network domains, Execute programs, or Environment keys.
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// ReadFiles grants read access under a filesystem root.
func ReadFiles(root string) Capability {
	return Capability{Kind: KindReadFiles, Root: root}
}

// WriteFiles grants write access under a filesystem root.
func WriteFiles(root string) Capability {
	return Capability{Kind: KindWriteFiles, Root: root}
}

// Network grants access to specific domains.
func Network(domains ...string) Capability {
	return Capability{Kind: KindNetwork, Values: domains}
}

// Execute grants spawning of specific programs.
func Execute(programs ...string) Capability {
	return Capability{Kind: KindExecute, Values: programs}
}

// Environment grants access to specific environment variable keys.
func Environment(keys ...string) Capability {
	return Capability{Kind: KindEnvironment, Values: keys}
}

// Time grants clock access.
func Time() Capability { return Capability{Kind: KindTime} }

// Random grants RNG access.
func Random() Capability { return Capability{Kind: KindRandom} }

// Stdio grants standard stream access.
func Stdio() Capability { return Capability{Kind: KindStdio} }

// String renders the capability for diagnostics and denial messages.
func (c Capability) String() string {
	switch c.Kind {
	case KindReadFiles, KindWriteFiles:
		return fmt.Sprintf("%s{root: %s}", c.Kind, c.Root)
	case KindNetwork, KindExecute, KindEnvironment:
		return fmt.Sprintf("%s{%s}", c.Kind, strings.Join(c.Values, ", "))
	default:
		return string(c.Kind)
	}
}

// Subsumes reports whether this granted capability satisfies the required
// one. Matching is per-kind and never crosses kinds:
//
//   - ReadFiles/WriteFiles: the required root must lie under the granted
//     root (component-wise path containment, not byte prefix).
//   - Network/Execute/Environment: every required value must be literally
//     present in the granted values; a granted Wildcard satisfies anything.
//   - Time/Random/Stdio: presence suffices.
func (c Capability) Subsumes(required Capability) bool {
	if c.Kind != required.Kind {
		return false
	}
	switch required.Kind {
	case KindReadFiles, KindWriteFiles:
		return underRoot(c.Root, required.Root)
	case KindNetwork, KindExecute, KindEnvironment:
		return containsAll(c.Values, required.Values)
	case KindTime, KindRandom, KindStdio:
		return true
	default:
		// Malformed discriminant: refuse rather than guess.
		return false
	}
}

// underRoot reports whether path is root itself or lies inside the subtree
// rooted at root. Comparison is component-wise so "/home/user" does not
// subsume "/home/user2".
func underRoot(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if root == path {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func containsAll(granted, required []string) bool {
	for _, r := range required {
		found := false
		for _, g := range granted {
			if g == r || g == Wildcard {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
