package entities

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Manifest is the textual key/value summary of a capability set consumed by
// deployment tooling. Path and key lists keep grant order; duplicates are
// collapsed.
type Manifest struct {
	Network bool     `json:"network" yaml:"network"`
	Read    []string `json:"read,omitempty" yaml:"read,omitempty"`
	Write   []string `json:"write,omitempty" yaml:"write,omitempty"`
	Env     []string `json:"env,omitempty" yaml:"env,omitempty"`
	Time    bool     `json:"time" yaml:"time"`
	Random  bool     `json:"random" yaml:"random"`
	Stdio   bool     `json:"stdio" yaml:"stdio"`
}

// ManifestFromSet summarizes a capability set.
func ManifestFromSet(set *CapabilitySet) Manifest {
	var m Manifest
	if set == nil {
		return m
	}
	seenRead := map[string]bool{}
	seenWrite := map[string]bool{}
	seenEnv := map[string]bool{}
	for _, cap := range set.All() {
		switch cap.Kind {
		case KindReadFiles:
			if !seenRead[cap.Root] {
				seenRead[cap.Root] = true
				m.Read = append(m.Read, cap.Root)
			}
		case KindWriteFiles:
			if !seenWrite[cap.Root] {
				seenWrite[cap.Root] = true
				m.Write = append(m.Write, cap.Root)
			}
		case KindNetwork:
			m.Network = true
		case KindEnvironment:
			for _, k := range cap.Values {
				if !seenEnv[k] {
					seenEnv[k] = true
					m.Env = append(m.Env, k)
				}
			}
		case KindTime:
			m.Time = true
		case KindRandom:
			m.Random = true
		case KindStdio:
			m.Stdio = true
		}
	}
	return m
}

// ToCapabilitySet reconstructs a capability set from the manifest. Boolean
// entries become wildcard grants: the manifest does not preserve individual
// network domains.
func (m Manifest) ToCapabilitySet() *CapabilitySet {
	set := NewCapabilitySet()
	if m.Stdio {
		set.Grant(Stdio())
	}
	for _, root := range m.Read {
		set.Grant(ReadFiles(root))
	}
	for _, root := range m.Write {
		set.Grant(WriteFiles(root))
	}
	if m.Network {
		set.Grant(Network(Wildcard))
	}
	if len(m.Env) > 0 {
		set.Grant(Environment(m.Env...))
	}
	if m.Time {
		set.Grant(Time())
	}
	if m.Random {
		set.Grant(Random())
	}
	return set
}

// MarshalYAML-friendly encoders for deployment tooling.

// ToYAML renders the manifest as YAML.
func (m Manifest) ToYAML() ([]byte, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return out, nil
}

// ManifestFromYAML parses a YAML manifest.
func ManifestFromYAML(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// ManifestSchema generates the JSON schema (Draft 2020-12) describing the
// manifest shape for external tooling.
func ManifestSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	schema := reflector.Reflect(&Manifest{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest schema: %w", err)
	}
	return out, nil
}
