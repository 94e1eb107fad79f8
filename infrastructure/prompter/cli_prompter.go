// Package prompter asks a human to approve inferred capabilities before a
// session is configured with them. Anything not explicitly approved is
// left out: silence, EOF, and typos all mean deny.
package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	"github.com/AAEO04/ifa-lang-sub001/domain/ports"
)

// CliPrompter implements ports.Prompter over a terminal-style stream pair.
type CliPrompter struct {
	in  io.Reader
	out io.Writer
}

// Compile-time interface compliance check
var _ ports.Prompter = (*CliPrompter)(nil)

// NewCliPrompter creates a prompter over the given streams.
func NewCliPrompter(in io.Reader, out io.Writer) *CliPrompter {
	return &CliPrompter{in: in, out: out}
}

// IsInteractive reports whether the input is a terminal.
func (p *CliPrompter) IsInteractive() bool {
	if f, ok := p.in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ApproveCapability asks the user about a single capability.
func (p *CliPrompter) ApproveCapability(cap entities.Capability) (granted bool, always bool, err error) {
	_, _ = fmt.Fprintf(p.out, "Program requires: %s\n", cap)
	_, _ = fmt.Fprintf(p.out, "Allow? [y/n/always]: ")

	scanner := bufio.NewScanner(p.in)
	if scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true, false, nil
		case "a", "always":
			return true, true, nil
		default:
			return false, false, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, false, err
	}
	return false, false, io.EOF
}

// ApproveCapabilities lists a batch and asks for a single all-or-nothing
// decision. A refusal returns an empty set.
func (p *CliPrompter) ApproveCapabilities(caps []entities.Capability) (*entities.CapabilitySet, error) {
	approved := entities.NewCapabilitySet()
	if len(caps) == 0 {
		return approved, nil
	}

	_, _ = fmt.Fprintf(p.out, "Program requires the following capabilities:\n")
	for _, cap := range caps {
		_, _ = fmt.Fprintf(p.out, "  - %s\n", cap)
	}
	_, _ = fmt.Fprintf(p.out, "Grant all? [y/n]: ")

	scanner := bufio.NewScanner(p.in)
	if scanner.Scan() {
		text := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if text == "y" || text == "yes" {
			for _, cap := range caps {
				approved.Grant(cap)
			}
		}
		return approved, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return approved, nil
}

// NonInteractiveError explains a denial when no human is available to ask.
func NonInteractiveError(missing []entities.Capability) error {
	names := make([]string, 0, len(missing))
	for _, cap := range missing {
		names = append(names, cap.String())
	}
	return fmt.Errorf("program requires ungranted capabilities in non-interactive mode: %s",
		strings.Join(names, ", "))
}
