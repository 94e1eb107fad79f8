//go:build !linux && !darwin && !windows

package process

import (
	"os/exec"
	"time"
)

// Other platforms get the wall-clock ceiling via timeout(1) and no
// namespace confinement.
func isolationCommand(program string, args []string, ceiling time.Duration) wrappedCommand {
	wrapped := []string{ceilingSeconds(ceiling), program}
	wrapped = append(wrapped, args...)
	return wrappedCommand{
		name:                   "timeout",
		args:                   wrapped,
		wrapperEnforcesTimeout: true,
	}
}

func wrapperAvailable() bool {
	_, err := exec.LookPath("timeout")
	return err == nil
}
