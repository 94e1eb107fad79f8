//go:build darwin

package process

import (
	"os/exec"
	"time"
)

// denyNetworkProfile is a minimal Seatbelt profile: everything is allowed
// except network operations.
const denyNetworkProfile = `(version 1)(allow default)(deny network*)`

// On macOS the workload runs under sandbox-exec(1) with a deny-network
// Seatbelt profile, with timeout(1) applying the wall-clock ceiling.
func isolationCommand(program string, args []string, ceiling time.Duration) wrappedCommand {
	wrapped := []string{
		"-p", denyNetworkProfile,
		"timeout", ceilingSeconds(ceiling), program,
	}
	wrapped = append(wrapped, args...)
	return wrappedCommand{
		name:                   "sandbox-exec",
		args:                   wrapped,
		wrapperEnforcesTimeout: true,
	}
}

func wrapperAvailable() bool {
	if _, err := exec.LookPath("sandbox-exec"); err != nil {
		return false
	}
	_, err := exec.LookPath("timeout")
	return err == nil
}
