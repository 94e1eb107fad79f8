//go:build linux

package process

import (
	"os/exec"
	"time"
)

// On Linux the workload runs in fresh mount, network, and PID namespaces
// via unshare(1), with timeout(1) applying the wall-clock ceiling inside
// the namespaces. The empty network namespace cuts all host network
// access.
func isolationCommand(program string, args []string, ceiling time.Duration) wrappedCommand {
	wrapped := []string{
		"--mount", "--net", "--pid", "--fork", "--",
		"timeout", ceilingSeconds(ceiling), program,
	}
	wrapped = append(wrapped, args...)
	return wrappedCommand{
		name:                   "unshare",
		args:                   wrapped,
		wrapperEnforcesTimeout: true,
	}
}

func wrapperAvailable() bool {
	if _, err := exec.LookPath("unshare"); err != nil {
		return false
	}
	_, err := exec.LookPath("timeout")
	return err == nil
}
