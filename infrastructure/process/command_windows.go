//go:build windows

package process

import "time"

// Windows has no unshare or sandbox-exec equivalent in the base install,
// so the workload runs directly and the context deadline alone enforces
// the wall-clock ceiling.
func isolationCommand(program string, args []string, _ time.Duration) wrappedCommand {
	return wrappedCommand{name: program, args: args}
}

func wrapperAvailable() bool { return true }
