package process_test

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	sberrors "github.com/AAEO04/ifa-lang-sub001/domain/errors"
	"github.com/AAEO04/ifa-lang-sub001/infrastructure/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_Name(t *testing.T) {
	b := process.NewBackend()
	assert.Equal(t, "process", b.Name())
}

func TestBackend_IsolateRejectsEmptyProgram(t *testing.T) {
	b := process.NewBackend()
	config := entities.NewSandboxConfig(entities.ProfileUntrusted)

	_, err := b.Isolate(context.Background(), config, entities.Workload{})

	require.Error(t, err)
	var backendErr *sberrors.BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "process", backendErr.Backend)
	assert.Equal(t, "spawn", backendErr.Op)
}

// requireNamespaces skips when the host cannot actually enter fresh
// namespaces (unprivileged containers commonly refuse unshare).
func requireNamespaces(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("linux namespace wrapper only")
	}
	if err := exec.Command("unshare", "--mount", "--net", "--pid", "--fork", "true").Run(); err != nil {
		t.Skipf("cannot unshare namespaces: %v", err)
	}
}

func TestBackend_IsolateEnforcesWallClockCeiling(t *testing.T) {
	requireNamespaces(t)

	b := process.NewBackend()
	config := entities.NewSandboxConfig(entities.ProfileUntrusted)
	config.Limits.MaxExecutionTime = 1 * time.Second

	start := time.Now()
	handle, err := b.Isolate(context.Background(), config,
		entities.Workload{Program: "sleep", Args: []string{"30"}})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, entities.TerminationTimeout, handle.Termination)
	assert.True(t, handle.TimedOut())
	assert.Equal(t, 124, handle.ExitCode)
	assert.Contains(t, handle.Reason, "execution exceeded 1s")
	// The wrapper kills the sleeper at the ceiling, long before its own
	// 30s would elapse.
	assert.Less(t, elapsed, 10*time.Second)
}

func TestBackend_IsolateMissingProgramIsSpawnFailure(t *testing.T) {
	b := process.NewBackend()
	if !b.Available() {
		t.Skip("isolation wrapper not installed")
	}
	config := entities.NewSandboxConfig(entities.ProfileUntrusted)

	handle, err := b.Isolate(context.Background(), config,
		entities.Workload{Program: "/nonexistent/program-xyzzy"})

	// The wrapper either fails to spawn or reports a nonzero exit,
	// depending on the platform. Either way the attempt did not complete.
	if err != nil {
		var backendErr *sberrors.BackendError
		assert.True(t, errors.As(err, &backendErr))
		return
	}
	assert.NotEqual(t, entities.TerminationCompleted, handle.Termination)
}
