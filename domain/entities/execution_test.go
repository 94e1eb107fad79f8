package entities_test

import (
	"testing"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestExecutionHandle_Success(t *testing.T) {
	tests := []struct {
		name   string
		handle entities.ExecutionHandle
		want   bool
	}{
		{
			name:   "completed with zero exit",
			handle: entities.ExecutionHandle{Termination: entities.TerminationCompleted},
			want:   true,
		},
		{
			name:   "completed with nonzero exit",
			handle: entities.ExecutionHandle{Termination: entities.TerminationCompleted, ExitCode: 3},
			want:   false,
		},
		{
			name:   "timeout",
			handle: entities.ExecutionHandle{Termination: entities.TerminationTimeout},
			want:   false,
		},
		{
			name:   "error",
			handle: entities.ExecutionHandle{Termination: entities.TerminationError, ExitCode: 1},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.handle.Success())
		})
	}
}

func TestExecutionHandle_TimedOut(t *testing.T) {
	assert.True(t, (&entities.ExecutionHandle{Termination: entities.TerminationTimeout}).TimedOut())
	assert.False(t, (&entities.ExecutionHandle{Termination: entities.TerminationCompleted}).TimedOut())
}
