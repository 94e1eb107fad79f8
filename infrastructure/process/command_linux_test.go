//go:build linux

package process

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsolationCommand(t *testing.T) {
	wrapped := isolationCommand("/usr/bin/prog", []string{"run", "main.ifa"}, 5*time.Second)

	assert.Equal(t, "unshare", wrapped.name)
	assert.Equal(t, []string{
		"--mount", "--net", "--pid", "--fork", "--",
		"timeout", "5", "/usr/bin/prog", "run", "main.ifa",
	}, wrapped.args)
	assert.True(t, wrapped.wrapperEnforcesTimeout)
}

func TestCeilingSeconds(t *testing.T) {
	tests := []struct {
		name    string
		ceiling time.Duration
		want    string
	}{
		{name: "whole seconds", ceiling: 30 * time.Second, want: "30"},
		{name: "sub-second rounds up", ceiling: 100 * time.Millisecond, want: "1"},
		{name: "fractional seconds round up", ceiling: 1500 * time.Millisecond, want: "2"},
		{name: "never rounds below the ceiling", ceiling: 2500 * time.Millisecond, want: "3"},
		{name: "minutes", ceiling: 5 * time.Minute, want: "300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ceilingSeconds(tt.ceiling))
		})
	}
}
