package wazero

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryPages(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes uint64
		want     uint32
	}{
		{name: "sub-page rounds up to one", maxBytes: 1, want: 1},
		{name: "zero rounds up to one", maxBytes: 0, want: 1},
		{name: "exact page", maxBytes: 65536, want: 1},
		{name: "64 MiB", maxBytes: 64 * 1024 * 1024, want: 1024},
		{name: "256 MiB", maxBytes: 256 * 1024 * 1024, want: 4096},
		{name: "clamped to addressable range", maxBytes: 1 << 40, want: 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, memoryPages(tt.maxBytes))
		})
	}
}

func TestGuestMountPath(t *testing.T) {
	tests := []struct {
		name string
		root string
		want string
	}{
		{name: "absolute unix path", root: "/data/in", want: "/data/in"},
		{name: "relative path gains slash", root: "data", want: "/data"},
		{name: "windows separators", root: `C:\data\in`, want: "/C:/data/in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guestMountPath(tt.root))
		})
	}
}
