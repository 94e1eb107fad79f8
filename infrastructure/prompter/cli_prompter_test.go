package prompter_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	"github.com/AAEO04/ifa-lang-sub001/infrastructure/prompter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCliPrompter_ApproveCapability(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantGranted bool
		wantAlways  bool
	}{
		{name: "yes", input: "y\n", wantGranted: true},
		{name: "yes spelled out", input: "yes\n", wantGranted: true},
		{name: "always", input: "always\n", wantGranted: true, wantAlways: true},
		{name: "always short", input: "a\n", wantGranted: true, wantAlways: true},
		{name: "no", input: "n\n"},
		{name: "garbage denies", input: "maybe?\n"},
		{name: "uppercase yes", input: "YES\n", wantGranted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := prompter.NewCliPrompter(strings.NewReader(tt.input), &out)

			granted, always, err := p.ApproveCapability(entities.Network("example.com"))

			require.NoError(t, err)
			assert.Equal(t, tt.wantGranted, granted)
			assert.Equal(t, tt.wantAlways, always)
			assert.Contains(t, out.String(), "network{example.com}")
		})
	}
}

func TestCliPrompter_ApproveCapabilityEOF(t *testing.T) {
	p := prompter.NewCliPrompter(strings.NewReader(""), io.Discard)

	granted, _, err := p.ApproveCapability(entities.Stdio())

	assert.ErrorIs(t, err, io.EOF)
	assert.False(t, granted)
}

func TestCliPrompter_ApproveCapabilities(t *testing.T) {
	caps := []entities.Capability{
		entities.ReadFiles("/data"),
		entities.Network(entities.Wildcard),
	}

	t.Run("grant all", func(t *testing.T) {
		var out bytes.Buffer
		p := prompter.NewCliPrompter(strings.NewReader("y\n"), &out)

		approved, err := p.ApproveCapabilities(caps)

		require.NoError(t, err)
		assert.True(t, approved.Check(entities.ReadFiles("/data/file")))
		assert.True(t, approved.Check(entities.Network("example.com")))
		assert.Contains(t, out.String(), "read_files{root: /data}")
	})

	t.Run("refusal yields empty set", func(t *testing.T) {
		p := prompter.NewCliPrompter(strings.NewReader("n\n"), io.Discard)

		approved, err := p.ApproveCapabilities(caps)

		require.NoError(t, err)
		assert.True(t, approved.IsEmpty())
	})

	t.Run("empty batch needs no input", func(t *testing.T) {
		p := prompter.NewCliPrompter(strings.NewReader(""), io.Discard)

		approved, err := p.ApproveCapabilities(nil)

		require.NoError(t, err)
		assert.True(t, approved.IsEmpty())
	})
}

func TestCliPrompter_IsInteractive(t *testing.T) {
	p := prompter.NewCliPrompter(strings.NewReader(""), io.Discard)
	assert.False(t, p.IsInteractive())
}

func TestNonInteractiveError(t *testing.T) {
	err := prompter.NonInteractiveError([]entities.Capability{
		entities.Network("example.com"),
		entities.Time(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-interactive")
	assert.Contains(t, err.Error(), "network{example.com}")
	assert.Contains(t, err.Error(), "time")
}
