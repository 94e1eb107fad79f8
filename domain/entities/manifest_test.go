package entities_test

import (
	"testing"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestFromSet(t *testing.T) {
	set := entities.NewCapabilitySet()
	set.Grant(entities.Stdio())
	set.Grant(entities.ReadFiles("/data"))
	set.Grant(entities.ReadFiles("/data")) // duplicate collapses
	set.Grant(entities.WriteFiles("/out"))
	set.Grant(entities.Network("api.example.com"))
	set.Grant(entities.Environment("HOME", "PATH"))
	set.Grant(entities.Time())

	m := entities.ManifestFromSet(set)

	assert.Equal(t, []string{"/data"}, m.Read)
	assert.Equal(t, []string{"/out"}, m.Write)
	assert.Equal(t, []string{"HOME", "PATH"}, m.Env)
	assert.True(t, m.Network)
	assert.True(t, m.Time)
	assert.True(t, m.Stdio)
	assert.False(t, m.Random)
}

func TestManifestFromSet_Nil(t *testing.T) {
	m := entities.ManifestFromSet(nil)
	assert.Equal(t, entities.Manifest{}, m)
}

func TestManifest_ToCapabilitySet(t *testing.T) {
	m := entities.Manifest{
		Network: true,
		Read:    []string{"/data"},
		Env:     []string{"HOME"},
		Stdio:   true,
	}

	set := m.ToCapabilitySet()

	assert.True(t, set.Check(entities.ReadFiles("/data/file")))
	assert.False(t, set.Check(entities.WriteFiles("/data/file")))
	// Network collapses to a wildcard grant.
	assert.True(t, set.Check(entities.Network("anything.example.com")))
	assert.True(t, set.Check(entities.Environment("HOME")))
	assert.False(t, set.Check(entities.Environment("PATH")))
	assert.True(t, set.Check(entities.Stdio()))
	assert.False(t, set.Check(entities.Time()))
}

func TestManifest_YAMLRoundTrip(t *testing.T) {
	m := entities.Manifest{
		Network: true,
		Read:    []string{"/data", "/etc/app"},
		Write:   []string{"/out"},
		Time:    true,
		Stdio:   true,
	}

	data, err := m.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "network: true")
	assert.Contains(t, string(data), "/etc/app")

	parsed, err := entities.ManifestFromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestManifestFromYAML_Invalid(t *testing.T) {
	_, err := entities.ManifestFromYAML([]byte("read: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest")
}

func TestManifestSchema(t *testing.T) {
	schema, err := entities.ManifestSchema()
	require.NoError(t, err)

	text := string(schema)
	assert.Contains(t, text, `"network"`)
	assert.Contains(t, text, `"read"`)
	assert.Contains(t, text, `"stdio"`)
}
