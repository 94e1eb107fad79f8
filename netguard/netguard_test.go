package netguard_test

import (
	goerrors "errors"
	"testing"

	sberrors "github.com/AAEO04/ifa-lang-sub001/domain/errors"
	"github.com/AAEO04/ifa-lang-sub001/netguard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHost_DenyList(t *testing.T) {
	tests := []struct {
		name string
		host string
	}{
		{name: "localhost", host: "localhost"},
		{name: "localhost uppercase", host: "LOCALHOST"},
		{name: "loopback v4 literal", host: "127.0.0.1"},
		{name: "all-zeros", host: "0.0.0.0"},
		{name: "loopback v6 literal", host: "::1"},
		{name: "gcp metadata name", host: "metadata.google.internal"},
		{name: "metadata ip", host: "169.254.169.254"},
		{name: "subdomain suffix of blocked name", host: "foo.metadata.google.internal"},
		{name: "whitespace trimmed", host: "  localhost  "},
		{name: "empty host", host: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := netguard.CheckHost(tt.host)
			assert.False(t, result.Allowed)
			assert.NotEmpty(t, result.Reason)
		})
	}
}

func TestCheckHost_IPClasses(t *testing.T) {
	tests := []struct {
		name string
		host string
		want bool
	}{
		{name: "private 10.x", host: "10.0.0.5", want: false},
		{name: "private 192.168.x", host: "192.168.1.1", want: false},
		{name: "private 172.16.x", host: "172.16.0.1", want: false},
		{name: "loopback range", host: "127.0.0.53", want: false},
		{name: "link-local unicast", host: "169.254.1.1", want: false},
		{name: "public v4", host: "93.184.216.34", want: true},
		{name: "public v6", host: "2606:2800:220:1:248:1893:25c8:1946", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, netguard.CheckHost(tt.host).Allowed)
		})
	}
}

func TestCheckHost_PublicNamesAllowed(t *testing.T) {
	for _, host := range []string{"example.com", "api.example.com", "go.dev"} {
		result := netguard.CheckHost(host)
		assert.True(t, result.Allowed, host)
		assert.Empty(t, result.Reason)
	}
}

func TestCheckHost_ExtraBlocklist(t *testing.T) {
	result := netguard.CheckHost("internal.corp.example", netguard.WithBlocklist("corp.example"))
	assert.False(t, result.Allowed)

	// Extra entries do not leak into unconfigured calls.
	assert.True(t, netguard.CheckHost("internal.corp.example").Allowed)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, netguard.Validate("example.com"))

	err := netguard.Validate("metadata.google.internal")
	require.Error(t, err)

	var ssrfErr *sberrors.SSRFError
	require.True(t, goerrors.As(err, &ssrfErr))
	assert.Equal(t, "metadata.google.internal", ssrfErr.Host)
	assert.Equal(t, "host in deny list", ssrfErr.Reason)
	assert.Contains(t, err.Error(), "blocked")
}

func TestValidate_IPClassReason(t *testing.T) {
	var ssrfErr *sberrors.SSRFError
	require.True(t, goerrors.As(netguard.Validate("10.0.0.5"), &ssrfErr))
	assert.Equal(t, "private address blocked", ssrfErr.Reason)
}

func TestCheckHost_ClassTogglesAreForTestsOnly(t *testing.T) {
	// Private addresses pass when the class is disabled; the fixed deny
	// list still applies.
	assert.True(t, netguard.CheckHost("10.0.0.5", netguard.WithBlockPrivate(false)).Allowed)
	assert.False(t, netguard.CheckHost("127.0.0.1", netguard.WithBlockLoopback(false)).Allowed)
}
