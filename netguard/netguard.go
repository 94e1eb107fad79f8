// Package netguard is an unconditional SSRF blocklist layered in front of
// network capability checks. No capability grant ever overrides it: the
// final connection decision is capability check AND guard check.
package netguard

import (
	"net"
	"strings"

	sberrors "github.com/AAEO04/ifa-lang-sub001/domain/errors"
)

// blockedHosts are rejected by name, case-insensitively, on equality or
// suffix match. Loopback names and literals plus cloud metadata endpoints.
var blockedHosts = []string{
	"localhost",
	"127.0.0.1",
	"0.0.0.0",
	"::1",
	"metadata.google.internal",
	"169.254.169.254",
}

// Result is the outcome of a host validation.
type Result struct {
	// Allowed indicates whether the host may be connected to.
	Allowed bool `json:"allowed"`

	// Reason names the rule that blocked the host, empty when allowed.
	Reason string `json:"reason,omitempty"`
}

type guardConfig struct {
	extraBlocklist []string
	blockPrivate   bool
	blockLoopback  bool
	blockLinkLocal bool
}

// defaultGuardConfig blocks every SSRF-relevant address class.
func defaultGuardConfig() guardConfig {
	return guardConfig{
		blockPrivate:   true,
		blockLoopback:  true,
		blockLinkLocal: true,
	}
}

// Option configures host validation.
type Option func(*guardConfig)

// WithBlocklist adds hosts to the fixed deny list.
func WithBlocklist(hosts ...string) Option {
	return func(c *guardConfig) {
		c.extraBlocklist = append(c.extraBlocklist, hosts...)
	}
}

// WithBlockPrivate enables/disables blocking of RFC 1918 addresses.
// Disable only for tests.
func WithBlockPrivate(block bool) Option {
	return func(c *guardConfig) {
		c.blockPrivate = block
	}
}

// WithBlockLoopback enables/disables blocking of loopback addresses.
// Disable only for tests.
func WithBlockLoopback(block bool) Option {
	return func(c *guardConfig) {
		c.blockLoopback = block
	}
}

// WithBlockLinkLocal enables/disables blocking of link-local addresses.
// Disable only for tests.
func WithBlockLinkLocal(block bool) Option {
	return func(c *guardConfig) {
		c.blockLinkLocal = block
	}
}

// CheckHost validates an outbound target host (a domain name or IP
// literal, no port). The host is case-normalized and rejected when it
// matches the deny list or parses as a loopback, private, link-local, or
// unspecified IP.
func CheckHost(host string, opts ...Option) Result {
	cfg := defaultGuardConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	lower := strings.ToLower(strings.TrimSpace(host))
	if lower == "" {
		return Result{Allowed: false, Reason: "empty host"}
	}

	for _, blocked := range blockedHosts {
		if lower == blocked || strings.HasSuffix(lower, blocked) {
			return Result{Allowed: false, Reason: "host in deny list"}
		}
	}
	for _, blocked := range cfg.extraBlocklist {
		b := strings.ToLower(blocked)
		if lower == b || strings.HasSuffix(lower, b) {
			return Result{Allowed: false, Reason: "host in deny list"}
		}
	}

	if ip := net.ParseIP(lower); ip != nil {
		return checkIP(ip, cfg)
	}

	return Result{Allowed: true}
}

// Validate is the error-returning form of CheckHost: nil when the host is
// permitted, otherwise a *errors.SSRFError naming the host and the rule
// that blocked it. Unlike a capability denial, the error is not
// satisfiable by any grant.
func Validate(host string, opts ...Option) error {
	result := CheckHost(host, opts...)
	if result.Allowed {
		return nil
	}
	return &sberrors.SSRFError{Host: host, Reason: result.Reason}
}

func checkIP(ip net.IP, cfg guardConfig) Result {
	switch {
	case cfg.blockLoopback && ip.IsLoopback():
		return Result{Allowed: false, Reason: "loopback address blocked"}
	case cfg.blockPrivate && ip.IsPrivate():
		return Result{Allowed: false, Reason: "private address blocked"}
	case cfg.blockLinkLocal && (ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()):
		return Result{Allowed: false, Reason: "link-local address blocked"}
	case ip.IsUnspecified():
		return Result{Allowed: false, Reason: "unspecified address blocked"}
	}
	return Result{Allowed: true}
}
