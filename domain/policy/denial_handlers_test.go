package policy_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	"github.com/AAEO04/ifa-lang-sub001/domain/policy"
	"github.com/stretchr/testify/assert"
)

func TestSlogDenialHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := &policy.SlogDenialHandler{
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	}

	handler.OnDenial(entities.Network("example.com"), "main.ifa:7")

	out := buf.String()
	assert.Contains(t, out, "capability denied")
	assert.Contains(t, out, "network")
	assert.Contains(t, out, "main.ifa:7")
}

func TestNopDenialHandler(t *testing.T) {
	// Must be callable without any setup.
	policy.NopDenialHandler{}.OnDenial(entities.Stdio(), "main.ifa:1")
}
