package policy

import (
	"log/slog"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
)

// SlogDenialHandler logs denials through the default slog logger.
// This is the default handler.
type SlogDenialHandler struct {
	// Logger overrides slog.Default when set.
	Logger *slog.Logger
}

// OnDenial implements ports.DenialHandler.
func (h *SlogDenialHandler) OnDenial(required entities.Capability, callSite string) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("capability denied",
		"required", required.String(),
		"call_site", callSite,
	)
}

// NopDenialHandler ignores denials. Useful in tests.
type NopDenialHandler struct{}

// OnDenial implements ports.DenialHandler.
func (NopDenialHandler) OnDenial(entities.Capability, string) {}
