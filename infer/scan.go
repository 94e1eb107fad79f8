package infer

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	sberrors "github.com/AAEO04/ifa-lang-sub001/domain/errors"
	"github.com/AAEO04/ifa-lang-sub001/domain/ports"
)

// DefaultSourcePattern matches guest source files anywhere under the
// scanned root.
const DefaultSourcePattern = "**/*.ifa"

type scanConfig struct {
	pattern string
	logger  *slog.Logger
}

func defaultScanConfig() scanConfig {
	return scanConfig{
		pattern: DefaultSourcePattern,
		logger:  slog.Default(),
	}
}

// ScanOption configures a project scan.
type ScanOption func(*scanConfig)

// WithSourcePattern overrides the glob used to discover guest sources.
func WithSourcePattern(pattern string) ScanOption {
	return func(c *scanConfig) {
		c.pattern = pattern
	}
}

// WithLogger sets the logger used for per-file warnings.
func WithLogger(logger *slog.Logger) ScanOption {
	return func(c *scanConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ScanResult is the outcome of a best-effort project scan.
type ScanResult struct {
	// Capabilities is the merged estimate across every parsed file.
	Capabilities *entities.CapabilitySet

	// Files lists the sources that parsed and contributed to the estimate.
	Files []string

	// Warnings holds one *errors.ParseError per skipped file.
	Warnings []error
}

// Manifest summarizes the merged estimate for deployment tooling.
func (r *ScanResult) Manifest() entities.Manifest {
	return entities.ManifestFromSet(r.Capabilities)
}

// ScanProject discovers guest sources under root, parses each with the
// injected parser, and merges the per-file inference results. Scanning is
// best-effort, not atomic: a file that fails to parse is reported as a
// warning and skipped while the remaining files are still scanned.
func ScanProject(root string, parser ports.Parser, opts ...ScanOption) (*ScanResult, error) {
	cfg := defaultScanConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	matches, err := doublestar.Glob(os.DirFS(root), cfg.pattern)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Capabilities: entities.NewCapabilitySet()}
	// Stdio is granted once for the whole project, not per file.
	result.Capabilities.Grant(entities.Stdio())

	for _, rel := range matches {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if skip := notRegularFile(path); skip {
			continue
		}
		source, err := os.ReadFile(path)
		if err != nil {
			cfg.logger.Warn("skipping unreadable source", "path", path, "error", err)
			result.Warnings = append(result.Warnings, &sberrors.ParseError{Path: path, Err: err})
			continue
		}
		program, err := parser.Parse(string(source))
		if err != nil {
			cfg.logger.Warn("skipping unparsable source", "path", path, "error", err)
			result.Warnings = append(result.Warnings, &sberrors.ParseError{Path: path, Err: err})
			continue
		}
		fileCaps := Infer(program)
		for _, cap := range fileCaps.All() {
			if cap.Kind == entities.KindStdio {
				continue
			}
			result.Capabilities.Grant(cap)
		}
		result.Files = append(result.Files, path)
	}

	return result, nil
}

func notRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return !info.Mode().IsRegular()
}
