package wazero

import (
	"crypto/rand"
	"io"
	"os"
	"strings"

	"github.com/tetratelabs/wazero"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
)

// moduleConfig derives the guest's WASI surface from the granted set and
// nothing else:
//
//   - Stdio grant wires the standard streams (stdout/stderr captured for
//     the handle, stdin inherited); without it the guest gets no streams.
//   - Each ReadFiles/WriteFiles grant preopens exactly that directory,
//     read-only or read-write, at the same guest path.
//   - An Environment grant with the wildcard key inherits the whole host
//     environment; named keys are copied in individually.
//   - Time and Random grants wire the real clock and entropy source;
//     without them the guest sees wazero's deterministic defaults.
func moduleConfig(caps *entities.CapabilitySet, stdout, stderr io.Writer) wazero.ModuleConfig {
	cfg := wazero.NewModuleConfig().WithArgs()

	if caps == nil {
		return cfg
	}

	if caps.Check(entities.Stdio()) {
		cfg = cfg.WithStdin(os.Stdin).WithStdout(stdout).WithStderr(stderr)
	}

	if fsCfg := fsConfig(caps); fsCfg != nil {
		cfg = cfg.WithFSConfig(fsCfg)
	}

	cfg = envConfig(cfg, caps)

	if caps.Check(entities.Time()) {
		cfg = cfg.WithSysWalltime().WithSysNanotime()
	}
	if caps.Check(entities.Random()) {
		cfg = cfg.WithRandSource(rand.Reader)
	}

	return cfg
}

func fsConfig(caps *entities.CapabilitySet) wazero.FSConfig {
	var fsCfg wazero.FSConfig
	for _, cap := range caps.All() {
		switch cap.Kind {
		case entities.KindReadFiles, entities.KindWriteFiles:
		default:
			continue
		}
		info, err := os.Stat(cap.Root)
		if err != nil || !info.IsDir() {
			// Grants may name files or not-yet-existing paths; only real
			// directories can be preopened.
			continue
		}
		if fsCfg == nil {
			fsCfg = wazero.NewFSConfig()
		}
		guestPath := guestMountPath(cap.Root)
		if cap.Kind == entities.KindReadFiles {
			fsCfg = fsCfg.WithReadOnlyDirMount(cap.Root, guestPath)
		} else {
			fsCfg = fsCfg.WithDirMount(cap.Root, guestPath)
		}
	}
	return fsCfg
}

// guestMountPath mirrors the host directory at the same location inside
// the guest so literal paths from the source keep working.
func guestMountPath(root string) string {
	p := strings.ReplaceAll(root, "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func envConfig(cfg wazero.ModuleConfig, caps *entities.CapabilitySet) wazero.ModuleConfig {
	for _, cap := range caps.All() {
		if cap.Kind != entities.KindEnvironment {
			continue
		}
		for _, key := range cap.Values {
			if key == entities.Wildcard {
				for _, kv := range os.Environ() {
					if k, v, ok := strings.Cut(kv, "="); ok {
						cfg = cfg.WithEnv(k, v)
					}
				}
				return cfg
			}
			if val, ok := os.LookupEnv(key); ok {
				cfg = cfg.WithEnv(key, val)
			}
		}
	}
	return cfg
}
