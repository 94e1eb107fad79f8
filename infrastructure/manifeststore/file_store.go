// Package manifeststore persists approved capability manifests between
// runs, so a user who answered "always" is not prompted again.
package manifeststore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
	"github.com/AAEO04/ifa-lang-sub001/domain/ports"
)

type fileStoreConfig struct {
	path     string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		path:     filepath.Join(os.Getenv("HOME"), ".ifa", "capabilities.yaml"),
		dirPerm:  0o755,
		filePerm: 0o600, // the manifest is a security decision, user-only
	}
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*fileStoreConfig)

// WithPath sets the path to the manifest file.
func WithPath(path string) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.path = path
	}
}

// WithFilePermissions overrides the 0o600 default for the manifest file.
func WithFilePermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// WithDirPermissions overrides the 0o755 default for created directories.
func WithDirPermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.dirPerm = perm
	}
}

// FileStore is YAML-file-backed manifest persistence.
type FileStore struct {
	config fileStoreConfig
}

// Compile-time interface compliance check
var _ ports.ManifestStore = (*FileStore)(nil)

// NewFileStore creates a store with the given options.
func NewFileStore(opts ...FileStoreOption) *FileStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{config: cfg}
}

// Load returns the stored manifest. A missing file is not an error: it
// yields the zero manifest, which grants nothing.
func (s *FileStore) Load() (entities.Manifest, error) {
	data, err := os.ReadFile(s.config.path)
	if os.IsNotExist(err) {
		return entities.Manifest{}, nil
	}
	if err != nil {
		return entities.Manifest{}, fmt.Errorf("failed to read manifest store: %w", err)
	}
	return entities.ManifestFromYAML(data)
}

// Save persists the manifest, creating the directory when needed.
func (s *FileStore) Save(m entities.Manifest) error {
	data, err := m.ToYAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.config.path), s.config.dirPerm); err != nil {
		return fmt.Errorf("failed to create manifest store directory: %w", err)
	}
	if err := os.WriteFile(s.config.path, data, s.config.filePerm); err != nil {
		return fmt.Errorf("failed to write manifest store: %w", err)
	}
	return nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.config.path
}
