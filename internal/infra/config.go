package infra

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

const configFileName = "config.toml"

// TOMLConfigStore persists the application configuration as a TOML
// document in the application config directory.
type TOMLConfigStore struct {
	path   string
	logger *zap.Logger
}

// NewConfigStore creates a store at the default config location.
func NewConfigStore(logger *zap.Logger) (*TOMLConfigStore, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return NewConfigStoreWithPath(filepath.Join(dir, configFileName), logger), nil
}

// NewConfigStoreWithPath creates a store with a custom path (for testing).
func NewConfigStoreWithPath(path string, logger *zap.Logger) *TOMLConfigStore {
	return &TOMLConfigStore{path: path, logger: logger}
}

// Path returns the config file location.
func (s *TOMLConfigStore) Path() string { return s.path }

// Load returns the stored configuration. A missing file yields defaults;
// a file that fails to parse is a fatal startup condition.
func (s *TOMLConfigStore) Load() (*domain.Config, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", s.path, err)
	}

	var cfg domain.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptConfig, s.path, err)
	}
	return &cfg, nil
}

// Save writes the configuration.
func (s *TOMLConfigStore) Save(cfg *domain.Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := writeFileAtomic(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config %s: %w", s.path, err)
	}
	if s.logger != nil {
		s.logger.Info("configuration saved", zap.String("path", s.path))
	}
	return nil
}

// Ensure TOMLConfigStore implements domain.ConfigStore.
var _ domain.ConfigStore = (*TOMLConfigStore)(nil)
