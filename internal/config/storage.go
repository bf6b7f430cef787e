package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/piggy/internal/common"
	"github.com/Veraticus/piggy/internal/storage"
)

// Viper keys read by LoadStorageConfig.
const (
	KeyStorageBackend  = "storage.backend"
	KeyStoragePath     = "storage.path"
	KeyGoalsCategories = "goals.categories"
)

// StorageConfig selects the goal store and the category vocabulary used when
// the store does not carry its own.
type StorageConfig struct {
	Backend    string
	Path       string
	Categories []string
}

// DefaultStorageConfig returns a JSON store at goals.json in the working
// directory.
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend: storage.BackendJSON,
		Path:    storage.DefaultJSONPath,
	}
}

// Validate checks that the backend is known and a path is set.
func (c StorageConfig) Validate() error {
	switch c.Backend {
	case storage.BackendJSON, storage.BackendSQLite:
	default:
		return fmt.Errorf("%w: %s must be %q or %q, got %q",
			common.ErrInvalidConfig, KeyStorageBackend, storage.BackendJSON, storage.BackendSQLite, c.Backend)
	}
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyStoragePath)
	}
	for _, category := range c.Categories {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("%w: %s contains an empty name", common.ErrInvalidConfig, KeyGoalsCategories)
		}
	}
	return nil
}

// LoadStorageConfig reads storage settings from viper (config file, PIGGY_
// environment variables and bound flags) over the defaults.
func LoadStorageConfig() (*StorageConfig, error) {
	return loadStorageConfig(viper.GetViper())
}

func loadStorageConfig(v *viper.Viper) (*StorageConfig, error) {
	cfg := DefaultStorageConfig()

	if backend := strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))); backend != "" {
		cfg.Backend = backend
	}
	if path := v.GetString(KeyStoragePath); path != "" {
		cfg.Path = ExpandPath(path)
	}
	if categories := v.GetStringSlice(KeyGoalsCategories); len(categories) > 0 {
		cfg.Categories = slices.Clone(categories)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
