package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// sections are the settings tables the config file may contain, one
// per provider group plus storage.
var sections = map[string]bool{
	"embedding":    true,
	"llm":          true,
	"vector_index": true,
	"storage":      true,
}

// ConfigStore persists settings in a TOML file with one table per
// settings section ([embedding], [llm], [vector_index], [storage]).
// Values are held flattened under "section.key" names in memory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]string
}

// NewConfigStore creates a TOML-backed config store.
// If configDir is empty, defaults to ~/.doclens/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".doclens")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		values:   make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// GetString returns the value stored under a "section.key" name.
func (s *ConfigStore) GetString(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stores a value and rewrites the file. The key must name a known
// settings section.
func (s *ConfigStore) Set(key, value string) error {
	section, _, ok := strings.Cut(key, ".")
	if !ok || !sections[section] {
		return fmt.Errorf("%w: unknown settings key %q", domain.ErrInvalidInput, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// load reads the settings file. A missing file starts the store empty.
func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	// Unknown tables and non-string leaves in a hand-edited file are
	// skipped rather than failing startup.
	for section, value := range raw {
		entries, ok := value.(map[string]any)
		if !ok || !sections[section] {
			continue
		}
		for key, v := range entries {
			if str, ok := v.(string); ok {
				s.values[section+"."+key] = str
			}
		}
	}
	return nil
}

// save rebuilds the section tables from the flattened values and
// rewrites the file (caller must hold the lock).
func (s *ConfigStore) save() error {
	tables := make(map[string]map[string]string)
	for name, value := range s.values {
		section, key, _ := strings.Cut(name, ".")
		if tables[section] == nil {
			tables[section] = make(map[string]string)
		}
		tables[section][key] = value
	}

	data, err := toml.Marshal(tables)
	if err != nil {
		return err
	}

	// The file holds API keys, so keep it private to the user.
	return os.WriteFile(s.filePath, data, 0600)
}
