// Package config persists and resolves per-process-type column settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
	"gopkg.in/yaml.v3"
)

// Store loads and saves the saved configurations, keyed by process type.
type Store interface {
	Load() (map[models.ProcessType]models.ProcessConfig, error)
	Save(configs map[models.ProcessType]models.ProcessConfig) error
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mergesplit", "process_types.yaml"), nil
}

// FileStore keeps configurations in a YAML file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path, or DefaultPath when path is empty.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{Path: path}, nil
}

// Load reads the file. A missing file yields an empty set.
func (s *FileStore) Load() (map[models.ProcessType]models.ProcessConfig, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return map[models.ProcessType]models.ProcessConfig{}, nil
	}
	if err != nil {
		return nil, err
	}

	configs := make(map[models.ProcessType]models.ProcessConfig)
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	for key, cfg := range configs {
		if cfg.ProcessType == "" {
			cfg.ProcessType = key
			configs[key] = cfg
		}
	}
	return configs, nil
}

// Save writes the file through a temporary file and a rename.
func (s *FileStore) Save(configs map[models.ProcessType]models.ProcessConfig) error {
	data, err := yaml.Marshal(configs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".process_types-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

// MemoryStore keeps configurations in memory.
type MemoryStore struct {
	mu      sync.Mutex
	configs map[models.ProcessType]models.ProcessConfig
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{configs: make(map[models.ProcessType]models.ProcessConfig)}
}

func (s *MemoryStore) Load() (map[models.ProcessType]models.ProcessConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[models.ProcessType]models.ProcessConfig, len(s.configs))
	for k, v := range s.configs {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Save(configs map[models.ProcessType]models.ProcessConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs = make(map[models.ProcessType]models.ProcessConfig, len(configs))
	for k, v := range configs {
		s.configs[k] = v
	}
	return nil
}
