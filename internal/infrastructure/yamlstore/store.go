// Package yamlstore persists the schedule configuration as a YAML file.
package yamlstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-med-reminder/internal/domain"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// Store reads and writes the schedule configuration. Every status request
// loads the config, so concurrent reads are coalesced into a single file
// read via singleflight.
type Store struct {
	path string
	mu   sync.Mutex // serializes file access
	sf   singleflight.Group
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the configuration, writing a default file on first use.
func (s *Store) Load() (*domain.ScheduleConfig, error) {
	v, err, _ := s.sf.Do("config", func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.load()
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ScheduleConfig), nil
}

func (s *Store) load() (*domain.ScheduleConfig, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := s.save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read schedule config: %w", err)
	}
	var cfg domain.ScheduleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse schedule config: %w", err)
	}
	if cfg.Settings.ReminderWindow == 0 {
		cfg.Settings.ReminderWindow = domain.DefaultReminderWindow
	}
	return &cfg, nil
}

// Save replaces the configuration wholesale.
func (s *Store) Save(cfg *domain.ScheduleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(cfg)
}

func (s *Store) save(cfg *domain.ScheduleConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode schedule config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write schedule config: %w", err)
	}
	return nil
}

// IsAllowed reports whether email is on the configured allow-list.
// Comparison is case-insensitive.
func (s *Store) IsAllowed(email string) (bool, error) {
	cfg, err := s.Load()
	if err != nil {
		return false, err
	}
	email = strings.ToLower(email)
	for _, allowed := range cfg.Auth.AllowedEmails {
		if strings.ToLower(allowed) == email {
			return true, nil
		}
	}
	return false, nil
}

// DefaultConfig is the configuration written when no file exists yet.
func DefaultConfig() *domain.ScheduleConfig {
	enabled := true
	return &domain.ScheduleConfig{
		Medications: []domain.MedicationSchedule{
			{Name: "Beispiel Medikament", Times: []string{"08:00", "20:00"}, Enabled: &enabled},
		},
		Settings: domain.Settings{
			ReminderWindow: domain.DefaultReminderWindow,
			Timezone:       "Europe/Berlin",
		},
	}
}
