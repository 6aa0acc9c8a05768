package schedule

import (
	"context"
	"fmt"

	"github.com/go-med-reminder/internal/domain"
	"github.com/go-med-reminder/internal/pkg/validate"
)

// Store persists the schedule configuration.
type Store interface {
	Load() (*domain.ScheduleConfig, error)
	Save(cfg *domain.ScheduleConfig) error
}

type Service interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	// Replace swaps the whole configuration. Partial updates are not
	// supported; callers send the complete document.
	Replace(ctx context.Context, cfg *domain.ScheduleConfig) error
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load schedule config: %w", domain.ErrDependency)
	}
	return cfg, nil
}

func (s *service) Replace(ctx context.Context, cfg *domain.ScheduleConfig) error {
	if cfg == nil || cfg.Medications == nil {
		return fmt.Errorf("invalid config structure: %w", domain.ErrBadRequest)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if err := s.store.Save(cfg); err != nil {
		return fmt.Errorf("save schedule config: %w", domain.ErrDependency)
	}
	return nil
}
