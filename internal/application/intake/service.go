package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/go-med-reminder/internal/domain"
	"github.com/go-med-reminder/internal/pkg/clock"
	"github.com/go-med-reminder/internal/pkg/id"
	"github.com/go-med-reminder/internal/pkg/validate"
)

const (
	defaultHistoryDays = 7
	maxHistoryDays     = 365
)

// Ledger is the append-only intake log.
type Ledger interface {
	WasTakenToday(ctx context.Context, medication, scheduledTime string, day time.Time) (bool, error)
	Append(ctx context.Context, rec *domain.IntakeRecord) error
	History(ctx context.Context, days int, now time.Time) ([]domain.IntakeRecord, error)
}

type Service interface {
	// Confirm logs an intake for today's (medication, time) occurrence.
	// Confirming the same pair twice on one day returns ErrDuplicate and
	// writes nothing.
	Confirm(ctx context.Context, medication, scheduledTime string) (*domain.IntakeRecord, error)
	// History returns the records of the last days days, newest first.
	// Out-of-range values clamp silently to the default.
	History(ctx context.Context, days int) ([]domain.IntakeRecord, int, error)
}

type service struct {
	ledger Ledger
	clock  clock.Clock
}

func NewService(ledger Ledger, clk clock.Clock) Service {
	return &service{ledger: ledger, clock: clk}
}

type confirmInput struct {
	Medication string `validate:"required,max=100"`
	Time       string `validate:"required,hhmm"`
}

func (s *service) Confirm(ctx context.Context, medication, scheduledTime string) (*domain.IntakeRecord, error) {
	if err := validate.Struct(&confirmInput{Medication: medication, Time: scheduledTime}); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	now := s.clock.Now()
	taken, err := s.ledger.WasTakenToday(ctx, medication, scheduledTime, now)
	if err != nil {
		return nil, fmt.Errorf("intake lookup: %w", domain.ErrDependency)
	}
	if taken {
		return nil, fmt.Errorf("already taken today: %w", domain.ErrDuplicate)
	}

	rec := &domain.IntakeRecord{
		ID:            id.New(),
		Medication:    medication,
		ScheduledTime: scheduledTime,
		ActualTime:    now.Format("15:04:05"),
		Status:        domain.IntakeStatusTaken,
		CreatedAt:     now,
	}
	if err := s.ledger.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append intake: %w", domain.ErrDependency)
	}
	return rec, nil
}

func (s *service) History(ctx context.Context, days int) ([]domain.IntakeRecord, int, error) {
	if days < 1 || days > maxHistoryDays {
		days = defaultHistoryDays
	}
	records, err := s.ledger.History(ctx, days, s.clock.Now())
	if err != nil {
		return nil, 0, fmt.Errorf("query intake history: %w", domain.ErrDependency)
	}
	return records, days, nil
}
