package status

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/go-med-reminder/internal/domain"
	"github.com/go-med-reminder/internal/pkg/clock"
	"github.com/go-med-reminder/internal/pkg/ttlcache"
	"github.com/go-med-reminder/internal/pkg/validate"
	"github.com/go-med-reminder/internal/pkg/weekday"
)

// snoozeDuration is the fixed suppression applied by a snooze.
const snoozeDuration = 5 * time.Minute

// SnoozeKey identifies one occurrence of a medication. The same medication
// at different scheduled times snoozes independently.
type SnoozeKey struct {
	Medication string
	Time       string
}

// ScheduleStore supplies the current configuration, read-only per evaluation.
type ScheduleStore interface {
	Load() (*domain.ScheduleConfig, error)
}

// IntakeLedger answers whether a dose was already confirmed today.
type IntakeLedger interface {
	WasTakenToday(ctx context.Context, medication, scheduledTime string, day time.Time) (bool, error)
}

type Service interface {
	// Report classifies every pending dose scheduled for today into
	// overdue, due and upcoming buckets.
	Report(ctx context.Context) (*domain.StatusReport, error)
	// Snooze suppresses one (medication, time) occurrence for five minutes
	// and returns the instant it reappears.
	Snooze(ctx context.Context, medication, scheduledTime string) (time.Time, error)
}

type service struct {
	store   ScheduleStore
	ledger  IntakeLedger
	snoozes *ttlcache.Cache[SnoozeKey, time.Time]
	clock   clock.Clock
}

func NewService(store ScheduleStore, ledger IntakeLedger, snoozes *ttlcache.Cache[SnoozeKey, time.Time], clk clock.Clock) Service {
	return &service{store: store, ledger: ledger, snoozes: snoozes, clock: clk}
}

type snoozeInput struct {
	Medication string `validate:"required,max=100"`
	Time       string `validate:"required,hhmm"`
}

func (s *service) Snooze(ctx context.Context, medication, scheduledTime string) (time.Time, error) {
	if err := validate.Struct(&snoozeInput{Medication: medication, Time: scheduledTime}); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	until := s.clock.Now().Add(snoozeDuration)
	s.snoozes.Set(SnoozeKey{Medication: medication, Time: scheduledTime}, until, snoozeDuration)
	return until, nil
}

func (s *service) Report(ctx context.Context) (*domain.StatusReport, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load schedule config: %w", domain.ErrDependency)
	}
	// One clock snapshot for the whole pass so a dose cannot change buckets
	// mid-computation.
	now := s.clock.Now()
	window := float64(cfg.Settings.ReminderWindow)
	if window <= 0 {
		window = domain.DefaultReminderWindow
	}

	overdue := []domain.StatusEntry{}
	due := []domain.StatusEntry{}
	upcoming := []domain.StatusEntry{}

	for _, med := range cfg.Medications {
		if !med.IsEnabled() {
			continue
		}
		if !weekday.ScheduledOn(med.Days, now.Weekday()) {
			continue
		}
		for _, timeStr := range med.Times {
			scheduled, err := scheduledAt(now, timeStr)
			if err != nil {
				slog.Warn("skipping malformed schedule time", "medication", med.Name, "time", timeStr)
				continue
			}
			taken, err := s.ledger.WasTakenToday(ctx, med.Name, timeStr, now)
			if err != nil {
				return nil, fmt.Errorf("intake lookup: %w", domain.ErrDependency)
			}
			if taken {
				continue
			}
			if s.isSnoozed(med.Name, timeStr, now) {
				continue
			}

			diff := now.Sub(scheduled).Minutes()
			entry := domain.StatusEntry{
				Medication:  med.Name,
				Time:        timeStr,
				Scheduled:   scheduled.Format(time.RFC3339),
				MinutesDiff: int(math.Abs(diff)),
			}
			// Overdue is evaluated first: at diff == window the dose is still
			// due, one minute past it is overdue. The due lower bound is
			// inclusive (diff >= -window) on purpose.
			switch {
			case diff > window:
				entry.MinutesLate = intPtr(int(diff))
				overdue = append(overdue, entry)
			case diff >= -window:
				if diff > 0 {
					entry.MinutesLate = intPtr(int(diff))
				} else {
					entry.MinutesUntil = intPtr(int(-diff))
				}
				due = append(due, entry)
			default:
				entry.MinutesUntil = intPtr(int(-diff))
				upcoming = append(upcoming, entry)
			}
		}
	}

	sortByTime(overdue)
	sortByTime(due)
	sortByTime(upcoming)

	return &domain.StatusReport{
		Overdue:   overdue,
		Due:       due,
		Upcoming:  upcoming,
		Timestamp: now.Format(time.RFC3339),
		Settings:  cfg.Settings,
	}, nil
}

// isSnoozed consults the snooze cache, evicting the entry once its
// suppression has lapsed. A snooze ends at exactly its snooze-until instant.
func (s *service) isSnoozed(medication, scheduledTime string, now time.Time) bool {
	key := SnoozeKey{Medication: medication, Time: scheduledTime}
	until, ok := s.snoozes.Get(key)
	if !ok {
		return false
	}
	if now.Before(until) {
		return true
	}
	s.snoozes.Delete(key)
	return false
}

// scheduledAt combines today's date with an HH:MM time-of-day in now's
// location.
func scheduledAt(now time.Time, timeStr string) (time.Time, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

func sortByTime(entries []domain.StatusEntry) {
	// Lexical sort is chronological because configured times are zero-padded.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Time < entries[j].Time })
}

func intPtr(n int) *int { return &n }
