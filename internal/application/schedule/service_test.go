package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/go-med-reminder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Load() (*domain.ScheduleConfig, error) {
	args := m.Called()
	if cfg, _ := args.Get(0).(*domain.ScheduleConfig); cfg != nil {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Save(cfg *domain.ScheduleConfig) error {
	return m.Called(cfg).Error(0)
}

func validConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		Medications: []domain.MedicationSchedule{
			{Name: "Aspirin", Times: []string{"08:00"}},
		},
		Settings: domain.Settings{ReminderWindow: 30},
	}
}

func TestReplace_HappyPath(t *testing.T) {
	st := &mockStore{}
	cfg := validConfig()
	st.On("Save", cfg).Return(nil)

	require.NoError(t, NewService(st).Replace(context.Background(), cfg))
	st.AssertExpectations(t)
}

func TestReplace_RejectsMissingMedications(t *testing.T) {
	st := &mockStore{}
	err := NewService(st).Replace(context.Background(), &domain.ScheduleConfig{
		Settings: domain.Settings{ReminderWindow: 30},
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	st.AssertNotCalled(t, "Save", mock.Anything)
}

func TestReplace_RejectsInvalidMedication(t *testing.T) {
	st := &mockStore{}
	svc := NewService(st)

	cfg := validConfig()
	cfg.Medications[0].Times = []string{"24:00"}
	assert.ErrorIs(t, svc.Replace(context.Background(), cfg), domain.ErrBadRequest)

	cfg = validConfig()
	cfg.Medications[0].Name = ""
	assert.ErrorIs(t, svc.Replace(context.Background(), cfg), domain.ErrBadRequest)

	st.AssertNotCalled(t, "Save", mock.Anything)
}

func TestReplace_SaveFailure(t *testing.T) {
	st := &mockStore{}
	cfg := validConfig()
	st.On("Save", cfg).Return(errors.New("disk full"))

	err := NewService(st).Replace(context.Background(), cfg)
	assert.ErrorIs(t, err, domain.ErrDependency)
}

func TestGet(t *testing.T) {
	st := &mockStore{}
	cfg := validConfig()
	st.On("Load").Return(cfg, nil)

	got, err := NewService(st).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
