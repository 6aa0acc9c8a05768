package yamlstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-med-reminder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "reminder.yaml"))
}

func TestLoad_BootstrapsDefaultConfig(t *testing.T) {
	s := newTestStore(t)

	cfg, err := s.Load()
	require.NoError(t, err)
	require.Len(t, cfg.Medications, 1)
	assert.Equal(t, "Beispiel Medikament", cfg.Medications[0].Name)
	assert.Equal(t, domain.DefaultReminderWindow, cfg.Settings.ReminderWindow)

	_, err = os.Stat(s.path)
	assert.NoError(t, err, "default config file should have been written")
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := &domain.ScheduleConfig{
		Medications: []domain.MedicationSchedule{
			{Name: "Aspirin", Times: []string{"08:00"}, Days: []string{"mo", "fr"}},
		},
		Settings: domain.Settings{ReminderWindow: 45, Timezone: "Europe/Berlin"},
		Auth:     domain.AuthConfig{AllowedEmails: []string{"User@Example.com"}},
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in.Medications, out.Medications)
	assert.Equal(t, 45, out.Settings.ReminderWindow)
	assert.Equal(t, in.Auth.AllowedEmails, out.Auth.AllowedEmails)
}

func TestLoad_DefaultsMissingWindow(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(&domain.ScheduleConfig{
		Medications: []domain.MedicationSchedule{{Name: "Aspirin", Times: []string{"08:00"}}},
	}))

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReminderWindow, cfg.Settings.ReminderWindow)
}

func TestIsAllowed_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(&domain.ScheduleConfig{
		Auth: domain.AuthConfig{AllowedEmails: []string{"User@Example.com"}},
	}))

	ok, err := s.IsAllowed("user@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsAllowed("other@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMedicationEnabledDefaultsTrue(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("medications:\n  - name: Aspirin\n    times: [\"08:00\"]\n"), 0o600))

	cfg, err := s.Load()
	require.NoError(t, err)
	require.Len(t, cfg.Medications, 1)
	assert.True(t, cfg.Medications[0].IsEnabled())
}
