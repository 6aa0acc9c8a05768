package domain

// DefaultReminderWindow is the reminder window in minutes used when the
// configuration does not set one.
const DefaultReminderWindow = 30

// MedicationSchedule is one recurring medication definition. A schedule is
// immutable per evaluation; it changes only through a full configuration
// replace.
type MedicationSchedule struct {
	Name string `json:"name" yaml:"name" validate:"required,max=100"`
	// Times are zero-padded HH:MM time-of-day strings, one per daily dose.
	Times []string `json:"times" yaml:"times" validate:"required,min=1,dive,hhmm"`
	// Days holds recurrence day tokens (English or German names and
	// abbreviations, case-insensitive). Empty means every day.
	Days    []string `json:"days,omitempty" yaml:"days,omitempty"`
	Enabled *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// IsEnabled treats a missing enabled flag as true.
func (m MedicationSchedule) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// Settings holds the global reminder settings.
type Settings struct {
	ReminderWindow int    `json:"reminder_window" yaml:"reminder_window" validate:"gte=0,lte=1440"`
	Timezone       string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// AuthConfig is the auth section of the schedule configuration.
type AuthConfig struct {
	AllowedEmails []string `json:"allowed_emails,omitempty" yaml:"allowed_emails,omitempty"`
}

// ScheduleConfig is the full persisted configuration: medication schedules,
// global settings and the email allow-list.
type ScheduleConfig struct {
	Medications []MedicationSchedule `json:"medications" yaml:"medications" validate:"dive"`
	Settings    Settings             `json:"settings" yaml:"settings"`
	Auth        AuthConfig           `json:"auth,omitempty" yaml:"auth,omitempty"`
}
