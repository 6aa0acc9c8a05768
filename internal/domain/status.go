package domain

// StatusEntry describes one pending scheduled dose. Exactly one of
// MinutesLate or MinutesUntil is set, depending on the bucket.
type StatusEntry struct {
	Medication   string `json:"medication"`
	Time         string `json:"time"`
	Scheduled    string `json:"scheduled"` // today's scheduled instant, RFC 3339
	MinutesDiff  int    `json:"minutes_diff"`
	MinutesLate  *int   `json:"minutes_late,omitempty"`
	MinutesUntil *int   `json:"minutes_until,omitempty"`
}

// StatusReport partitions today's pending doses into overdue, due and
// upcoming, each sorted ascending by time-of-day.
type StatusReport struct {
	Overdue   []StatusEntry `json:"overdue"`
	Due       []StatusEntry `json:"due"`
	Upcoming  []StatusEntry `json:"upcoming"`
	Timestamp string        `json:"timestamp"`
	Settings  Settings      `json:"settings"`
}
