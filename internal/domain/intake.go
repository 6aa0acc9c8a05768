package domain

import "time"

// IntakeStatusTaken is the only status the core writes to the ledger.
const IntakeStatusTaken = "taken"

// IntakeRecord is one confirmed intake. Records are append-only: once
// written they are never mutated or deleted.
type IntakeRecord struct {
	ID            string    `json:"id"`
	Medication    string    `json:"medication"`
	ScheduledTime string    `json:"scheduled_time"`
	ActualTime    string    `json:"actual_time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
