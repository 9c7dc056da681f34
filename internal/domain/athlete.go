package domain

import "time"

// Athlete owns plans and session records.
type Athlete struct {
	ID        string
	Email     string
	ChatID    string // messaging channel identifier, empty until connected
	CreatedAt time.Time
}
