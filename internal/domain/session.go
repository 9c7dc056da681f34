package domain

import "time"

// SessionRecord is the outcome log for a single delivered session. Records
// start pending and collect status, RPE, skip reason, and notes through the
// check-in flow.
type SessionRecord struct {
	ID          string
	PlanID      string
	Date        time.Time
	SessionType string
	Status      SessionStatus
	SkipReason  string // free-form at the edge; aggregation only buckets the fixed four
	RPE         string // bucket label, e.g. "6-7"
	CueFeedback string
	Notes       string
	CompletedAt *time.Time
}

// Weekday returns the record's calendar weekday as a lowercase name
// ("sunday" .. "saturday").
func (s *SessionRecord) Weekday() string {
	switch s.Date.Weekday() {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}
