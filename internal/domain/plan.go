package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// PlanVersion is an immutable snapshot of a validated plan. Every accepted
// re-submission appends a new version; versions are never mutated in place.
type PlanVersion struct {
	ID        string
	AthleteID string
	Version   int
	MacroPlan json.RawMessage // nil when the plan carried no macro_plan
	Weeks     json.RawMessage
	CreatedAt time.Time
}

// Plan is the typed view of a normalized plan document. It is decoded from
// the permissive map tree the validator produces; fields the schema does not
// know about are dropped from this view but survive in the stored document.
type Plan struct {
	MacroPlan map[string]any `json:"macro_plan,omitempty"`
	Weeks     []Week         `json:"weeks"`
}

type Week struct {
	WeekNumber   int                   `json:"week_number"`
	Focus        string                `json:"focus,omitempty"`
	SpacingRules []string              `json:"spacing_rules,omitempty"`
	Days         map[string]DaySession `json:"days"`
}

type DaySession struct {
	SessionType     string             `json:"session_type"`
	Title           string             `json:"title"`
	DurationMinutes float64            `json:"duration_minutes"`
	Cue             string             `json:"cue"`
	Structure       []StructureSegment `json:"structure"`
	Strength        *StrengthBlock     `json:"strength,omitempty"`
}

type StructureSegment struct {
	Segment     string  `json:"segment,omitempty"`
	Type        string  `json:"type,omitempty"`
	Minutes     float64 `json:"minutes,omitempty"`
	Reps        float64 `json:"reps,omitempty"`
	RepDuration string  `json:"rep_duration,omitempty"`
	Intensity   string  `json:"intensity,omitempty"`
	Description string  `json:"description,omitempty"`
}

type StrengthBlock struct {
	Timing          string   `json:"timing"`
	DurationMinutes *float64 `json:"duration_minutes"`
	Focus           *string  `json:"focus"`
	Exercises       []string `json:"exercises"`
}

// DecodePlan converts a normalized plan document into the typed view.
func DecodePlan(doc map[string]any) (*Plan, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding plan document: %w", err)
	}
	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decoding plan document: %w", err)
	}
	return &p, nil
}

// DayPreview is a single row of a week's display table.
type DayPreview struct {
	Day     string
	Session string
	Cue     string
}

// WeekPreview returns one row per defined day in Monday-first order.
func (w *Week) Preview() []DayPreview {
	var rows []DayPreview
	for _, name := range WeekdayKeys {
		day, ok := w.Days[name]
		if !ok {
			continue
		}
		rows = append(rows, DayPreview{
			Day:     capitalize(name),
			Session: day.SessionPreview(),
			Cue:     day.Cue,
		})
	}
	return rows
}

// SessionPreview summarizes a day for display, e.g. "Tempo intervals (45min)".
func (d *DaySession) SessionPreview() string {
	if d.SessionType == string(SessionRest) {
		return "Rest"
	}
	title := d.Title
	if title == "" {
		title = "Untitled"
	}
	if d.DurationMinutes > 0 {
		return fmt.Sprintf("%s (%.0fmin)", title, d.DurationMinutes)
	}
	return fmt.Sprintf("%s (?min)", title)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
