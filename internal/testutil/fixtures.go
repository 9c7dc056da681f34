package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/stridecoach/stride/internal/domain"
)

var testEmailCounter atomic.Int64

// Athlete options
type AthleteOption func(*domain.Athlete)

func WithEmail(email string) AthleteOption {
	return func(a *domain.Athlete) {
		a.Email = email
	}
}

func WithChatID(chatID string) AthleteOption {
	return func(a *domain.Athlete) {
		a.ChatID = chatID
	}
}

func NewTestAthlete(opts ...AthleteOption) *domain.Athlete {
	n := testEmailCounter.Add(1)
	a := &domain.Athlete{
		ID:        uuid.New().String(),
		Email:     fmt.Sprintf("athlete%d@example.com", n),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PlanVersion options
type PlanVersionOption func(*domain.PlanVersion)

func WithVersion(v int) PlanVersionOption {
	return func(pv *domain.PlanVersion) {
		pv.Version = v
	}
}

func WithMacroPlan(raw string) PlanVersionOption {
	return func(pv *domain.PlanVersion) {
		pv.MacroPlan = json.RawMessage(raw)
	}
}

func WithWeeks(raw string) PlanVersionOption {
	return func(pv *domain.PlanVersion) {
		pv.Weeks = json.RawMessage(raw)
	}
}

func NewTestPlanVersion(athleteID string, opts ...PlanVersionOption) *domain.PlanVersion {
	pv := &domain.PlanVersion{
		ID:        uuid.New().String(),
		AthleteID: athleteID,
		Version:   1,
		Weeks:     json.RawMessage(`[{"week_number":1,"days":{"monday":{"session_type":"run","title":"Easy run","duration_minutes":40,"structure":[],"cue":"Keep it conversational"}}}]`),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(pv)
	}
	return pv
}

// SessionRecord options
type SessionOption func(*domain.SessionRecord)

func WithDate(d time.Time) SessionOption {
	return func(s *domain.SessionRecord) {
		s.Date = d
	}
}

func WithSessionType(t string) SessionOption {
	return func(s *domain.SessionRecord) {
		s.SessionType = t
	}
}

func WithStatus(st domain.SessionStatus) SessionOption {
	return func(s *domain.SessionRecord) {
		s.Status = st
	}
}

func WithSkipReason(reason string) SessionOption {
	return func(s *domain.SessionRecord) {
		s.Status = domain.StatusSkipped
		s.SkipReason = reason
	}
}

func WithRPE(label string) SessionOption {
	return func(s *domain.SessionRecord) {
		s.RPE = label
	}
}

func WithNotes(notes string) SessionOption {
	return func(s *domain.SessionRecord) {
		s.Notes = notes
	}
}

func WithCompletedAt(t time.Time) SessionOption {
	return func(s *domain.SessionRecord) {
		s.CompletedAt = &t
	}
}

func NewTestSession(planID string, opts ...SessionOption) *domain.SessionRecord {
	s := &domain.SessionRecord{
		ID:          uuid.New().String(),
		PlanID:      planID,
		Date:        time.Now().UTC().Truncate(24 * time.Hour),
		SessionType: string(domain.SessionRun),
		Status:      domain.StatusPending,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
