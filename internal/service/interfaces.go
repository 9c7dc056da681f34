// Package service implements the application use cases on top of the
// validation pipeline, the feedback aggregator, and the persistence layer.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/stridecoach/stride/internal/domain"
	"github.com/stridecoach/stride/internal/feedback"
	"github.com/stridecoach/stride/internal/validation"
)

var (
	// ErrInvalidRPE is returned when a check-in carries an RPE label outside
	// the accepted buckets.
	ErrInvalidRPE = errors.New("invalid RPE label")

	// ErrInvalidStatus is returned when a check-in carries an unknown status.
	ErrInvalidStatus = errors.New("invalid session status")

	// ErrInvalidSkipReason is returned when a skipped check-in carries a
	// reason outside the four recognized categories. Rejecting it here keeps
	// unrecognized reasons out of stored records, where aggregation would
	// drop them from every bucket without a trace.
	ErrInvalidSkipReason = errors.New("invalid skip reason")

	// ErrNoPendingCheckin is returned when free-text notes arrive for a chat
	// with no awaiting check-in (or one that has expired).
	ErrNoPendingCheckin = errors.New("no pending check-in for chat")

	// ErrWeekNotFound is returned when a plan has no week with the requested
	// number.
	ErrWeekNotFound = errors.New("week not found in plan")
)

// SubmitResult is the outcome of a plan submission. Version is set only when
// the plan was accepted and persisted.
type SubmitResult struct {
	Validation *validation.Result
	Version    *domain.PlanVersion
}

type AthleteService interface {
	Register(ctx context.Context, email string) (*domain.Athlete, error)
	Connect(ctx context.Context, email, chatID string) (*domain.Athlete, error)
	GetByEmail(ctx context.Context, email string) (*domain.Athlete, error)
	List(ctx context.Context) ([]*domain.Athlete, error)
}

type PlanService interface {
	// Submit runs the raw plan text through the validation pipeline. An
	// accepted plan is stored as the athlete's next immutable version; a
	// rejected one is not persisted and the result carries the repair
	// prompt. Rejection is not an error.
	Submit(ctx context.Context, athleteID, raw string) (*SubmitResult, error)
	Latest(ctx context.Context, athleteID string) (*domain.PlanVersion, error)
	Versions(ctx context.Context, athleteID string) ([]*domain.PlanVersion, error)
	// MaterializeWeek creates pending session records for every training day
	// (rest excluded) of the given plan week, dated from weekStart (a Monday).
	MaterializeWeek(ctx context.Context, athleteID string, weekNumber int, weekStart time.Time) ([]domain.SessionRecord, error)
}

// CheckinInput is a completed check-in for one session record. Zero-valued
// fields leave the stored value untouched.
type CheckinInput struct {
	SessionID   string
	Status      domain.SessionStatus
	SkipReason  string
	RPE         string
	CueFeedback string
	Notes       string
}

type CheckinService interface {
	Checkin(ctx context.Context, in CheckinInput) (*domain.SessionRecord, error)
	// AwaitNotes marks the chat as expecting free-text notes for a session.
	AwaitNotes(ctx context.Context, chatID, sessionID string) error
	// AppendNotes attaches free text to the session the chat is awaiting
	// notes for, then clears the marker.
	AppendNotes(ctx context.Context, chatID, text string) (*domain.SessionRecord, error)
}

// FeedbackReport bundles an aggregation window with its summary and the
// narrated block handed to plan generation.
type FeedbackReport struct {
	From    time.Time
	To      time.Time
	Summary *feedback.Summary
	Block   string
}

type FeedbackService interface {
	// Recent aggregates the athlete's session records over the trailing
	// window of full weeks ending today.
	Recent(ctx context.Context, athleteID string, weeks int) (*FeedbackReport, error)
}
