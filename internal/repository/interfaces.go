package repository

import (
	"context"
	"errors"
	"time"

	"github.com/stridecoach/stride/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist. Callers match
// it with errors.Is.
var ErrNotFound = errors.New("not found")

type AthleteRepo interface {
	Create(ctx context.Context, a *domain.Athlete) error
	GetByID(ctx context.Context, id string) (*domain.Athlete, error)
	GetByEmail(ctx context.Context, email string) (*domain.Athlete, error)
	GetByChatID(ctx context.Context, chatID string) (*domain.Athlete, error)
	List(ctx context.Context) ([]*domain.Athlete, error)
	SetChatID(ctx context.Context, id, chatID string) error
}

// PlanRepo stores immutable plan versions. There is no update: every accepted
// submission appends the next version for the athlete.
type PlanRepo interface {
	CreateVersion(ctx context.Context, pv *domain.PlanVersion) error
	GetByID(ctx context.Context, id string) (*domain.PlanVersion, error)
	GetLatest(ctx context.Context, athleteID string) (*domain.PlanVersion, error)
	GetVersion(ctx context.Context, athleteID string, version int) (*domain.PlanVersion, error)
	ListVersions(ctx context.Context, athleteID string) ([]*domain.PlanVersion, error)
	NextVersion(ctx context.Context, athleteID string) (int, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.SessionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SessionRecord, error)
	Update(ctx context.Context, s *domain.SessionRecord) error
	ListByPlan(ctx context.Context, planID string) ([]domain.SessionRecord, error)
	ListByAthleteDateRange(ctx context.Context, athleteID string, from, to time.Time) ([]domain.SessionRecord, error)
}
