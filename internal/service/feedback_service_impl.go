package service

import (
	"context"
	"time"

	"github.com/stridecoach/stride/internal/feedback"
	"github.com/stridecoach/stride/internal/repository"
)

type feedbackService struct {
	sessions repository.SessionRepo
	plans    repository.PlanRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewFeedbackService(sessions repository.SessionRepo, plans repository.PlanRepo, observers ...UseCaseObserver) FeedbackService {
	return &feedbackService{
		sessions: sessions,
		plans:    plans,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *feedbackService) Recent(ctx context.Context, athleteID string, weeks int) (report *FeedbackReport, err error) {
	startedAt := s.now().UTC()
	fields := map[string]any{"athlete_id": athleteID, "weeks": weeks}
	defer func() {
		if report != nil && report.Summary != nil {
			fields["total_sessions"] = report.Summary.TotalSessions
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "feedback-digest",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if weeks < 1 {
		weeks = 1
	}
	to := s.now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -7*weeks)

	records, err := s.sessions.ListByAthleteDateRange(ctx, athleteID, from, to)
	if err != nil {
		return nil, err
	}

	summary := feedback.Aggregate(records)
	weekStart, weekEnd := s.windowWeeks(ctx, athleteID, weeks, to)

	return &FeedbackReport{
		From:    from,
		To:      to,
		Summary: summary,
		Block:   feedback.FormatFeedbackBlock(summary, weekStart, weekEnd),
	}, nil
}

// windowWeeks maps the trailing window onto plan week numbers using the
// latest version's creation date. Without a plan the window is labeled from
// week one.
func (s *feedbackService) windowWeeks(ctx context.Context, athleteID string, weeks int, to time.Time) (int, int) {
	pv, err := s.plans.GetLatest(ctx, athleteID)
	if err != nil {
		return 1, weeks
	}

	days := int(to.Sub(pv.CreatedAt.UTC().Truncate(24*time.Hour)).Hours() / 24)
	weekEnd := days/7 + 1
	if weekEnd < weeks {
		weekEnd = weeks
	}
	return weekEnd - weeks + 1, weekEnd
}
