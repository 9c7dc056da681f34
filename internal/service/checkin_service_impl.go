package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stridecoach/stride/internal/chatstate"
	"github.com/stridecoach/stride/internal/domain"
	"github.com/stridecoach/stride/internal/repository"
)

type checkinService struct {
	sessions repository.SessionRepo
	state    chatstate.Store
	observer UseCaseObserver
	now      func() time.Time
}

func NewCheckinService(sessions repository.SessionRepo, state chatstate.Store, observers ...UseCaseObserver) CheckinService {
	return &checkinService{
		sessions: sessions,
		state:    state,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *checkinService) Checkin(ctx context.Context, in CheckinInput) (record *domain.SessionRecord, err error) {
	startedAt := s.now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "session-checkin",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"session_id": in.SessionID, "status": string(in.Status)},
		})
	}()

	if err := validateCheckin(in); err != nil {
		return nil, err
	}

	record, err = s.sessions.GetByID(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	record.Status = in.Status
	if in.Status == domain.StatusSkipped {
		record.SkipReason = in.SkipReason
	} else {
		record.SkipReason = ""
	}
	if in.RPE != "" {
		record.RPE = in.RPE
	}
	if in.CueFeedback != "" {
		record.CueFeedback = in.CueFeedback
	}
	if in.Notes != "" {
		record.Notes = in.Notes
	}
	if in.Status == domain.StatusCompleted || in.Status == domain.StatusModified {
		completedAt := s.now().UTC()
		record.CompletedAt = &completedAt
	}

	if err := s.sessions.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *checkinService) AwaitNotes(ctx context.Context, chatID, sessionID string) error {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return err
	}
	s.state.Set(chatID, chatstate.State{SessionID: sessionID, AwaitingNotes: true})
	return nil
}

func (s *checkinService) AppendNotes(ctx context.Context, chatID, text string) (*domain.SessionRecord, error) {
	st, ok := s.state.Get(chatID)
	if !ok || !st.AwaitingNotes {
		return nil, fmt.Errorf("chat %s: %w", chatID, ErrNoPendingCheckin)
	}

	record, err := s.sessions.GetByID(ctx, st.SessionID)
	if err != nil {
		return nil, err
	}

	if record.Notes == "" {
		record.Notes = text
	} else {
		record.Notes = record.Notes + "\n" + text
	}
	if err := s.sessions.Update(ctx, record); err != nil {
		return nil, err
	}

	s.state.Clear(chatID)
	return record, nil
}

func validateCheckin(in CheckinInput) error {
	switch in.Status {
	case domain.StatusCompleted, domain.StatusModified, domain.StatusSkipped, domain.StatusPending:
	default:
		return fmt.Errorf("%q: %w", in.Status, ErrInvalidStatus)
	}
	if in.Status == domain.StatusSkipped && !domain.ValidSkipReasons[in.SkipReason] {
		return fmt.Errorf("%q: %w", in.SkipReason, ErrInvalidSkipReason)
	}
	if in.RPE != "" && !domain.ValidRPELabels[in.RPE] {
		return fmt.Errorf("%q: %w", in.RPE, ErrInvalidRPE)
	}
	return nil
}
