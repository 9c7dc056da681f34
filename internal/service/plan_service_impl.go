package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stridecoach/stride/internal/db"
	"github.com/stridecoach/stride/internal/domain"
	"github.com/stridecoach/stride/internal/repository"
	"github.com/stridecoach/stride/internal/validation"
)

type planService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPlanService(plans repository.PlanRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:    plans,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Submit(ctx context.Context, athleteID, raw string) (result *SubmitResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"athlete_id": athleteID}
	defer func() {
		if result != nil && result.Validation != nil {
			fields["tier"] = result.Validation.Tier
			fields["accepted"] = result.Validation.Valid
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan-submit",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	res := validation.Validate(raw)
	if !res.Valid {
		return &SubmitResult{Validation: res}, nil
	}

	macroPlan, weeks, err := encodePlanDocument(res.Plan)
	if err != nil {
		return nil, err
	}

	pv := &domain.PlanVersion{
		ID:        uuid.New().String(),
		AthleteID: athleteID,
		MacroPlan: macroPlan,
		Weeks:     weeks,
		CreatedAt: time.Now().UTC(),
	}

	// Version assignment and insert happen in one transaction so concurrent
	// submissions cannot claim the same number.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		version, err := txPlans.NextVersion(ctx, athleteID)
		if err != nil {
			return err
		}
		pv.Version = version
		return txPlans.CreateVersion(ctx, pv)
	})
	if err != nil {
		return nil, err
	}

	return &SubmitResult{Validation: res, Version: pv}, nil
}

func (s *planService) Latest(ctx context.Context, athleteID string) (*domain.PlanVersion, error) {
	return s.plans.GetLatest(ctx, athleteID)
}

func (s *planService) Versions(ctx context.Context, athleteID string) ([]*domain.PlanVersion, error) {
	return s.plans.ListVersions(ctx, athleteID)
}

func (s *planService) MaterializeWeek(ctx context.Context, athleteID string, weekNumber int, weekStart time.Time) ([]domain.SessionRecord, error) {
	pv, err := s.plans.GetLatest(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	var weeks []domain.Week
	if err := json.Unmarshal(pv.Weeks, &weeks); err != nil {
		return nil, fmt.Errorf("decoding plan weeks: %w", err)
	}

	var week *domain.Week
	for i := range weeks {
		if weeks[i].WeekNumber == weekNumber {
			week = &weeks[i]
			break
		}
	}
	if week == nil {
		return nil, fmt.Errorf("plan version %d, week %d: %w", pv.Version, weekNumber, ErrWeekNotFound)
	}

	var records []domain.SessionRecord
	for offset, dayName := range domain.WeekdayKeys {
		day, ok := week.Days[dayName]
		if !ok || day.SessionType == string(domain.SessionRest) {
			continue
		}
		records = append(records, domain.SessionRecord{
			ID:          uuid.New().String(),
			PlanID:      pv.ID,
			Date:        weekStart.AddDate(0, 0, offset),
			SessionType: day.SessionType,
			Status:      domain.StatusPending,
		})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		for i := range records {
			if err := txSessions.Create(ctx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// encodePlanDocument splits a normalized plan document into the stored
// macro_plan and weeks blobs.
func encodePlanDocument(plan map[string]any) (macroPlan, weeks json.RawMessage, err error) {
	if mp, ok := plan["macro_plan"]; ok {
		macroPlan, err = json.Marshal(mp)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding macro plan: %w", err)
		}
	}
	weeks, err = json.Marshal(plan["weeks"])
	if err != nil {
		return nil, nil, fmt.Errorf("encoding plan weeks: %w", err)
	}
	return macroPlan, weeks, nil
}
