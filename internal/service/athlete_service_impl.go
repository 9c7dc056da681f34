package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stridecoach/stride/internal/domain"
	"github.com/stridecoach/stride/internal/repository"
)

type athleteService struct {
	athletes repository.AthleteRepo
}

func NewAthleteService(athletes repository.AthleteRepo) AthleteService {
	return &athleteService{athletes: athletes}
}

func (s *athleteService) Register(ctx context.Context, email string) (*domain.Athlete, error) {
	a := &domain.Athlete{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.athletes.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("registering athlete: %w", err)
	}
	return a, nil
}

func (s *athleteService) Connect(ctx context.Context, email, chatID string) (*domain.Athlete, error) {
	a, err := s.athletes.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.athletes.SetChatID(ctx, a.ID, chatID); err != nil {
		return nil, fmt.Errorf("connecting athlete chat: %w", err)
	}
	a.ChatID = chatID
	return a, nil
}

func (s *athleteService) GetByEmail(ctx context.Context, email string) (*domain.Athlete, error) {
	return s.athletes.GetByEmail(ctx, email)
}

func (s *athleteService) List(ctx context.Context) ([]*domain.Athlete, error) {
	return s.athletes.List(ctx)
}
