package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type surveyService struct {
	repo ports.SurveyRepository
}

func NewSurveyService(repo ports.SurveyRepository) ports.SurveyService {
	return &surveyService{
		repo: repo,
	}
}

func (s *surveyService) Create(ctx context.Context, input ports.CreateSurveyInput) (*domain.Survey, error) {
	if input.Title == "" {
		return nil, domain.NewInvalidInput("title is required")
	}

	status := input.Status
	if status == "" {
		status = domain.SurveyStatusActive
	}
	switch status {
	case domain.SurveyStatusActive, domain.SurveyStatusInactive, domain.SurveyStatusClosed:
	default:
		return nil, domain.NewInvalidInput("invalid survey status")
	}

	survey := &domain.Survey{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		ClosesAt:    input.ClosesAt,
		CreatedAt:   time.Now(),
		OwnerID:     input.OwnerID,
	}

	if err := s.repo.Save(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *surveyService) Get(ctx context.Context, id uuid.UUID) (*domain.Survey, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *surveyService) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Survey, error) {
	survey, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return survey, nil
}

func (s *surveyService) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*domain.Survey, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *surveyService) Update(ctx context.Context, input ports.UpdateSurveyInput) (*domain.Survey, error) {
	survey, err := s.GetOwned(ctx, input.SurveyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, domain.NewInvalidInput("title is required")
	}
	switch input.Status {
	case domain.SurveyStatusActive, domain.SurveyStatusInactive, domain.SurveyStatusClosed:
	default:
		return nil, domain.NewInvalidInput("invalid survey status")
	}

	survey.Title = input.Title
	survey.Description = input.Description
	survey.Status = input.Status
	survey.ClosesAt = input.ClosesAt

	if err := s.repo.Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *surveyService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
