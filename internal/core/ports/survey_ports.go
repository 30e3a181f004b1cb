package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
)

type SurveyRepository interface {
	Save(ctx context.Context, survey *domain.Survey) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Survey, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Survey, error)
	ListAll(ctx context.Context) ([]*domain.Survey, error)
	Update(ctx context.Context, survey *domain.Survey) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateSurveyInput struct {
	Title       string
	Description string
	Status      domain.SurveyStatus
	ClosesAt    *time.Time
	OwnerID     uuid.UUID
}

type UpdateSurveyInput struct {
	SurveyID    uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Status      domain.SurveyStatus
	ClosesAt    *time.Time
}

type SurveyService interface {
	Create(ctx context.Context, input CreateSurveyInput) (*domain.Survey, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Survey, error)
	// GetOwned fails with domain.ErrForbidden when the survey exists but
	// belongs to someone else.
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Survey, error)
	ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*domain.Survey, error)
	Update(ctx context.Context, input UpdateSurveyInput) (*domain.Survey, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
