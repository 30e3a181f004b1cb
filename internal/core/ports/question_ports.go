package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
)

type QuestionRepository interface {
	Save(ctx context.Context, question *domain.Question) error
	ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]domain.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OptionInput struct {
	Label string
	Value string
}

type CreateQuestionInput struct {
	SurveyID uuid.UUID
	OwnerID  uuid.UUID
	Prompt   string
	Type     domain.QuestionType
	Required bool
	Options  []OptionInput
}

type QuestionService interface {
	Create(ctx context.Context, input CreateQuestionInput) (*domain.Question, error)
	ListBySurvey(ctx context.Context, surveyID, ownerID uuid.UUID) ([]domain.Question, error)
	// ListPublic returns the questions of an active survey for a
	// respondent about to answer it.
	ListPublic(ctx context.Context, surveyID uuid.UUID) ([]domain.Question, error)
	Delete(ctx context.Context, questionID, surveyID, ownerID uuid.UUID) error
}
