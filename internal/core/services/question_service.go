package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type questionService struct {
	surveyRepo   ports.SurveyRepository
	questionRepo ports.QuestionRepository
}

func NewQuestionService(surveyRepo ports.SurveyRepository, questionRepo ports.QuestionRepository) ports.QuestionService {
	return &questionService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
	}
}

func (s *questionService) Create(ctx context.Context, input ports.CreateQuestionInput) (*domain.Question, error) {
	survey, err := s.surveyRepo.GetByID(ctx, input.SurveyID)
	if err != nil {
		return nil, err
	}
	if survey.OwnerID != input.OwnerID {
		return nil, domain.ErrForbidden
	}

	if input.Prompt == "" {
		return nil, domain.NewInvalidInput("prompt is required")
	}
	if !input.Type.Valid() {
		return nil, domain.NewInvalidInput("invalid question type")
	}

	// Option-count invariant, enforced here at the creation boundary:
	// choice and scale questions need at least one option to be
	// answerable, free-text questions carry none.
	if input.Type.HasOptions() && len(input.Options) == 0 {
		return nil, domain.NewInvalidInput("at least one option is required for this question type")
	}
	if !input.Type.HasOptions() && len(input.Options) > 0 {
		return nil, domain.NewInvalidInput("a free-text question cannot have options")
	}

	questionID := uuid.New()
	question := &domain.Question{
		ID:        questionID,
		SurveyID:  input.SurveyID,
		Prompt:    input.Prompt,
		Type:      input.Type,
		Required:  input.Required,
		CreatedAt: time.Now(),
	}
	for i, opt := range input.Options {
		if opt.Label == "" {
			return nil, domain.NewInvalidInput("option labels cannot be empty")
		}
		question.Options = append(question.Options, domain.Option{
			ID:         uuid.New(),
			QuestionID: questionID,
			Position:   i + 1,
			Label:      opt.Label,
			Value:      opt.Value,
		})
	}

	if err := s.questionRepo.Save(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *questionService) ListBySurvey(ctx context.Context, surveyID, ownerID uuid.UUID) ([]domain.Question, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return s.questionRepo.ListBySurvey(ctx, surveyID)
}

func (s *questionService) ListPublic(ctx context.Context, surveyID uuid.UUID) ([]domain.Question, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if !survey.Status.IsOpen() {
		return nil, domain.ErrSurveyNotActive
	}
	return s.questionRepo.ListBySurvey(ctx, surveyID)
}

func (s *questionService) Delete(ctx context.Context, questionID, surveyID, ownerID uuid.UUID) error {
	questions, err := s.ListBySurvey(ctx, surveyID, ownerID)
	if err != nil {
		return err
	}
	for _, q := range questions {
		if q.ID == questionID {
			return s.questionRepo.Delete(ctx, questionID)
		}
	}
	return domain.ErrQuestionNotFound
}
