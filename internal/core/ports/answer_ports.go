package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
)

type AnswerRepository interface {
	// SaveAll persists the full answer set of one submission atomically:
	// either every row (including multi-choice join rows) is written or
	// none is. A concurrent duplicate submission surfaces as
	// domain.ErrAlreadyAnswered.
	SaveAll(ctx context.Context, answers []*domain.Answer) error
	HasAnswered(ctx context.Context, surveyID, respondentID uuid.UUID) (bool, error)
	ListByRespondent(ctx context.Context, respondentID uuid.UUID) ([]domain.AnswerRecord, error)
}

// AnswerItem is one question's answer as submitted. Scale answers arrive
// as text and are parsed during validation; choice answers reference
// option ids and may carry a free-text comment.
type AnswerItem struct {
	QuestionID uuid.UUID
	Text       string
	OptionIDs  []uuid.UUID
}

type SubmitInput struct {
	RespondentID uuid.UUID
	SurveyID     uuid.UUID
	Items        []AnswerItem
}

type SubmissionService interface {
	Submit(ctx context.Context, input SubmitInput) error
	MyAnswers(ctx context.Context, respondentID uuid.UUID) ([]domain.AnswerRecord, error)
}
