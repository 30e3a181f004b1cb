package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

func TestCreateQuestionOptionRules(t *testing.T) {
	owner := uuid.New()
	survey := &domain.Survey{ID: uuid.New(), Title: "Rules", Status: domain.SurveyStatusActive, OwnerID: owner}
	service := NewQuestionService(newFakeSurveyRepo(survey), &fakeQuestionRepo{})

	base := ports.CreateQuestionInput{SurveyID: survey.ID, OwnerID: owner, Prompt: "Pick"}

	var inputErr *domain.InvalidInputError

	choice := base
	choice.Type = domain.QuestionSingleChoice
	_, err := service.Create(context.Background(), choice)
	assert.ErrorAs(t, err, &inputErr, "a choice question without options is rejected")

	text := base
	text.Type = domain.QuestionFreeText
	text.Options = []ports.OptionInput{{Label: "A"}}
	_, err = service.Create(context.Background(), text)
	assert.ErrorAs(t, err, &inputErr, "a free-text question with options is rejected")

	unknown := base
	unknown.Type = "ranking"
	_, err = service.Create(context.Background(), unknown)
	assert.ErrorAs(t, err, &inputErr)

	valid := base
	valid.Type = domain.QuestionMultipleChoice
	valid.Options = []ports.OptionInput{{Label: "A", Value: "a"}, {Label: "B", Value: "b"}}
	question, err := service.Create(context.Background(), valid)
	require.NoError(t, err)
	require.Len(t, question.Options, 2)
	assert.Equal(t, 1, question.Options[0].Position)
	assert.Equal(t, 2, question.Options[1].Position)
}

func TestCreateQuestionForeignSurvey(t *testing.T) {
	survey := &domain.Survey{ID: uuid.New(), Title: "Not yours", Status: domain.SurveyStatusActive, OwnerID: uuid.New()}
	service := NewQuestionService(newFakeSurveyRepo(survey), &fakeQuestionRepo{})

	_, err := service.Create(context.Background(), ports.CreateQuestionInput{
		SurveyID: survey.ID,
		OwnerID:  uuid.New(),
		Prompt:   "Sneaky",
		Type:     domain.QuestionFreeText,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListPublicRequiresActiveSurvey(t *testing.T) {
	inactive := &domain.Survey{ID: uuid.New(), Title: "Draft", Status: domain.SurveyStatusInactive, OwnerID: uuid.New()}
	service := NewQuestionService(newFakeSurveyRepo(inactive), &fakeQuestionRepo{})

	_, err := service.ListPublic(context.Background(), inactive.ID)
	assert.ErrorIs(t, err, domain.ErrSurveyNotActive)
}

func TestDeleteQuestionMembership(t *testing.T) {
	owner := uuid.New()
	survey := &domain.Survey{ID: uuid.New(), Title: "Mine", Status: domain.SurveyStatusActive, OwnerID: owner}
	question := domain.Question{ID: uuid.New(), SurveyID: survey.ID, Prompt: "Q", Type: domain.QuestionFreeText}
	other := domain.Question{ID: uuid.New(), SurveyID: uuid.New(), Prompt: "Elsewhere", Type: domain.QuestionFreeText}

	questionRepo := &fakeQuestionRepo{questions: []domain.Question{question, other}}
	service := NewQuestionService(newFakeSurveyRepo(survey), questionRepo)

	// a question of another survey is not deletable through this one
	err := service.Delete(context.Background(), other.ID, survey.ID, owner)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	require.NoError(t, service.Delete(context.Background(), question.ID, survey.ID, owner))
	remaining, err := questionRepo.ListBySurvey(context.Background(), survey.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
