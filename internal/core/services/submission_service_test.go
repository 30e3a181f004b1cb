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

type submissionFixture struct {
	surveyRepo   *fakeSurveyRepo
	questionRepo *fakeQuestionRepo
	answerRepo   *fakeAnswerRepo
	service      ports.SubmissionService
	survey       *domain.Survey
	freeText     domain.Question
	scale        domain.Question
	single       domain.Question
	multi        domain.Question
}

func newSubmissionFixture(t *testing.T, status domain.SurveyStatus) *submissionFixture {
	t.Helper()

	survey := &domain.Survey{ID: uuid.New(), Title: "Fixture", Status: status, OwnerID: uuid.New()}

	newOption := func(questionID uuid.UUID, position int, label string) domain.Option {
		return domain.Option{ID: uuid.New(), QuestionID: questionID, Position: position, Label: label}
	}

	freeText := domain.Question{ID: uuid.New(), SurveyID: survey.ID, Prompt: "Comments", Type: domain.QuestionFreeText, Required: true}
	scale := domain.Question{ID: uuid.New(), SurveyID: survey.ID, Prompt: "Rating", Type: domain.QuestionScale}
	scale.Options = []domain.Option{newOption(scale.ID, 1, "1"), newOption(scale.ID, 2, "5")}
	single := domain.Question{ID: uuid.New(), SurveyID: survey.ID, Prompt: "Recommend", Type: domain.QuestionSingleChoice, Required: true}
	single.Options = []domain.Option{newOption(single.ID, 1, "Yes"), newOption(single.ID, 2, "No")}
	multi := domain.Question{ID: uuid.New(), SurveyID: survey.ID, Prompt: "Topics", Type: domain.QuestionMultipleChoice}
	multi.Options = []domain.Option{newOption(multi.ID, 1, "A"), newOption(multi.ID, 2, "B"), newOption(multi.ID, 3, "C")}

	surveyRepo := newFakeSurveyRepo(survey)
	questionRepo := &fakeQuestionRepo{questions: []domain.Question{freeText, scale, single, multi}}
	answerRepo := &fakeAnswerRepo{answered: make(map[uuid.UUID]bool)}

	return &submissionFixture{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		service:      NewSubmissionService(surveyRepo, questionRepo, answerRepo),
		survey:       survey,
		freeText:     freeText,
		scale:        scale,
		single:       single,
		multi:        multi,
	}
}

func (f *submissionFixture) submit(items ...ports.AnswerItem) error {
	return f.service.Submit(context.Background(), ports.SubmitInput{
		RespondentID: uuid.New(),
		SurveyID:     f.survey.ID,
		Items:        items,
	})
}

func TestSubmitStoresTypedValues(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)

	err := f.submit(
		ports.AnswerItem{QuestionID: f.freeText.ID, Text: "all good"},
		ports.AnswerItem{QuestionID: f.scale.ID, Text: "4.5"},
		ports.AnswerItem{QuestionID: f.single.ID, OptionIDs: []uuid.UUID{f.single.Options[0].ID}},
		ports.AnswerItem{QuestionID: f.multi.ID, OptionIDs: []uuid.UUID{f.multi.Options[0].ID, f.multi.Options[2].ID}},
	)
	require.NoError(t, err)
	require.Len(t, f.answerRepo.saved, 1)

	answers := f.answerRepo.saved[0]
	require.Len(t, answers, 4)

	byQuestion := make(map[uuid.UUID]*domain.Answer)
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
		// every row of a submission shares its timestamp
		assert.Equal(t, answers[0].SubmittedAt, a.SubmittedAt)
	}

	assert.Equal(t, domain.TextValue{Text: "all good"}, byQuestion[f.freeText.ID].Value)
	assert.Equal(t, domain.ScaleValue{Number: 4.5}, byQuestion[f.scale.ID].Value)
	assert.Equal(t, domain.ChoiceValue{OptionID: f.single.Options[0].ID}, byQuestion[f.single.ID].Value)
	assert.Equal(t, domain.MultiChoiceValue{OptionIDs: []uuid.UUID{f.multi.Options[0].ID, f.multi.Options[2].ID}}, byQuestion[f.multi.ID].Value)
}

func TestSubmitMissingRequiredAnswer(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)

	err := f.submit(
		ports.AnswerItem{QuestionID: f.freeText.ID, Text: "only this"},
	)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, f.single.ID, validationErr.QuestionID)
	assert.Empty(t, f.answerRepo.saved, "a rejected submission must store nothing")
}

func TestSubmitUnknownQuestion(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)

	err := f.submit(
		ports.AnswerItem{QuestionID: f.freeText.ID, Text: "fine"},
		ports.AnswerItem{QuestionID: f.single.ID, OptionIDs: []uuid.UUID{f.single.Options[0].ID}},
		ports.AnswerItem{QuestionID: uuid.New(), Text: "stray"},
	)

	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	assert.Empty(t, f.answerRepo.saved)
}

func TestSubmitToInactiveSurvey(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusInactive)

	err := f.submit(ports.AnswerItem{QuestionID: f.freeText.ID, Text: "late"})

	assert.ErrorIs(t, err, domain.ErrSurveyNotActive)
}

func TestSubmitTwiceRejected(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)
	respondentID := uuid.New()
	f.answerRepo.answered[respondentID] = true

	err := f.service.Submit(context.Background(), ports.SubmitInput{
		RespondentID: respondentID,
		SurveyID:     f.survey.ID,
		Items:        []ports.AnswerItem{{QuestionID: f.freeText.ID, Text: "again"}},
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyAnswered)
}

func TestSubmitScaleLeniency(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)

	// unparsable text on the optional scale question is stored as absent
	err := f.submit(
		ports.AnswerItem{QuestionID: f.freeText.ID, Text: "fine"},
		ports.AnswerItem{QuestionID: f.scale.ID, Text: "dunno"},
		ports.AnswerItem{QuestionID: f.single.ID, OptionIDs: []uuid.UUID{f.single.Options[1].ID}},
	)
	require.NoError(t, err)
	require.Len(t, f.answerRepo.saved, 1)

	for _, a := range f.answerRepo.saved[0] {
		if a.QuestionID == f.scale.ID {
			assert.Equal(t, domain.NoValue{}, a.Value)
		}
	}
}

func TestSubmitSingleChoiceRules(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)

	base := []ports.AnswerItem{{QuestionID: f.freeText.ID, Text: "fine"}}

	// two options on a single-choice question
	err := f.submit(append(base, ports.AnswerItem{
		QuestionID: f.single.ID,
		OptionIDs:  []uuid.UUID{f.single.Options[0].ID, f.single.Options[1].ID},
	})...)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// an option belonging to another question
	err = f.submit(append(base, ports.AnswerItem{
		QuestionID: f.single.ID,
		OptionIDs:  []uuid.UUID{f.multi.Options[0].ID},
	})...)
	assert.ErrorAs(t, err, &validationErr)
}

func TestSubmitMultiChoiceDeduplicates(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)

	err := f.submit(
		ports.AnswerItem{QuestionID: f.freeText.ID, Text: "fine"},
		ports.AnswerItem{QuestionID: f.single.ID, OptionIDs: []uuid.UUID{f.single.Options[0].ID}},
		ports.AnswerItem{QuestionID: f.multi.ID, OptionIDs: []uuid.UUID{
			f.multi.Options[1].ID, f.multi.Options[1].ID, f.multi.Options[0].ID,
		}},
	)
	require.NoError(t, err)

	for _, a := range f.answerRepo.saved[0] {
		if a.QuestionID == f.multi.ID {
			value, ok := a.Value.(domain.MultiChoiceValue)
			require.True(t, ok)
			assert.Equal(t, []uuid.UUID{f.multi.Options[1].ID, f.multi.Options[0].ID}, value.OptionIDs)
		}
	}
}

func TestSubmitFreeTextRejectsOptions(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)

	err := f.submit(
		ports.AnswerItem{QuestionID: f.freeText.ID, Text: "fine", OptionIDs: []uuid.UUID{uuid.New()}},
		ports.AnswerItem{QuestionID: f.single.ID, OptionIDs: []uuid.UUID{f.single.Options[0].ID}},
	)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, f.freeText.ID, validationErr.QuestionID)
}

func TestSubmitMissingRequiredReportedBeforeShapeErrors(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)

	// the free-text item is shape-invalid and the required single-choice
	// question is missing entirely; the missing answer is the one named
	err := f.submit(
		ports.AnswerItem{QuestionID: f.freeText.ID, Text: "fine", OptionIDs: []uuid.UUID{uuid.New()}},
	)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, f.single.ID, validationErr.QuestionID)
	assert.Empty(t, f.answerRepo.saved)
}

func TestSubmitRecordsUnansweredOptionalQuestions(t *testing.T) {
	f := newSubmissionFixture(t, domain.SurveyStatusActive)

	err := f.submit(
		ports.AnswerItem{QuestionID: f.freeText.ID, Text: "fine"},
		ports.AnswerItem{QuestionID: f.single.ID, OptionIDs: []uuid.UUID{f.single.Options[0].ID}},
	)
	require.NoError(t, err)
	require.Len(t, f.answerRepo.saved, 1)

	// skipped optional questions are stored as rows with no payload, so
	// the submission covers the survey's full question set
	answers := f.answerRepo.saved[0]
	require.Len(t, answers, 4)

	byQuestion := make(map[uuid.UUID]*domain.Answer)
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}
	assert.Equal(t, domain.NoValue{}, byQuestion[f.scale.ID].Value)
	assert.Equal(t, domain.NoValue{}, byQuestion[f.multi.ID].Value)
}
