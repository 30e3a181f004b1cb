package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type fakeSurveyRepo struct {
	surveys map[uuid.UUID]*domain.Survey
}

func newFakeSurveyRepo(surveys ...*domain.Survey) *fakeSurveyRepo {
	repo := &fakeSurveyRepo{surveys: make(map[uuid.UUID]*domain.Survey)}
	for _, s := range surveys {
		repo.surveys[s.ID] = s
	}
	return repo
}

func (r *fakeSurveyRepo) Save(ctx context.Context, survey *domain.Survey) error {
	r.surveys[survey.ID] = survey
	return nil
}

func (r *fakeSurveyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Survey, error) {
	survey, ok := r.surveys[id]
	if !ok {
		return nil, domain.ErrSurveyNotFound
	}
	return survey, nil
}

func (r *fakeSurveyRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Survey, error) {
	var out []*domain.Survey
	for _, s := range r.surveys {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSurveyRepo) ListAll(ctx context.Context) ([]*domain.Survey, error) {
	var out []*domain.Survey
	for _, s := range r.surveys {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSurveyRepo) Update(ctx context.Context, survey *domain.Survey) error {
	if _, ok := r.surveys[survey.ID]; !ok {
		return domain.ErrSurveyNotFound
	}
	r.surveys[survey.ID] = survey
	return nil
}

func (r *fakeSurveyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.surveys[id]; !ok {
		return domain.ErrSurveyNotFound
	}
	delete(r.surveys, id)
	return nil
}

type fakeQuestionRepo struct {
	questions []domain.Question
}

func (r *fakeQuestionRepo) Save(ctx context.Context, question *domain.Question) error {
	r.questions = append(r.questions, *question)
	return nil
}

func (r *fakeQuestionRepo) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]domain.Question, error) {
	var out []domain.Question
	for _, q := range r.questions {
		if q.SurveyID == surveyID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, q := range r.questions {
		if q.ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

type fakeAnswerRepo struct {
	saved    [][]*domain.Answer
	answered map[uuid.UUID]bool
	records  []domain.AnswerRecord
	saveErr  error
}

func (r *fakeAnswerRepo) SaveAll(ctx context.Context, answers []*domain.Answer) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, answers)
	return nil
}

func (r *fakeAnswerRepo) HasAnswered(ctx context.Context, surveyID, respondentID uuid.UUID) (bool, error) {
	return r.answered[respondentID], nil
}

func (r *fakeAnswerRepo) ListByRespondent(ctx context.Context, respondentID uuid.UUID) ([]domain.AnswerRecord, error) {
	return r.records, nil
}

type fakeReportRepo struct {
	optionCounts map[uuid.UUID]int64
	respondents  int64
	records      []domain.AnswerRecord
}

func (r *fakeReportRepo) CountOptionSelections(ctx context.Context, questionID, optionID uuid.UUID) (int64, error) {
	return r.optionCounts[optionID], nil
}

func (r *fakeReportRepo) CountRespondents(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	return r.respondents, nil
}

func (r *fakeReportRepo) ListAnswerRecords(ctx context.Context, surveyID uuid.UUID) ([]domain.AnswerRecord, error) {
	return r.records, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeResultRepo struct {
	mu         sync.Mutex
	summarized []uuid.UUID
	failFor    uuid.UUID
	err        error
}

func (r *fakeResultRepo) SummarizeSurvey(ctx context.Context, surveyID uuid.UUID) error {
	if surveyID == r.failFor && r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summarized = append(r.summarized, surveyID)
	return nil
}

var (
	_ ports.SurveyRepository   = (*fakeSurveyRepo)(nil)
	_ ports.QuestionRepository = (*fakeQuestionRepo)(nil)
	_ ports.AnswerRepository   = (*fakeAnswerRepo)(nil)
	_ ports.ReportRepository   = (*fakeReportRepo)(nil)
	_ ports.UserRepository     = (*fakeUserRepo)(nil)
	_ ports.ResultRepository   = (*fakeResultRepo)(nil)
)
