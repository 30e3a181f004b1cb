package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type submissionService struct {
	surveyRepo   ports.SurveyRepository
	questionRepo ports.QuestionRepository
	answerRepo   ports.AnswerRepository
}

func NewSubmissionService(surveyRepo ports.SurveyRepository, questionRepo ports.QuestionRepository, answerRepo ports.AnswerRepository) ports.SubmissionService {
	return &submissionService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

// Submit validates and persists one respondent's full answer set for a
// survey. The whole submission commits or none of it does: any validation
// failure rejects every item, and the repository writes all rows in one
// transaction.
func (s *submissionService) Submit(ctx context.Context, input ports.SubmitInput) error {
	survey, err := s.surveyRepo.GetByID(ctx, input.SurveyID)
	if err != nil {
		return err
	}
	if !survey.Status.IsOpen() {
		return domain.ErrSurveyNotActive
	}

	answered, err := s.answerRepo.HasAnswered(ctx, input.SurveyID, input.RespondentID)
	if err != nil {
		return err
	}
	if answered {
		return domain.ErrAlreadyAnswered
	}

	questions, err := s.questionRepo.ListBySurvey(ctx, input.SurveyID)
	if err != nil {
		return err
	}

	items := make(map[uuid.UUID]ports.AnswerItem, len(input.Items))
	for _, item := range input.Items {
		items[item.QuestionID] = item
	}

	// Presence of every required answer is checked before any per-item
	// shape validation, so a missing required answer is always the one
	// reported, regardless of other defects in the submission.
	for _, q := range questions {
		if _, ok := items[q.ID]; !ok && q.Required {
			return domain.NewValidationError(q, "an answer is required")
		}
	}

	submittedAt := time.Now()
	answers := make([]*domain.Answer, 0, len(questions))
	for _, q := range questions {
		item, ok := items[q.ID]
		delete(items, q.ID)
		if !ok {
			// An unanswered optional question still gets a row with no
			// payload. Every submission therefore covers every question,
			// and two concurrent submissions from the same respondent
			// always collide on the per-question unique guard, even when
			// they answer disjoint optional subsets.
			answers = append(answers, &domain.Answer{
				ID:           uuid.New(),
				RespondentID: input.RespondentID,
				SurveyID:     input.SurveyID,
				QuestionID:   q.ID,
				SubmittedAt:  submittedAt,
				Value:        domain.NoValue{},
			})
			continue
		}

		value, err := buildAnswerValue(q, item)
		if err != nil {
			return err
		}

		answers = append(answers, &domain.Answer{
			ID:           uuid.New(),
			RespondentID: input.RespondentID,
			SurveyID:     input.SurveyID,
			QuestionID:   q.ID,
			SubmittedAt:  submittedAt,
			Value:        value,
		})
	}

	// Items left over reference questions outside this survey.
	if len(items) > 0 {
		return domain.ErrQuestionNotFound
	}
	if len(answers) == 0 {
		return nil
	}

	return s.answerRepo.SaveAll(ctx, answers)
}

func (s *submissionService) MyAnswers(ctx context.Context, respondentID uuid.UUID) ([]domain.AnswerRecord, error) {
	return s.answerRepo.ListByRespondent(ctx, respondentID)
}

// buildAnswerValue checks one submitted item against its question's type
// and produces the matching payload variant.
func buildAnswerValue(q domain.Question, item ports.AnswerItem) (domain.AnswerValue, error) {
	switch q.Type {
	case domain.QuestionFreeText:
		if len(item.OptionIDs) > 0 {
			return nil, domain.NewValidationError(q, "a free-text question does not accept option selections")
		}
		if q.Required && strings.TrimSpace(item.Text) == "" {
			return nil, domain.NewValidationError(q, "an answer is required")
		}
		return domain.TextValue{Text: item.Text}, nil

	case domain.QuestionScale:
		if len(item.OptionIDs) > 0 {
			return nil, domain.NewValidationError(q, "a scale question expects a numeric answer")
		}
		text := strings.TrimSpace(item.Text)
		if text == "" {
			if q.Required {
				return nil, domain.NewValidationError(q, "an answer is required")
			}
			return domain.NoValue{}, nil
		}
		number, err := strconv.ParseFloat(text, 64)
		if err != nil {
			if q.Required {
				return nil, domain.NewValidationError(q, "the answer must be a number")
			}
			// Deliberate leniency: an unparsable value on an optional
			// scale question is stored as an absent answer, not rejected.
			return domain.NoValue{}, nil
		}
		return domain.ScaleValue{Number: number}, nil

	case domain.QuestionSingleChoice:
		if len(item.OptionIDs) == 0 {
			if q.Required {
				return nil, domain.NewValidationError(q, "an option must be selected")
			}
			return domain.NoValue{}, nil
		}
		if len(item.OptionIDs) > 1 {
			return nil, domain.NewValidationError(q, "only one option may be selected")
		}
		if _, ok := q.Option(item.OptionIDs[0]); !ok {
			return nil, domain.NewValidationError(q, "the selected option does not belong to this question")
		}
		return domain.ChoiceValue{OptionID: item.OptionIDs[0], Comment: item.Text}, nil

	case domain.QuestionMultipleChoice:
		if len(item.OptionIDs) == 0 {
			if q.Required {
				return nil, domain.NewValidationError(q, "at least one option must be selected")
			}
			return domain.NoValue{}, nil
		}
		seen := make(map[uuid.UUID]bool, len(item.OptionIDs))
		selected := make([]uuid.UUID, 0, len(item.OptionIDs))
		for _, id := range item.OptionIDs {
			if _, ok := q.Option(id); !ok {
				return nil, domain.NewValidationError(q, "a selected option does not belong to this question")
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			selected = append(selected, id)
		}
		return domain.MultiChoiceValue{OptionIDs: selected, Comment: item.Text}, nil
	}

	return nil, domain.NewValidationError(q, "unknown question type")
}
