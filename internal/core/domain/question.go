package domain

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionFreeText       QuestionType = "free_text"
	QuestionScale          QuestionType = "scale"
	QuestionSingleChoice   QuestionType = "single_choice"
	QuestionMultipleChoice QuestionType = "multiple_choice"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionFreeText, QuestionScale, QuestionSingleChoice, QuestionMultipleChoice:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry a list of
// selectable options.
func (t QuestionType) HasOptions() bool {
	return t == QuestionScale || t == QuestionSingleChoice || t == QuestionMultipleChoice
}

type Question struct {
	ID        uuid.UUID    `json:"id"`
	SurveyID  uuid.UUID    `json:"survey_id"`
	Prompt    string       `json:"prompt"`
	Type      QuestionType `json:"type"`
	Required  bool         `json:"required"`
	Options   []Option     `json:"options,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Option finds the option with the given id among the question's own
// options. Used to reject answers referencing options of other questions.
func (q *Question) Option(id uuid.UUID) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

type Option struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Position   int       `json:"position"`
	Label      string    `json:"label"`
	Value      string    `json:"value"`
}
