package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnswerValue is the payload of one answer. It is a closed union with one
// variant per question type, so an answer can never carry a payload of the
// wrong shape for its question.
type AnswerValue interface {
	answerValue()
}

// TextValue holds a free-text answer, stored verbatim.
type TextValue struct {
	Text string
}

// ScaleValue holds a parsed numeric answer.
type ScaleValue struct {
	Number float64
}

// ChoiceValue holds a single-choice selection, with an optional free-text
// comment alongside it.
type ChoiceValue struct {
	OptionID uuid.UUID
	Comment  string
}

// MultiChoiceValue holds a multiple-choice selection, with an optional
// free-text comment alongside it.
type MultiChoiceValue struct {
	OptionIDs []uuid.UUID
	Comment   string
}

// NoValue marks an answer row with no payload at all. An unanswered
// optional question, or an optional scale question answered with
// unparsable text, is stored this way on purpose: the row records that
// the respondent saw the question, the value is simply absent.
type NoValue struct{}

func (TextValue) answerValue()        {}
func (ScaleValue) answerValue()       {}
func (ChoiceValue) answerValue()      {}
func (MultiChoiceValue) answerValue() {}
func (NoValue) answerValue()          {}

type Answer struct {
	ID           uuid.UUID
	RespondentID uuid.UUID
	SurveyID     uuid.UUID
	QuestionID   uuid.UUID
	SubmittedAt  time.Time
	Value        AnswerValue
}
