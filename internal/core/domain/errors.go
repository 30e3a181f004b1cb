package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrSurveyNotActive  = errors.New("survey is not open for answers")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAlreadyAnswered  = errors.New("survey already answered by this user")
	ErrForbidden        = errors.New("not the owner of this survey")
	ErrInternal         = errors.New("internal server error")
)

// ValidationError rejects a submission or a question definition, naming
// the offending question so the caller can surface a specific message.
type ValidationError struct {
	QuestionID uuid.UUID
	Prompt     string
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.Prompt != "" {
		return fmt.Sprintf("question %q: %s", e.Prompt, e.Reason)
	}
	return fmt.Sprintf("question %s: %s", e.QuestionID, e.Reason)
}

func NewValidationError(q Question, reason string) error {
	return &ValidationError{QuestionID: q.ID, Prompt: q.Prompt, Reason: reason}
}

// InvalidInputError rejects a malformed survey or question definition.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

func NewInvalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}
