package domain

import (
	"time"

	"github.com/google/uuid"
)

type SurveyStatus string

const (
	SurveyStatusActive   SurveyStatus = "active"
	SurveyStatusInactive SurveyStatus = "inactive"
	SurveyStatusClosed   SurveyStatus = "closed"
)

// IsOpen reports whether the survey accepts new submissions. Only the
// status matters: a closed or inactive survey rejects answers regardless
// of its closing timestamp.
func (s SurveyStatus) IsOpen() bool {
	return s == SurveyStatusActive
}

type Survey struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      SurveyStatus `json:"status"`
	ClosesAt    *time.Time   `json:"closes_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	OwnerID     uuid.UUID    `json:"owner_id"`
}
