package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
)

type ReportRepository interface {
	// CountOptionSelections counts distinct answers that selected the
	// option, whether through the single-choice column or through a
	// multi-choice join row.
	CountOptionSelections(ctx context.Context, questionID, optionID uuid.UUID) (int64, error)
	CountRespondents(ctx context.Context, surveyID uuid.UUID) (int64, error)
	ListAnswerRecords(ctx context.Context, surveyID uuid.UUID) ([]domain.AnswerRecord, error)
}

type ReportService interface {
	TallyOptionSelections(ctx context.Context, surveyID, questionID, optionID uuid.UUID) (int64, error)
	AnswersByRespondent(ctx context.Context, surveyID uuid.UUID) ([]domain.RespondentTranscript, error)
	BuildExportModel(ctx context.Context, surveyID uuid.UUID) (*domain.SurveyExport, error)
	BuildExportSummaries(ctx context.Context, surveyIDs []uuid.UUID) ([]domain.ExportSummary, error)
}

type ResultRepository interface {
	// SummarizeSurvey upserts the materialized per-option tallies of one
	// survey.
	SummarizeSurvey(ctx context.Context, surveyID uuid.UUID) error
}

type SummaryService interface {
	SummarizeAll(ctx context.Context) error
}
