package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type reportService struct {
	surveyRepo   ports.SurveyRepository
	questionRepo ports.QuestionRepository
	userRepo     ports.UserRepository
	reportRepo   ports.ReportRepository
}

func NewReportService(surveyRepo ports.SurveyRepository, questionRepo ports.QuestionRepository, userRepo ports.UserRepository, reportRepo ports.ReportRepository) ports.ReportService {
	return &reportService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		reportRepo:   reportRepo,
	}
}

// OptionPercentage returns the share of responses that selected an
// option, as a raw float without any rounding (presentation decides how
// many decimals to show). Zero total means zero percent, never a division
// by zero.
func OptionPercentage(count, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) * 100 / float64(total)
}

func (s *reportService) TallyOptionSelections(ctx context.Context, surveyID, questionID, optionID uuid.UUID) (int64, error) {
	if _, err := s.surveyRepo.GetByID(ctx, surveyID); err != nil {
		return 0, err
	}
	return s.reportRepo.CountOptionSelections(ctx, questionID, optionID)
}

// AnswersByRespondent groups a survey's answers into one transcript per
// respondent submission. All answers of a submission share the same
// timestamp, so (respondent, submittedAt) identifies it.
func (s *reportService) AnswersByRespondent(ctx context.Context, surveyID uuid.UUID) ([]domain.RespondentTranscript, error) {
	if _, err := s.surveyRepo.GetByID(ctx, surveyID); err != nil {
		return nil, err
	}

	records, err := s.reportRepo.ListAnswerRecords(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	return groupTranscripts(records), nil
}

type transcriptKey struct {
	respondent  uuid.UUID
	submittedAt time.Time
}

func groupTranscripts(records []domain.AnswerRecord) []domain.RespondentTranscript {
	var order []transcriptKey
	grouped := make(map[transcriptKey]*domain.RespondentTranscript)

	for _, rec := range records {
		key := transcriptKey{rec.RespondentID, rec.SubmittedAt}
		transcript, ok := grouped[key]
		if !ok {
			transcript = &domain.RespondentTranscript{
				Respondent:  rec.RespondentName,
				SubmittedAt: rec.SubmittedAt,
			}
			grouped[key] = transcript
			order = append(order, key)
		}
		transcript.Answers = append(transcript.Answers, domain.TranscriptEntry{
			Prompt: rec.QuestionPrompt,
			Value:  rec.DisplayValue(),
		})
	}

	transcripts := make([]domain.RespondentTranscript, 0, len(order))
	for _, key := range order {
		transcripts = append(transcripts, *grouped[key])
	}
	return transcripts
}

// BuildExportModel assembles the full report of one survey: metadata,
// per-question option tallies with percentages and every individual
// answer. A survey without answers yields zero counts, not an error.
func (s *reportService) BuildExportModel(ctx context.Context, surveyID uuid.UUID) (*domain.SurveyExport, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	totalRespondents, err := s.reportRepo.CountRespondents(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	records, err := s.reportRepo.ListAnswerRecords(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[uuid.UUID][]domain.AnswerRecord)
	for _, rec := range records {
		byQuestion[rec.QuestionID] = append(byQuestion[rec.QuestionID], rec)
	}

	export := &domain.SurveyExport{
		Survey: domain.ExportHeader{
			ID:              survey.ID,
			Title:           survey.Title,
			Description:     survey.Description,
			Estado:          string(survey.Status),
			TotalRespuestas: totalRespondents,
		},
		Preguntas: make([]domain.QuestionExport, 0, len(questions)),
	}

	for _, q := range questions {
		questionExport := domain.QuestionExport{
			ID:          q.ID,
			Enunciado:   q.Prompt,
			Tipo:        q.Type,
			Obligatorio: q.Required,
			Opciones:    make([]domain.OptionExport, 0, len(q.Options)),
			Respuestas:  make([]domain.AnswerExport, 0, len(byQuestion[q.ID])),
		}

		for _, opt := range q.Options {
			count, err := s.reportRepo.CountOptionSelections(ctx, q.ID, opt.ID)
			if err != nil {
				return nil, err
			}
			questionExport.Opciones = append(questionExport.Opciones, domain.OptionExport{
				ID:                opt.ID,
				Label:             opt.Label,
				Value:             opt.Value,
				ConteoSelecciones: count,
				Porcentaje:        OptionPercentage(count, totalRespondents),
			})
		}

		for _, rec := range byQuestion[q.ID] {
			questionExport.Respuestas = append(questionExport.Respuestas, domain.AnswerExport{
				Fecha:   rec.SubmittedAt,
				Usuario: rec.RespondentName,
				Valor:   rec.DisplayValue(),
			})
		}

		export.Preguntas = append(export.Preguntas, questionExport)
	}

	return export, nil
}

// BuildExportSummaries produces the multi-survey rollup consumed by the
// bulk spreadsheet export. Unknown ids are skipped; an all-unknown input
// is reported as not found.
func (s *reportService) BuildExportSummaries(ctx context.Context, surveyIDs []uuid.UUID) ([]domain.ExportSummary, error) {
	summaries := make([]domain.ExportSummary, 0, len(surveyIDs))
	for _, id := range surveyIDs {
		survey, err := s.surveyRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrSurveyNotFound) {
				continue
			}
			return nil, err
		}

		total, err := s.reportRepo.CountRespondents(ctx, id)
		if err != nil {
			return nil, err
		}

		author := "Unknown"
		if owner, err := s.userRepo.GetByID(ctx, survey.OwnerID); err == nil && owner != nil {
			author = owner.Name
		}

		summaries = append(summaries, domain.ExportSummary{
			ID:              survey.ID,
			Titulo:          survey.Title,
			Descripcion:     survey.Description,
			Estado:          survey.Status,
			CierraEn:        survey.ClosesAt,
			CreadoEn:        survey.CreatedAt,
			Autor:           author,
			TotalRespuestas: total,
		})
	}

	if len(summaries) == 0 {
		return nil, domain.ErrSurveyNotFound
	}
	return summaries, nil
}
