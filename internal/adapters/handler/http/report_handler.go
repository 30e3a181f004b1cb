package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type ReportHandler struct {
	reports ports.ReportService
	surveys ports.SurveyService
}

func NewReportHandler(reports ports.ReportService, surveys ports.SurveyService) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		surveys: surveys,
	}
}

type surveyReportResponse struct {
	ID              uuid.UUID                     `json:"id"`
	Titulo          string                        `json:"titulo"`
	Descripcion     string                        `json:"descripcion"`
	Estado          domain.SurveyStatus           `json:"estado"`
	TotalRespuestas int                           `json:"totalRespuestas"`
	Respuestas      []domain.RespondentTranscript `json:"respuestas"`
}

// GetReport returns the per-respondent transcripts of an owned survey.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	surveyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid survey id", http.StatusBadRequest)
		return
	}

	survey, err := h.surveys.GetOwned(r.Context(), surveyID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	transcripts, err := h.reports.AnswersByRespondent(r.Context(), surveyID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if transcripts == nil {
		transcripts = []domain.RespondentTranscript{}
	}

	render.JSON(w, r, surveyReportResponse{
		ID:              survey.ID,
		Titulo:          survey.Title,
		Descripcion:     survey.Description,
		Estado:          survey.Status,
		TotalRespuestas: len(transcripts),
		Respuestas:      transcripts,
	})
}

// ExportSurvey returns the full export model of an owned survey:
// metadata, per-option tallies with percentages and every answer row.
func (h *ReportHandler) ExportSurvey(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	surveyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid survey id", http.StatusBadRequest)
		return
	}

	if _, err := h.surveys.GetOwned(r.Context(), surveyID, userID); err != nil {
		respondError(w, r, err)
		return
	}

	export, err := h.reports.BuildExportModel(r.Context(), surveyID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, export)
}

// GetOptionCount returns how many answers selected one option, through
// either selection channel.
func (h *ReportHandler) GetOptionCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	surveyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid survey id", http.StatusBadRequest)
		return
	}
	questionID, err := uuid.Parse(chi.URLParam(r, "questionID"))
	if err != nil {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}
	optionID, err := uuid.Parse(chi.URLParam(r, "optionID"))
	if err != nil {
		http.Error(w, "invalid option id", http.StatusBadRequest)
		return
	}

	if _, err := h.surveys.GetOwned(r.Context(), surveyID, userID); err != nil {
		respondError(w, r, err)
		return
	}

	count, err := h.reports.TallyOptionSelections(r.Context(), surveyID, questionID, optionID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]int64{"count": count})
}

type exportSummariesRequest struct {
	SurveyIDs []uuid.UUID `json:"surveyIds"`
}

// ExportSummaries builds the multi-survey rollup. Requested surveys the
// caller does not own fail the whole request; ids that no longer exist
// are silently dropped.
func (h *ReportHandler) ExportSummaries(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req exportSummariesRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.SurveyIDs) == 0 {
		http.Error(w, "surveyIds must not be empty", http.StatusBadRequest)
		return
	}

	owned := make([]uuid.UUID, 0, len(req.SurveyIDs))
	for _, surveyID := range req.SurveyIDs {
		if _, err := h.surveys.GetOwned(r.Context(), surveyID, userID); err != nil {
			if errors.Is(err, domain.ErrSurveyNotFound) {
				continue
			}
			respondError(w, r, err)
			return
		}
		owned = append(owned, surveyID)
	}

	summaries, err := h.reports.BuildExportSummaries(r.Context(), owned)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, summaries)
}
