package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type QuestionHandler struct {
	service ports.QuestionService
}

func NewQuestionHandler(service ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

type createQuestionRequest struct {
	Prompt   string `json:"prompt"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Options  []struct {
		Label string `json:"label"`
		Value string `json:"value"`
	} `json:"options"`
}

func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
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

	var req createQuestionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateQuestionInput{
		SurveyID: surveyID,
		OwnerID:  userID,
		Prompt:   req.Prompt,
		Type:     domain.QuestionType(req.Type),
		Required: req.Required,
	}
	for _, opt := range req.Options {
		input.Options = append(input.Options, ports.OptionInput{Label: opt.Label, Value: opt.Value})
	}

	question, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, question)
}

func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
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

	questions, err := h.service.ListBySurvey(r.Context(), surveyID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if questions == nil {
		questions = []domain.Question{}
	}

	render.JSON(w, r, questions)
}

// ListPublicQuestions serves the respondent view of an active survey's
// questions, without any ownership requirement.
func (h *QuestionHandler) ListPublicQuestions(w http.ResponseWriter, r *http.Request) {
	surveyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid survey id", http.StatusBadRequest)
		return
	}

	questions, err := h.service.ListPublic(r.Context(), surveyID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if questions == nil {
		questions = []domain.Question{}
	}

	render.JSON(w, r, questions)
}

func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Delete(r.Context(), questionID, surveyID, userID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
