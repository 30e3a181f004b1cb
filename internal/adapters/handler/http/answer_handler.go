package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/ports"
)

type AnswerHandler struct {
	service ports.SubmissionService
}

func NewAnswerHandler(service ports.SubmissionService) *AnswerHandler {
	return &AnswerHandler{
		service: service,
	}
}

type submitAnswersRequest struct {
	Answers []answerItemRequest `json:"answers"`
}

// answerItemRequest accepts both choice channels: a single selected
// option id and a list of them. They are merged before validation so
// the services only ever see one option id slice per question.
type answerItemRequest struct {
	QuestionID        uuid.UUID   `json:"questionId"`
	FreeText          string      `json:"freeText"`
	SelectedOptionID  *uuid.UUID  `json:"selectedOptionId"`
	SelectedOptionIDs []uuid.UUID `json:"selectedOptionIds"`
}

func (h *AnswerHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
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

	var req submitAnswersRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.SubmitInput{
		RespondentID: userID,
		SurveyID:     surveyID,
	}
	for _, item := range req.Answers {
		optionIDs := item.SelectedOptionIDs
		if item.SelectedOptionID != nil {
			optionIDs = append(optionIDs, *item.SelectedOptionID)
		}
		input.Items = append(input.Items, ports.AnswerItem{
			QuestionID: item.QuestionID,
			Text:       item.FreeText,
			OptionIDs:  optionIDs,
		})
	}

	if err := h.service.Submit(r.Context(), input); err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"message": "answers recorded"})
}

type myAnswerResponse struct {
	SurveyID    uuid.UUID `json:"surveyId"`
	SurveyTitle string    `json:"encuesta"`
	Prompt      string    `json:"pregunta"`
	Value       string    `json:"respuesta"`
	SubmittedAt string    `json:"fecha"`
}

func (h *AnswerHandler) MyAnswers(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	records, err := h.service.MyAnswers(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	response := make([]myAnswerResponse, 0, len(records))
	for _, record := range records {
		response = append(response, myAnswerResponse{
			SurveyID:    record.SurveyID,
			SurveyTitle: record.SurveyTitle,
			Prompt:      record.QuestionPrompt,
			Value:       record.DisplayValue(),
			SubmittedAt: record.SubmittedAt.Format("2006-01-02 15:04"),
		})
	}

	render.JSON(w, r, response)
}
