package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type SurveyHandler struct {
	service ports.SurveyService
}

func NewSurveyHandler(service ports.SurveyService) *SurveyHandler {
	return &SurveyHandler{
		service: service,
	}
}

type surveyRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ClosesAt    *time.Time `json:"closes_at"`
}

func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req surveyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	survey, err := h.service.Create(r.Context(), ports.CreateSurveyInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.SurveyStatus(req.Status),
		ClosesAt:    req.ClosesAt,
		OwnerID:     userID,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, survey)
}

func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	surveys, err := h.service.ListOwned(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if surveys == nil {
		surveys = []*domain.Survey{}
	}

	render.JSON(w, r, surveys)
}

func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
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

	survey, err := h.service.GetOwned(r.Context(), surveyID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, survey)
}

func (h *SurveyHandler) UpdateSurvey(w http.ResponseWriter, r *http.Request) {
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

	var req surveyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	survey, err := h.service.Update(r.Context(), ports.UpdateSurveyInput{
		SurveyID:    surveyID,
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.SurveyStatus(req.Status),
		ClosesAt:    req.ClosesAt,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, survey)
}

func (h *SurveyHandler) DeleteSurvey(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Delete(r.Context(), surveyID, userID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
