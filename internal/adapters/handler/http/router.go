package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewHandler assembles the API router. Everything under /api requires a
// valid access token except the public respondent endpoints.
func NewHandler(
	jwtSecret []byte,
	surveyHandler *SurveyHandler,
	questionHandler *QuestionHandler,
	answerHandler *AnswerHandler,
	reportHandler *ReportHandler,
	userHandler *UserHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})

		r.Route("/public", func(r chi.Router) {
			r.Get("/surveys/{id}/questions", questionHandler.ListPublicQuestions)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtSecret))

			r.Route("/surveys", func(r chi.Router) {
				r.Post("/", surveyHandler.CreateSurvey)
				r.Get("/", surveyHandler.ListSurveys)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", surveyHandler.GetSurvey)
					r.Put("/", surveyHandler.UpdateSurvey)
					r.Delete("/", surveyHandler.DeleteSurvey)

					r.Post("/questions", questionHandler.CreateQuestion)
					r.Get("/questions", questionHandler.ListQuestions)
					r.Delete("/questions/{questionID}", questionHandler.DeleteQuestion)

					r.Post("/answers", answerHandler.SubmitAnswers)

					r.Get("/report", reportHandler.GetReport)
					r.Get("/export", reportHandler.ExportSurvey)
					r.Get("/questions/{questionID}/options/{optionID}/count", reportHandler.GetOptionCount)
				})
			})

			r.Get("/me", userHandler.GetMe)
			r.Get("/my-answers", answerHandler.MyAnswers)
			r.Post("/export/summaries", reportHandler.ExportSummaries)
		})
	})

	return r
}
