package http

import (
	"errors"
	"net/http"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/pkg/logx"
)

// respondError maps domain failures to their HTTP status. Everything in
// the taxonomy is recoverable by the caller; only unexpected storage
// errors end up as a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var inputErr *domain.InvalidInputError
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &inputErr):
		http.Error(w, inputErr.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrSurveyNotFound), errors.Is(err, domain.ErrQuestionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrSurveyNotActive):
		http.Error(w, "survey not available", http.StatusConflict)
	case errors.Is(err, domain.ErrAlreadyAnswered):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		logx.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "unexpected error", http.StatusInternalServerError)
	}
}
