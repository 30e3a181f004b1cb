package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/encuestas/api/internal/adapters/repository/postgres"
	"github.com/encuestas/api/internal/core/domain"
)

// A writer that raced past the HasAnswered pre-check must still fail on
// the per-question unique constraint, and the whole batch must roll back.
func TestConcurrentDuplicateSubmissionCollides(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	ownerToken := createUserAndToken(t, app.DB)
	survey := createSurvey(t, app, ownerToken, map[string]any{"title": "Guarded"})
	first := createQuestion(t, app, ownerToken, survey.ID.String(), map[string]any{
		"prompt": "First question",
		"type":   "free_text",
	})
	second := createQuestion(t, app, ownerToken, survey.ID.String(), map[string]any{
		"prompt": "Second question",
		"type":   "free_text",
	})

	respondentID := createUser(t, app.DB)
	answerRepo := repo.NewAnswerRepository(app.DB)
	ctx := context.Background()

	newAnswer := func(questionID uuid.UUID, text string) *domain.Answer {
		return &domain.Answer{
			ID:           uuid.New(),
			RespondentID: respondentID,
			SurveyID:     survey.ID,
			QuestionID:   questionID,
			SubmittedAt:  time.Now(),
			Value:        domain.TextValue{Text: text},
		}
	}

	require.NoError(t, answerRepo.SaveAll(ctx, []*domain.Answer{
		newAnswer(first.ID, "original"),
	}))

	// second question first, so a non-colliding row is written before the
	// constraint fires on the duplicate
	err := answerRepo.SaveAll(ctx, []*domain.Answer{
		newAnswer(second.ID, "sneaky"),
		newAnswer(first.ID, "duplicate"),
	})
	require.ErrorIs(t, err, domain.ErrAlreadyAnswered)

	var count int
	require.NoError(t, app.DB.QueryRow(
		`SELECT COUNT(*) FROM answers WHERE question_id = $1`, second.ID,
	).Scan(&count))
	assert.Equal(t, 0, count, "the failed batch must leave no rows behind")
}
