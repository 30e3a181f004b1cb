package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ports.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// CountOptionSelections counts answers selecting the option through
// either payload channel: the single-choice column or a multi-choice join
// row. DISTINCT keeps an answer that (incorrectly) populated both from
// counting twice.
func (r *reportRepository) CountOptionSelections(ctx context.Context, questionID, optionID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT a.id)
		FROM answers a
		WHERE a.question_id = $1
			AND (a.selected_option_id = $2
				OR EXISTS (
					SELECT 1 FROM answer_options ao
					WHERE ao.answer_id = a.id AND ao.option_id = $2
				))
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, questionID, optionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count option selections: %w", err)
	}
	return count, nil
}

func (r *reportRepository) CountRespondents(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(DISTINCT respondent_id) FROM answers WHERE survey_id = $1`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, surveyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count respondents: %w", err)
	}
	return count, nil
}

func (r *reportRepository) ListAnswerRecords(ctx context.Context, surveyID uuid.UUID) ([]domain.AnswerRecord, error) {
	query := `
		SELECT a.respondent_id, COALESCE(NULLIF(u.name, ''), 'Anonymous'),
			a.submitted_at, a.survey_id, s.title, a.question_id, q.prompt,
			COALESCE(a.free_text, ''), a.numeric_value,
			COALESCE(
				(SELECT array_agg(o.label ORDER BY o.position)
				 FROM answer_options ao JOIN options o ON o.id = ao.option_id
				 WHERE ao.answer_id = a.id),
				(SELECT ARRAY[so.label] FROM options so WHERE so.id = a.selected_option_id)
			)
		FROM answers a
		JOIN surveys s ON s.id = a.survey_id
		JOIN questions q ON q.id = a.question_id
		LEFT JOIN users u ON u.id = a.respondent_id
		WHERE a.survey_id = $1
		ORDER BY a.submitted_at, a.respondent_id, q.created_at, q.id
	`
	rows, err := r.db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answer records: %w", err)
	}
	defer rows.Close()

	return scanAnswerRecords(rows)
}

type resultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ports.ResultRepository {
	return &resultRepository{
		db: db,
	}
}

func (r *resultRepository) SummarizeSurvey(ctx context.Context, surveyID uuid.UUID) error {
	query := `
		INSERT INTO survey_results (survey_id, option_id, selection_count, last_updated_at)
		SELECT $1, o.id,
			(SELECT COUNT(DISTINCT a.id)
			 FROM answers a
			 WHERE a.question_id = o.question_id
				AND (a.selected_option_id = o.id
					OR EXISTS (
						SELECT 1 FROM answer_options ao
						WHERE ao.answer_id = a.id AND ao.option_id = o.id
					))),
			NOW()
		FROM options o
		JOIN questions q ON q.id = o.question_id
		WHERE q.survey_id = $1
		ON CONFLICT (survey_id, option_id) DO UPDATE
		SET selection_count = EXCLUDED.selection_count,
		    last_updated_at = NOW();
	`
	_, err := r.db.ExecContext(ctx, query, surveyID)
	if err != nil {
		return fmt.Errorf("failed to summarize survey %s: %w", surveyID, err)
	}
	return nil
}
