package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type questionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) ports.QuestionRepository {
	return &questionRepository{
		db: db,
	}
}

func (r *questionRepository) Save(ctx context.Context, question *domain.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryQuestion := `
		INSERT INTO questions (id, survey_id, prompt, question_type, required, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, queryQuestion,
		question.ID, question.SurveyID, question.Prompt, question.Type, question.Required, question.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}

	queryOption := `
		INSERT INTO options (id, question_id, position, label, value)
		VALUES ($1, $2, $3, $4, $5)
	`
	stmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return fmt.Errorf("failed to prepare option statement: %w", err)
	}
	defer stmt.Close()

	for _, opt := range question.Options {
		_, err = stmt.ExecContext(ctx, opt.ID, opt.QuestionID, opt.Position, opt.Label, opt.Value)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *questionRepository) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]domain.Question, error) {
	query := `
		SELECT id, survey_id, prompt, question_type, required, created_at
		FROM questions
		WHERE survey_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.Prompt, &q.Type, &q.Required, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	for i := range questions {
		options, err := r.fetchOptions(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Options = options
	}

	return questions, nil
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if affected == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (r *questionRepository) fetchOptions(ctx context.Context, questionID uuid.UUID) ([]domain.Option, error) {
	query := `
		SELECT id, question_id, position, label, value
		FROM options
		WHERE question_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get question options: %w", err)
	}
	defer rows.Close()

	var options []domain.Option
	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.Position, &opt.Label, &opt.Value); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}
