package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

type surveyRepository struct {
	db *sql.DB
}

func NewSurveyRepository(db *sql.DB) ports.SurveyRepository {
	return &surveyRepository{
		db: db,
	}
}

func (r *surveyRepository) Save(ctx context.Context, survey *domain.Survey) error {
	query := `
		INSERT INTO surveys (id, title, description, status, closes_at, created_at, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		survey.ID, survey.Title, survey.Description, survey.Status, survey.ClosesAt, survey.CreatedAt, survey.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert survey: %w", err)
	}
	return nil
}

func (r *surveyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Survey, error) {
	query := `
		SELECT id, title, description, status, closes_at, created_at, owner_id
		FROM surveys
		WHERE id = $1
	`

	var survey domain.Survey
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&survey.ID, &survey.Title, &survey.Description, &survey.Status, &survey.ClosesAt, &survey.CreatedAt, &survey.OwnerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	return &survey, nil
}

func (r *surveyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Survey, error) {
	// Materialized tallies drive the ordering so the most answered
	// surveys come first.
	query := `
		SELECT s.id, s.title, s.description, s.status, s.closes_at, s.created_at, s.owner_id
		FROM surveys s
		LEFT JOIN survey_results sr ON s.id = sr.survey_id
		WHERE s.owner_id = $1
		GROUP BY s.id
		ORDER BY COALESCE(SUM(sr.selection_count), 0) DESC, s.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer rows.Close()

	return scanSurveys(rows)
}

func (r *surveyRepository) ListAll(ctx context.Context) ([]*domain.Survey, error) {
	query := `
		SELECT id, title, description, status, closes_at, created_at, owner_id
		FROM surveys
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all surveys: %w", err)
	}
	defer rows.Close()

	return scanSurveys(rows)
}

func (r *surveyRepository) Update(ctx context.Context, survey *domain.Survey) error {
	query := `
		UPDATE surveys
		SET title = $2, description = $3, status = $4, closes_at = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		survey.ID, survey.Title, survey.Description, survey.Status, survey.ClosesAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update survey: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update survey: %w", err)
	}
	if affected == 0 {
		return domain.ErrSurveyNotFound
	}
	return nil
}

func (r *surveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Questions, options, answers and join rows go with the survey via
	// FK cascades.
	result, err := r.db.ExecContext(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	if affected == 0 {
		return domain.ErrSurveyNotFound
	}
	return nil
}

func scanSurveys(rows *sql.Rows) ([]*domain.Survey, error) {
	var surveys []*domain.Survey
	for rows.Next() {
		var survey domain.Survey
		if err := rows.Scan(
			&survey.ID, &survey.Title, &survey.Description, &survey.Status, &survey.ClosesAt, &survey.CreatedAt, &survey.OwnerID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		surveys = append(surveys, &survey)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating surveys: %w", err)
	}
	return surveys, nil
}
