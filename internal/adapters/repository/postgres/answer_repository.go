package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/encuestas/api/internal/core/domain"
	"github.com/encuestas/api/internal/core/ports"
)

// uniqueViolation is the postgres error code raised by the
// (respondent_id, survey_id, question_id) constraint when two submissions
// of the same respondent race past the existence check.
const uniqueViolation = "23505"

type answerRepository struct {
	db *sql.DB
}

func NewAnswerRepository(db *sql.DB) ports.AnswerRepository {
	return &answerRepository{
		db: db,
	}
}

func (r *answerRepository) SaveAll(ctx context.Context, answers []*domain.Answer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryAnswer := `
		INSERT INTO answers (id, respondent_id, survey_id, question_id, submitted_at, free_text, numeric_value, selected_option_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	answerStmt, err := tx.PrepareContext(ctx, queryAnswer)
	if err != nil {
		return fmt.Errorf("failed to prepare answer statement: %w", err)
	}
	defer answerStmt.Close()

	queryOption := `
		INSERT INTO answer_options (answer_id, option_id)
		VALUES ($1, $2)
	`
	optionStmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return fmt.Errorf("failed to prepare answer option statement: %w", err)
	}
	defer optionStmt.Close()

	for _, answer := range answers {
		row := answerColumns(answer)
		_, err = answerStmt.ExecContext(ctx,
			answer.ID, answer.RespondentID, answer.SurveyID, answer.QuestionID, answer.SubmittedAt,
			row.freeText, row.numeric, row.selectedOptionID,
		)
		if err != nil {
			return wrapAnswerInsertErr(err)
		}

		for _, optionID := range row.optionIDs {
			if _, err := optionStmt.ExecContext(ctx, answer.ID, optionID); err != nil {
				return fmt.Errorf("failed to insert answer option: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapAnswerInsertErr(err)
	}
	return nil
}

func (r *answerRepository) HasAnswered(ctx context.Context, surveyID, respondentID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM answers WHERE survey_id = $1 AND respondent_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, surveyID, respondentID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing answers: %w", err)
	}
	return true, nil
}

func (r *answerRepository) ListByRespondent(ctx context.Context, respondentID uuid.UUID) ([]domain.AnswerRecord, error) {
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
		WHERE a.respondent_id = $1
		ORDER BY a.submitted_at DESC, q.created_at, q.id
	`
	rows, err := r.db.QueryContext(ctx, query, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list respondent answers: %w", err)
	}
	defer rows.Close()

	return scanAnswerRecords(rows)
}

type answerRow struct {
	freeText         sql.NullString
	numeric          sql.NullFloat64
	selectedOptionID *uuid.UUID
	optionIDs        []uuid.UUID
}

// answerColumns flattens the payload union into the nullable answer
// columns. Exactly the field(s) of the matching variant are set, so the
// stored row always honors the type-shape invariant.
func answerColumns(answer *domain.Answer) answerRow {
	var row answerRow
	switch v := answer.Value.(type) {
	case domain.TextValue:
		row.freeText = sql.NullString{String: v.Text, Valid: true}
	case domain.ScaleValue:
		row.numeric = sql.NullFloat64{Float64: v.Number, Valid: true}
	case domain.ChoiceValue:
		optionID := v.OptionID
		row.selectedOptionID = &optionID
		if v.Comment != "" {
			row.freeText = sql.NullString{String: v.Comment, Valid: true}
		}
	case domain.MultiChoiceValue:
		row.optionIDs = v.OptionIDs
		if v.Comment != "" {
			row.freeText = sql.NullString{String: v.Comment, Valid: true}
		}
	case domain.NoValue:
	}
	return row
}

func wrapAnswerInsertErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrAlreadyAnswered
	}
	return fmt.Errorf("failed to save answers: %w", err)
}

func scanAnswerRecords(rows *sql.Rows) ([]domain.AnswerRecord, error) {
	var records []domain.AnswerRecord
	for rows.Next() {
		var rec domain.AnswerRecord
		var numeric sql.NullFloat64
		var labels []string
		if err := rows.Scan(
			&rec.RespondentID, &rec.RespondentName, &rec.SubmittedAt,
			&rec.SurveyID, &rec.SurveyTitle,
			&rec.QuestionID, &rec.QuestionPrompt,
			&rec.Text, &numeric, pq.Array(&labels),
		); err != nil {
			return nil, fmt.Errorf("failed to scan answer record: %w", err)
		}
		if numeric.Valid {
			value := numeric.Float64
			rec.Numeric = &value
		}
		rec.OptionLabels = labels
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answer records: %w", err)
	}
	return records, nil
}
