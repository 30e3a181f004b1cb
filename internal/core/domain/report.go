package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoAnswerPlaceholder is rendered when an answer row carries no usable
// payload at all.
const NoAnswerPlaceholder = "No answer"

// AnswerRecord is one stored answer flattened for reporting: the raw
// payload columns joined with the question prompt, the selected option
// labels and the respondent's display name.
type AnswerRecord struct {
	RespondentID   uuid.UUID
	RespondentName string
	SubmittedAt    time.Time
	SurveyID       uuid.UUID
	SurveyTitle    string
	QuestionID     uuid.UUID
	QuestionPrompt string
	Text           string
	Numeric        *float64
	OptionLabels   []string
}

// DisplayValue resolves the human-readable value of an answer. The
// precedence is a hard contract: non-empty free text wins, then the
// selected option label(s) comma-joined, then the numeric value as text,
// then the "No answer" placeholder.
func (r AnswerRecord) DisplayValue() string {
	if r.Text != "" {
		return r.Text
	}
	if len(r.OptionLabels) > 0 {
		return strings.Join(r.OptionLabels, ", ")
	}
	if r.Numeric != nil {
		return strconv.FormatFloat(*r.Numeric, 'f', -1, 64)
	}
	return NoAnswerPlaceholder
}

// RespondentTranscript is one respondent's full submission to a survey.
type RespondentTranscript struct {
	Respondent  string            `json:"usuario"`
	SubmittedAt time.Time         `json:"fecha"`
	Answers     []TranscriptEntry `json:"respuestas"`
}

type TranscriptEntry struct {
	Prompt string `json:"pregunta"`
	Value  string `json:"respuesta"`
}

// SurveyExport is the full report-ready shape of one survey: metadata,
// per-question option tallies and the respondent transcripts. It is what
// the spreadsheet export adapter and the results UI consume.
type SurveyExport struct {
	Survey    ExportHeader     `json:"survey"`
	Preguntas []QuestionExport `json:"preguntas"`
}

type ExportHeader struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Estado          string    `json:"estado"`
	TotalRespuestas int64     `json:"totalRespuestas"`
}

type QuestionExport struct {
	ID          uuid.UUID      `json:"id"`
	Enunciado   string         `json:"enunciado"`
	Tipo        QuestionType   `json:"tipo"`
	Obligatorio bool           `json:"obligatorio"`
	Opciones    []OptionExport `json:"opciones"`
	Respuestas  []AnswerExport `json:"respuestas"`
}

type OptionExport struct {
	ID                uuid.UUID `json:"id"`
	Label             string    `json:"label"`
	Value             string    `json:"value"`
	ConteoSelecciones int64     `json:"conteoSelecciones"`
	Porcentaje        float64   `json:"porcentaje"`
}

type AnswerExport struct {
	Fecha   time.Time `json:"fecha"`
	Usuario string    `json:"usuario"`
	Valor   string    `json:"valor"`
}

// ExportSummary is one row of the multi-survey rollup export.
type ExportSummary struct {
	ID              uuid.UUID    `json:"id"`
	Titulo          string       `json:"titulo"`
	Descripcion     string       `json:"descripcion"`
	Estado          SurveyStatus `json:"estado"`
	CierraEn        *time.Time   `json:"cierraEn,omitempty"`
	CreadoEn        time.Time    `json:"creadoEn"`
	Autor           string       `json:"autor"`
	TotalRespuestas int64        `json:"totalRespuestas"`
}

// SurveyResult is one materialized per-option tally row, refreshed by the
// result summarization job.
type SurveyResult struct {
	SurveyID       uuid.UUID
	OptionID       uuid.UUID
	SelectionCount int64
	LastUpdatedAt  time.Time
}
