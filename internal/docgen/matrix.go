package docgen

import (
	"encoding/json"
	"fmt"

	"edukit/lesson-planner/internal/domain"
)

// ParseError covers all failures turning an AI reply into a LessonPlanMatrix.
// Callers surface it as a generation failure; it is never retried here.
type ParseError struct {
	Reason string
	Err    error // underlying json diagnostic, may be nil
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse AI response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse AI response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseMatrix normalizes and parses a raw AI reply into a LessonPlanMatrix.
// The reply must be a JSON object after fence stripping; anything else
// (invalid JSON, empty text, a top-level array or scalar) is a ParseError.
// Keys outside the ten fixed lesson parts are kept in the map but simply
// never rendered; the projection ignores them.
func ParseMatrix(raw string) (domain.LessonPlanMatrix, error) {
	text := NormalizeResponse(raw)
	if text == "" {
		return nil, &ParseError{Reason: "response is empty after removing code fences"}
	}

	var matrix domain.LessonPlanMatrix
	if err := json.Unmarshal([]byte(text), &matrix); err != nil {
		return nil, &ParseError{Reason: "response is not a JSON object of lesson parts", Err: err}
	}
	if matrix == nil {
		return nil, &ParseError{Reason: "response decoded to JSON null"}
	}

	return matrix, nil
}

// ProjectRows turns a matrix into the fixed 10x6 table body: one row per
// lesson part in fixed order, first column the display label, then one cell
// per weekday. Missing parts and missing weekdays become empty strings, so
// the shape is always exactly len(domain.LessonParts) rows of
// 1+len(domain.Weekdays) columns regardless of what the AI returned.
func ProjectRows(matrix domain.LessonPlanMatrix) [][]string {
	rows := make([][]string, 0, len(domain.LessonParts))
	for _, part := range domain.LessonParts {
		row := make([]string, 0, 1+len(domain.Weekdays))
		row = append(row, part.Label)
		for _, day := range domain.Weekdays {
			row = append(row, matrix.Cell(part.Key, day))
		}
		rows = append(rows, row)
	}
	return rows
}
