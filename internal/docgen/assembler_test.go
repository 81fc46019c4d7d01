package docgen

import (
	"testing"

	"edukit/lesson-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		subject string
		grade   string
		want    string
	}{
		{"Science", "Grade 5", "DLL_Science_Grade_5.docx"},
		{"Araling Panlipunan", "Grade 10", "DLL_Araling_Panlipunan_Grade_10.docx"},
		{"  Math  ", " Grade 1 ", "DLL_Math_Grade_1.docx"},
		{"", "", "DLL__.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.subject, tt.grade))
		})
	}
}

// The same subject and grade must always derive the same name.
func TestFileNameDeterministic(t *testing.T) {
	assert.Equal(t, FileName("Science", "Grade 5"), FileName("Science", "Grade 5"))
}

func TestAssembleDocument(t *testing.T) {
	req := &domain.LessonPlanRequest{
		GradeLevel:          "Grade 5",
		Subject:             "Science",
		Quarter:             "Quarter 1 - Week 1",
		ContentStandard:     "Matter and its properties",
		PerformanceStandard: "Classify everyday materials",
		Competency:          "Describe solids, liquids and gases",
	}

	matrix, err := ParseMatrix(`{"review": {"Monday": "Recall prior lesson"}}`)
	require.NoError(t, err)

	data, err := AssembleDocument(req, ProjectRows(matrix))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// A docx is a zip container; check the magic rather than the whole file.
	assert.Equal(t, byte('P'), data[0])
	assert.Equal(t, byte('K'), data[1])
}

// Empty fields are accepted verbatim; the assembler validates nothing.
func TestAssembleDocumentEmptyRequest(t *testing.T) {
	rows := ProjectRows(domain.LessonPlanMatrix{})

	data, err := AssembleDocument(&domain.LessonPlanRequest{}, rows)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
