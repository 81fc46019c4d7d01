package docgen

import (
	"bytes"
	"fmt"
	"strings"

	"edukit/lesson-planner/internal/domain"

	"github.com/fumiama/go-docx"
)

// Cosmetic defaults applied to the whole document. Sizes are OOXML
// half-points, so "22" is 11pt and "32" is 16pt.
const (
	bodySize    = "22"
	headingSize = "32"
	tableWidth  = 9200
)

// ContentTypeDocx is the standard MIME type for .docx downloads.
const ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// FileName derives the stable download name for a plan,
// e.g. subject "Science" + grade "Grade 5" -> "DLL_Science_Grade_5.docx".
// Spaces collapse to underscores so the name survives Content-Disposition
// and object-storage keys unquoted.
func FileName(subject, gradeLevel string) string {
	clean := func(s string) string {
		return strings.Join(strings.Fields(strings.TrimSpace(s)), "_")
	}
	return fmt.Sprintf("DLL_%s_%s.docx", clean(subject), clean(gradeLevel))
}

// AssembleDocument builds the Daily Lesson Log docx for one request and
// returns it serialized in memory. The table body comes pre-projected from
// ProjectRows, so by the time this runs the 10x6 shape is already settled;
// the assembler validates nothing and writes every string verbatim.
func AssembleDocument(req *domain.LessonPlanRequest, rows [][]string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText(fmt.Sprintf("Daily Lesson Log - %s %s", req.Subject, req.GradeLevel)).Size(headingSize).Bold()

	doc.AddParagraph().AddText("Week: " + req.Quarter).Size(bodySize)
	doc.AddParagraph().AddText("Content Standard: " + req.ContentStandard).Size(bodySize)
	doc.AddParagraph().AddText("Performance Standard: " + req.PerformanceStandard).Size(bodySize)
	doc.AddParagraph().AddText("Learning Competency: " + req.Competency).Size(bodySize)

	// Header row plus the ten projected lesson-part rows.
	table := doc.AddTable(1+len(rows), 1+len(domain.Weekdays), tableWidth, nil)

	header := table.TableRows[0]
	header.TableCells[0].AddParagraph().AddText("Parts of the Lesson").Size(bodySize).Bold()
	for i, day := range domain.Weekdays {
		header.TableCells[i+1].AddParagraph().AddText(day).Size(bodySize).Bold()
	}

	for r, row := range rows {
		cells := table.TableRows[r+1].TableCells
		for c, text := range row {
			cells[c].AddParagraph().AddText(text).Size(bodySize)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return buf.Bytes(), nil
}
