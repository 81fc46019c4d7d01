package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"edukit/lesson-planner/internal/domain"
)

// promptTemplate frames the model as a DepEd curriculum expert and pins the
// reply to a JSON object with exactly the ten lesson-part keys. The matrix
// skeleton is spelled out so the model cannot improvise the shape.
const promptTemplate = `You are a DepEd Curriculum Expert. Create a Weekly Lesson Plan (DLL) for %s %s.

Context:
- Content Standard: %s
- Performance Standard: %s
- Competency: %s
- Daily Objectives: %s

Task:
Using the attached file as the learning resource, fill out the specific DLL matrix.

Output Format:
Return ONLY valid JSON. The JSON keys are the lesson parts and the values are objects keyed by day.

Structure:
{
%s
}`

// RenderPrompt produces the completion prompt for one request. Standards and
// competency text are embedded verbatim; the per-day objectives are
// serialized to a JSON literal in weekday order so the model sees them as
// structured context.
func RenderPrompt(req *domain.LessonPlanRequest) string {
	return fmt.Sprintf(promptTemplate,
		req.GradeLevel,
		req.Subject,
		req.ContentStandard,
		req.PerformanceStandard,
		req.Competency,
		objectivesJSON(req.Objectives),
		matrixSkeleton(),
	)
}

// objectivesJSON renders the objectives map as a JSON object literal keyed
// in fixed weekday order. encoding/json would sort keys alphabetically,
// which scrambles the school week, so the object is assembled by hand from
// Marshal-escaped members.
func objectivesJSON(objectives map[string]string) string {
	members := make([]string, 0, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		key, _ := json.Marshal(day)
		value, _ := json.Marshal(objectives[day])
		members = append(members, fmt.Sprintf("%s: %s", key, value))
	}
	return "{" + strings.Join(members, ", ") + "}"
}

// matrixSkeleton lists the ten fixed keys, one per line, each mapping to a
// five-weekday object stub.
func matrixSkeleton() string {
	lines := make([]string, 0, len(domain.LessonParts))
	for _, part := range domain.LessonParts {
		lines = append(lines, fmt.Sprintf("    %q: {\"Monday\": \"...\", \"Tuesday\": \"...\", \"Wednesday\": \"...\", \"Thursday\": \"...\", \"Friday\": \"...\"}", part.Key))
	}
	return strings.Join(lines, ",\n")
}
