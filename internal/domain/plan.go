package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Weekdays lists the five school days in the order they appear as table
// columns. The order is fixed; every per-day structure in the system is keyed
// by these names.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// LessonPart pairs the JSON key the AI is asked to return with the label
// printed in the first column of the DLL table.
type LessonPart struct {
	Key   string
	Label string
}

// LessonParts are the ten fixed pedagogical sections of a DepEd Daily Lesson
// Log, in the order they appear as table rows. The table always renders
// exactly these ten rows, whatever the AI returned.
var LessonParts = []LessonPart{
	{"review", "Reviewing previous lesson"},
	{"purpose", "Establishing purpose"},
	{"examples", "Presenting examples"},
	{"discuss_1", "Discussing new concepts #1"},
	{"discuss_2", "Discussing new concepts #2"},
	{"mastery", "Developing Mastery"},
	{"application", "Practical application"},
	{"generalization", "Making generalizations"},
	{"evaluation", "Evaluating learning"},
	{"remediation", "Additional activities"},
}

// LessonPlanRequest carries everything one generation needs: the class
// metadata typed into the form plus the uploaded curriculum module. It is
// assembled once per submission and never mutated afterwards.
type LessonPlanRequest struct {
	GradeLevel          string            `json:"gradeLevel"`
	Subject             string            `json:"subject"`
	Quarter             string            `json:"quarter"` // e.g. "Quarter 1 - Week 1"
	ContentStandard     string            `json:"contentStandard"`
	PerformanceStandard string            `json:"performanceStandard"`
	Competency          string            `json:"competency"`
	Objectives          map[string]string `json:"objectives"` // weekday name -> objective text

	// Uploaded module the AI reads as its learning resource.
	ModuleName        string `json:"moduleName"`
	ModuleContentType string `json:"moduleContentType"`
	ModuleData        []byte `json:"-"`
}

// LessonPlanMatrix is the parsed shape of the AI reply: lesson-part key ->
// weekday -> cell text. Parts or weekdays may be absent; readers must treat
// absence as an empty cell.
type LessonPlanMatrix map[string]map[string]string

// Cell returns the text at (part, weekday), or "" when either level is
// missing. Missing data degrades to empty cells, never to an error.
func (m LessonPlanMatrix) Cell(partKey, weekday string) string {
	days, ok := m[partKey]
	if !ok {
		return ""
	}
	return days[weekday]
}

// LessonPlan is the archived record of one successful generation. The docx
// itself lives in object storage under S3ObjectKey; Mongo holds only the
// metadata needed to list and re-download it.
type LessonPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Subject     string             `bson:"subject" json:"subject"`
	GradeLevel  string             `bson:"gradeLevel" json:"gradeLevel"`
	Quarter     string             `bson:"quarter" json:"quarter"`
	Model       string             `bson:"model" json:"model"` // model identifier used for the completion
	FileName    string             `bson:"fileName" json:"fileName"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"`
	Size        int64              `bson:"size" json:"size"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
