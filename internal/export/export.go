// Package export renders the full submission set into downloadable
// documents. Renderers are pure: they take records already read from the
// store and return the complete document bytes, or an error and nothing.
package export

import (
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
)

// TimeLayout formats submission timestamps in both documents.
const TimeLayout = "2006-01-02 15:04:05"

// Column is one field of the tabular report.
type Column struct {
	Header string
	Width  float64
	Value  func(core.Submission) any
}

// Columns is the fixed tabular layout, in output order.
var Columns = []Column{
	{"ID", 10, func(s core.Submission) any { return s.ID }},
	{"Reg No", 15, func(s core.Submission) any { return s.RegistrationNumber }},
	{"Student Name", 20, func(s core.Submission) any { return s.StudentName }},
	{"Block & Room", 15, func(s core.Submission) any { return s.BlockAndRoom }},
	{"Mess Name", 20, func(s core.Submission) any { return s.DiningMessName }},
	{"Mess Type", 15, func(s core.Submission) any { return s.MessType }},
	{"Food Suggestion", 30, func(s core.Submission) any { return s.FoodItemSuggestion }},
	{"Meal Type", 15, func(s core.Submission) any { return s.MealType }},
	{"Feasibility", 10, func(s core.Submission) any { return s.FeasibilityForMassProduction }},
	{"Submitted At", 20, func(s core.Submission) any { return formatTime(s) }},
}

// Format describes one downloadable report.
type Format struct {
	Name        string
	Filename    string
	ContentType string
	Render      core.RenderFunc
}

var (
	Excel = Format{
		Name:        "excel",
		Filename:    "submissions.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Render:      RenderTabular,
	}
	PDF = Format{
		Name:        "pdf",
		Filename:    "submissions.pdf",
		ContentType: "application/pdf",
		Render:      RenderFlowDocument,
	}
)

// Formats lists the available reports by Name.
var Formats = map[string]Format{
	Excel.Name: Excel,
	PDF.Name:   PDF,
}

func formatTime(s core.Submission) string {
	if s.SubmittedAt.IsZero() {
		return ""
	}
	return s.SubmittedAt.Format(TimeLayout)
}
