// Package paper assembles assessment papers: flattening a blueprint into
// ordered question slots, binding bank questions into those slots, and
// deriving the answer-scheme view from mark annotations.
package paper

import (
	"github.com/poliexam/paperforge/internal/bank"
	"github.com/poliexam/paperforge/internal/blueprint"
)

// Paper status values. Papers start as drafts and move forward only.
const (
	StatusDraft    = "draft"
	StatusReviewed = "reviewed"
	StatusEndorsed = "endorsed"
)

// Header is the institutional identity block at the top of a printed paper.
type Header struct {
	Institution string `json:"institution"`
	Department  string `json:"department"`
	Programme   string `json:"programme"`
	CourseCode  string `json:"courseCode"`
	CourseName  string `json:"courseName"`
	Session     string `json:"session"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
}

// Signatory is one column of the three-column signature footer.
type Signatory struct {
	Role     string `json:"role"` // Prepared by / Reviewed by / Endorsed by
	Name     string `json:"name"`
	Position string `json:"position"`
	Date     string `json:"date"`
}

// Paper is an assessment paper under construction or in the library. Its
// questions are denormalized copies of bank records; edits here never reach
// the bank.
type Paper struct {
	ID           string          `json:"id"`
	CourseID     string          `json:"courseId"`
	Task         string          `json:"task"`
	Header       Header          `json:"header"`
	Matrix       []blueprint.Row `json:"matrix"`
	StudentInfo  []string        `json:"studentInfo"`
	Instructions []string        `json:"instructions"`
	Questions    []bank.Question `json:"questions"`
	Footer       []Signatory     `json:"footer"`
	Status       string          `json:"status"`
}

// DefaultFooter returns the standard three-column signature block.
func DefaultFooter() []Signatory {
	return []Signatory{
		{Role: "Prepared by"},
		{Role: "Reviewed by"},
		{Role: "Endorsed by"},
	}
}
