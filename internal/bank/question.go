// Package bank holds the shared question bank: reusable question records
// tagged with course, topic, taxonomy level, and CLO links, plus the picker
// ranking and bulk import used by the paper binder.
package bank

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
)

// Question types match the bank editor's fixed vocabulary.
const (
	TypeMCQ          = "mcq"
	TypeShortAnswer  = "short-answer"
	TypeEssay        = "essay"
	TypeCalculation  = "calculation"
	TypeDiagramLabel = "diagram-label"
	TypeMeasurement  = "measurement"
	TypeStructure    = "structure"
)

// Types lists the valid question types.
func Types() []string {
	return []string{
		TypeMCQ, TypeShortAnswer, TypeEssay, TypeCalculation,
		TypeDiagramLabel, TypeMeasurement, TypeStructure,
	}
}

// Media attaches a figure or table to a question or sub-question.
type Media struct {
	Kind    string `json:"kind"` // figure, table, table-figure
	Caption string `json:"caption,omitempty"`
	URL     string `json:"url,omitempty"`
}

// SubQuestion is one labelled part of a multi-part question.
type SubQuestion struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Text   string `json:"text"`
	Marks  int    `json:"marks"`
	Answer string `json:"answer,omitempty"`
	Media  *Media `json:"media,omitempty"`
}

// Question is a bank record. Number is only set on the denormalized copy a
// paper owns, never on the bank original.
type Question struct {
	ID           string        `json:"id"`
	CourseID     string        `json:"courseId,omitempty"`
	Number       string        `json:"number,omitempty"`
	Text         string        `json:"text"`
	Marks        int           `json:"marks"`
	Topic        string        `json:"topic,omitempty"`
	Taxonomy     string        `json:"taxonomy"`
	Construct    string        `json:"construct,omitempty"` // SS or GS
	Type         string        `json:"type"`
	SubQuestions []SubQuestion `json:"subQuestions,omitempty"`
	Media        *Media        `json:"media,omitempty"`
	Answer       string        `json:"answer,omitempty"`
	CLOKeys      []string      `json:"cloKeys,omitempty"`
	MQFKeys      []string      `json:"mqfKeys,omitempty"`
}

// questionAlias carries the legacy mqfCluster field so older records
// normalize at decode time.
type questionAlias struct {
	ID           string        `json:"id"`
	CourseID     string        `json:"courseId"`
	Number       string        `json:"number"`
	Text         string        `json:"text"`
	Marks        int           `json:"marks"`
	Topic        string        `json:"topic"`
	Taxonomy     string        `json:"taxonomy"`
	Construct    string        `json:"construct"`
	Type         string        `json:"type"`
	SubQuestions []SubQuestion `json:"subQuestions"`
	Media        *Media        `json:"media"`
	Answer       string        `json:"answer"`
	CLOKeys      []string      `json:"cloKeys"`
	MQFKeys      []string      `json:"mqfKeys"`
	MQFCluster   []string      `json:"mqfCluster"`
}

// UnmarshalJSON decodes a question, coalescing the legacy mqfCluster field
// into MQFKeys and re-syncing marks from sub-questions.
func (q *Question) UnmarshalJSON(data []byte) error {
	var alias questionAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	mqfKeys := alias.MQFKeys
	if mqfKeys == nil {
		mqfKeys = alias.MQFCluster
	}

	*q = Question{
		ID:           alias.ID,
		CourseID:     alias.CourseID,
		Number:       alias.Number,
		Text:         alias.Text,
		Marks:        alias.Marks,
		Topic:        alias.Topic,
		Taxonomy:     alias.Taxonomy,
		Construct:    alias.Construct,
		Type:         alias.Type,
		SubQuestions: alias.SubQuestions,
		Media:        alias.Media,
		Answer:       alias.Answer,
		CLOKeys:      alias.CLOKeys,
		MQFKeys:      mqfKeys,
	}
	q.SyncMarks()
	return nil
}

// SyncMarks enforces the parent-total invariant: when sub-questions exist,
// the question's marks equal their sum. Questions without sub-parts keep
// their own marks.
func (q *Question) SyncMarks() {
	if len(q.SubQuestions) == 0 {
		return
	}
	total := 0
	for _, sub := range q.SubQuestions {
		total += sub.Marks
	}
	q.Marks = total
}

// SetSubQuestions replaces the sub-question list and re-syncs marks.
func (q *Question) SetSubQuestions(subs []SubQuestion) {
	for i := range subs {
		if subs[i].ID == "" {
			subs[i].ID = newSubID()
		}
	}
	q.SubQuestions = subs
	q.SyncMarks()
}

// UpdateSubQuestion merges changed fields into the sub-question with the
// given ID and re-syncs the parent total.
func (q *Question) UpdateSubQuestion(id string, sub SubQuestion) error {
	for i := range q.SubQuestions {
		if q.SubQuestions[i].ID != id {
			continue
		}
		sub.ID = id
		q.SubQuestions[i] = sub
		q.SyncMarks()
		return nil
	}
	return fmt.Errorf("sub-question not found: %s", id)
}

// Clone returns a deep copy. Papers bind copies, never bank originals, so
// edits on either side stay independent.
func (q Question) Clone() Question {
	out := q
	if q.SubQuestions != nil {
		out.SubQuestions = make([]SubQuestion, len(q.SubQuestions))
		copy(out.SubQuestions, q.SubQuestions)
		for i, sub := range q.SubQuestions {
			if sub.Media != nil {
				m := *sub.Media
				out.SubQuestions[i].Media = &m
			}
		}
	}
	if q.Media != nil {
		m := *q.Media
		out.Media = &m
	}
	out.CLOKeys = append([]string(nil), q.CLOKeys...)
	out.MQFKeys = append([]string(nil), q.MQFKeys...)
	return out
}

func newSubID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return fmt.Sprintf("sub-%x", b)
}
