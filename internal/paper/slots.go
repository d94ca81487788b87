package paper

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/poliexam/paperforge/internal/blueprint"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

// Slot is one question-number target implied by a blueprint row's mark
// distribution. Slots are derived, never persisted. A row with marks at two
// levels yields two independent slots sharing the row's CLO/topic context.
type Slot struct {
	TargetNumber   string   `json:"targetNumber"`
	TargetMarks    int      `json:"targetMarks"`
	TargetTaxonomy string   `json:"targetTaxonomy"`
	CLOs           []string `json:"clos"`
	TopicCode      string   `json:"topicCode"`
	RowID          string   `json:"rowId"`
}

// Slots flattens the blueprint rows of one assessment task into ordered
// slots: one per level cell with marks, sorted by the number label using
// numeric-aware comparison so "2" sorts before "10".
func Slots(rows []blueprint.Row, task string) []Slot {
	var slots []Slot
	for _, row := range rows {
		if row.Task != task {
			continue
		}
		for _, level := range taxonomy.Levels(row.Domain) {
			cell, ok := row.Levels[level]
			if !ok || cell.Marks <= 0 {
				continue
			}
			slots = append(slots, Slot{
				TargetNumber:   cell.Count,
				TargetMarks:    cell.Marks,
				TargetTaxonomy: level,
				CLOs:           append([]string(nil), row.CLOs...),
				TopicCode:      row.TopicCode,
				RowID:          row.ID,
			})
		}
	}

	numeric := collate.New(language.Und, collate.Numeric)
	sort.SliceStable(slots, func(i, j int) bool {
		return numeric.CompareString(slots[i].TargetNumber, slots[j].TargetNumber) < 0
	})
	return slots
}
