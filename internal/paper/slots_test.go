package paper_test

import (
	"testing"

	"github.com/poliexam/paperforge/internal/blueprint"
	"github.com/poliexam/paperforge/internal/paper"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

func quizRow(levels map[string]blueprint.LevelCell) blueprint.Row {
	row := blueprint.NewRow(taxonomy.Cognitive, 0)
	row.Task = "QUIZ"
	row.TopicCode = "T1"
	row.CLOs = []string{"CLO1"}
	for level, cell := range levels {
		row.Levels[level] = cell
	}
	return row
}

func TestSlots_NaturalOrdering(t *testing.T) {
	rows := []blueprint.Row{
		quizRow(map[string]blueprint.LevelCell{
			"C1": {Count: "2", Marks: 4},
			"C3": {Count: "10", Marks: 6},
		}),
		quizRow(map[string]blueprint.LevelCell{
			"C1": {Count: "1", Marks: 4},
		}),
	}

	slots := paper.Slots(rows, "QUIZ")

	if len(slots) != 3 {
		t.Fatalf("slot count = %d, want 3", len(slots))
	}
	want := []string{"1", "2", "10"}
	for i, w := range want {
		if slots[i].TargetNumber != w {
			t.Errorf("slots[%d] = %q, want %q (numeric-aware order)", i, slots[i].TargetNumber, w)
		}
	}
}

func TestSlots_OnePerMarkedLevel(t *testing.T) {
	rows := []blueprint.Row{
		quizRow(map[string]blueprint.LevelCell{
			"C1": {Count: "1", Marks: 4},
			"C2": {Count: "", Marks: 0},
			"C3": {Count: "2", Marks: 6},
		}),
	}

	slots := paper.Slots(rows, "QUIZ")

	if len(slots) != 2 {
		t.Fatalf("slot count = %d, want 2 (zero-mark cells emit no slot)", len(slots))
	}
	// Both slots carry the shared row context.
	for _, s := range slots {
		if s.TopicCode != "T1" || len(s.CLOs) != 1 {
			t.Errorf("slot %q context = topic %q clos %v, want T1/[CLO1]", s.TargetNumber, s.TopicCode, s.CLOs)
		}
	}
	if slots[0].TargetTaxonomy != "C1" || slots[1].TargetTaxonomy != "C3" {
		t.Errorf("taxonomies = %q, %q; want C1, C3", slots[0].TargetTaxonomy, slots[1].TargetTaxonomy)
	}
}

func TestSlots_FiltersByTask(t *testing.T) {
	quiz := quizRow(map[string]blueprint.LevelCell{"C1": {Count: "1", Marks: 2}})
	test := quizRow(map[string]blueprint.LevelCell{"C1": {Count: "1", Marks: 2}})
	test.Task = "TEST"

	slots := paper.Slots([]blueprint.Row{quiz, test}, "QUIZ")

	if len(slots) != 1 {
		t.Fatalf("slot count = %d, want 1", len(slots))
	}
	if slots[0].RowID != quiz.ID {
		t.Error("slot should come from the QUIZ row")
	}
}

func TestSlots_EmptyBlueprint(t *testing.T) {
	if slots := paper.Slots(nil, "QUIZ"); len(slots) != 0 {
		t.Errorf("slot count = %d, want 0", len(slots))
	}
}
