package blueprint_test

import (
	"testing"

	"github.com/poliexam/paperforge/internal/blueprint"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

func TestTotals(t *testing.T) {
	row := blueprint.NewRow(taxonomy.Cognitive, 0)
	row.Levels["C1"] = blueprint.LevelCell{Count: "1", Marks: 4}
	row.Levels["C3"] = blueprint.LevelCell{Count: "2", Marks: 12}

	summary := blueprint.Totals([]blueprint.Row{row}, taxonomy.Cognitive)

	if summary.GrandTotal != 16 {
		t.Fatalf("GrandTotal = %d, want 16", summary.GrandTotal)
	}

	percents := map[string]int{}
	marks := map[string]int{}
	for _, lt := range summary.Levels {
		percents[lt.Level] = lt.Percent
		marks[lt.Level] = lt.Marks
	}

	if marks["C1"] != 4 || marks["C3"] != 12 {
		t.Errorf("marks = C1:%d C3:%d, want 4 and 12", marks["C1"], marks["C3"])
	}
	if percents["C1"] != 25 {
		t.Errorf("C1 percent = %d, want 25", percents["C1"])
	}
	if percents["C3"] != 75 {
		t.Errorf("C3 percent = %d, want 75", percents["C3"])
	}
	if percents["C2"] != 0 {
		t.Errorf("C2 percent = %d, want 0", percents["C2"])
	}
}

func TestTotals_ZeroGrandTotal(t *testing.T) {
	row := blueprint.NewRow(taxonomy.Cognitive, 0)

	summary := blueprint.Totals([]blueprint.Row{row}, taxonomy.Cognitive)

	if summary.GrandTotal != 0 {
		t.Fatalf("GrandTotal = %d, want 0", summary.GrandTotal)
	}
	for _, lt := range summary.Levels {
		if lt.Percent != 0 {
			t.Errorf("%s percent = %d, want 0 when grand total is 0", lt.Level, lt.Percent)
		}
	}
}

func TestTotals_SumsAcrossRows(t *testing.T) {
	a := blueprint.NewRow(taxonomy.Affective, 0)
	a.Levels["A1"] = blueprint.LevelCell{Marks: 3}
	b := blueprint.NewRow(taxonomy.Affective, 1)
	b.Levels["A1"] = blueprint.LevelCell{Marks: 7}

	summary := blueprint.Totals([]blueprint.Row{a, b}, taxonomy.Affective)

	if summary.GrandTotal != 10 {
		t.Errorf("GrandTotal = %d, want 10", summary.GrandTotal)
	}
	if summary.Levels[0].Marks != 10 {
		t.Errorf("A1 marks = %d, want 10", summary.Levels[0].Marks)
	}
	if summary.Levels[0].Percent != 100 {
		t.Errorf("A1 percent = %d, want 100", summary.Levels[0].Percent)
	}
}
