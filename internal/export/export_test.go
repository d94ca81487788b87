package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/poliexam/paperforge/internal/bank"
	"github.com/poliexam/paperforge/internal/blueprint"
	"github.com/poliexam/paperforge/internal/course"
	"github.com/poliexam/paperforge/internal/paper"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

func exportCourse() course.Course {
	return course.Course{
		ID:   "local-1",
		Code: "DFC20203",
		Name: "Programming Fundamentals",
		Blueprint: []blueprint.Row{
			{
				ID: "row-1", Task: "QUIZ", Domain: taxonomy.Cognitive,
				TopicCode: "T1", CLOs: []string{"CLO1"}, Construct: "SS",
				ItemTypes: []string{"O"},
				Levels: map[string]blueprint.LevelCell{
					"C1": {Count: "2", Marks: 4},
				},
				TotalMark: 4,
			},
			{
				ID: "row-2", Task: "QUIZ", Domain: taxonomy.Cognitive,
				TopicCode: "T2", CLOs: []string{"CLO1"}, Construct: "SS",
				ItemTypes: []string{"O"},
				Levels: map[string]blueprint.LevelCell{
					"C3": {Count: "1", Marks: 6},
				},
				TotalMark: 6,
			},
		},
	}
}

func TestBlueprintSheet(t *testing.T) {
	cat, err := taxonomy.NewCatalog("")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	f, err := Blueprint(exportCourse(), taxonomy.Cognitive, cat)
	if err != nil {
		t.Fatalf("Blueprint: %v", err)
	}

	checks := map[string]string{
		"A2": "Task",
		"D2": "C1",
		"A3": "QUIZ",
		"B3": "T1",
		"D3": "2 (4)",
		"B4": "T2",
		"A5": "Jumlah",
		"J5": "10", // grand total column: 3 fixed + 6 levels + total
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(blueprintSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}

	// Both rows share the task so the Task cell merges down.
	merged, err := f.GetMergeCells(blueprintSheet)
	if err != nil {
		t.Fatalf("GetMergeCells: %v", err)
	}
	found := false
	for _, mc := range merged {
		if mc.GetStartAxis() == "A3" && mc.GetEndAxis() == "A4" {
			found = true
		}
	}
	if !found {
		t.Error("expected A3:A4 merge for the shared task")
	}
}

func TestBlueprintLegend(t *testing.T) {
	cat, err := taxonomy.NewCatalog("")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	f, err := Blueprint(exportCourse(), taxonomy.Cognitive, cat)
	if err != nil {
		t.Fatalf("Blueprint: %v", err)
	}

	rows, err := f.GetRows(blueprintSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	var all []string
	for _, r := range rows {
		all = append(all, r...)
	}
	joined := strings.Join(all, "\n")
	for _, want := range []string{"Jenis Item:", "Tahap Taksonomi:", "C1 — Remember", "A — Aneka Pilihan (Multiple Choice)"} {
		if !strings.Contains(joined, want) {
			t.Errorf("legend missing %q", want)
		}
	}
}

func TestPaperSheet(t *testing.T) {
	p := paper.Paper{
		ID:       "paper-1",
		CourseID: "local-1",
		Task:     "QUIZ",
		Header: paper.Header{
			Institution: "Politeknik Sultan Salahuddin Abdul Aziz Shah",
			CourseCode:  "DFC20203",
			CourseName:  "Programming Fundamentals",
			Session:     "SESI II 2025/2026",
			Duration:    "30 minit",
		},
		Instructions: []string{"Answer all questions."},
		Questions: []bank.Question{
			{ID: "custom-1", Number: "1", Text: "State two data types.", Marks: 4, Taxonomy: "C1", Type: bank.TypeShortAnswer},
			{
				ID: "custom-2", Number: "2", Text: "Study the program below.", Taxonomy: "C3", Type: bank.TypeStructure,
				SubQuestions: []bank.SubQuestion{
					{ID: "sub-1", Label: "(a)", Text: "Trace the output.", Marks: 3},
					{ID: "sub-2", Label: "(b)", Text: "Fix the defect.", Marks: 3},
				},
			},
		},
		Footer: paper.DefaultFooter(),
		Status: paper.StatusDraft,
	}

	f, err := Paper(p)
	if err != nil {
		t.Fatalf("Paper: %v", err)
	}

	if got, _ := f.GetCellValue(paperSheet, "A1"); got != "Politeknik Sultan Salahuddin Abdul Aziz Shah" {
		t.Errorf("A1 = %q", got)
	}

	rows, err := f.GetRows(paperSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	var all []string
	for _, r := range rows {
		all = append(all, r...)
	}
	joined := strings.Join(all, "\n")
	for _, want := range []string{
		"ARAHAN (INSTRUCTIONS)",
		"1. Answer all questions.",
		"State two data types.",
		"[4]",
		"(a)",
		"Fix the defect.",
		"Prepared by",
		"Endorsed by",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("paper sheet missing %q", want)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("workbook serialized to zero bytes")
	}
}
