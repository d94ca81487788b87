package bank_test

import (
	"encoding/json"
	"testing"

	"github.com/poliexam/paperforge/internal/bank"
)

func TestSyncMarks(t *testing.T) {
	q := bank.Question{
		Text:  "Explain the OSI model.",
		Marks: 99,
	}
	q.SetSubQuestions([]bank.SubQuestion{
		{Label: "a", Text: "Name the layers.", Marks: 3},
		{Label: "b", Text: "Describe layer 3.", Marks: 3},
	})

	if q.Marks != 6 {
		t.Errorf("Marks = %d, want 6 (sum of sub-questions)", q.Marks)
	}
}

func TestSyncMarks_NoSubQuestions(t *testing.T) {
	q := bank.Question{Text: "Define a protocol.", Marks: 4}
	q.SyncMarks()

	if q.Marks != 4 {
		t.Errorf("Marks = %d, want 4 unchanged", q.Marks)
	}
}

func TestUpdateSubQuestion_RecomputesParent(t *testing.T) {
	q := bank.Question{Text: "Q"}
	q.SetSubQuestions([]bank.SubQuestion{
		{Label: "a", Marks: 3},
		{Label: "b", Marks: 3},
	})
	id := q.SubQuestions[0].ID

	err := q.UpdateSubQuestion(id, bank.SubQuestion{Label: "a", Marks: 5})
	if err != nil {
		t.Fatalf("UpdateSubQuestion() error = %v", err)
	}
	if q.Marks != 8 {
		t.Errorf("Marks = %d, want 8 after sub-question change", q.Marks)
	}

	if err := q.UpdateSubQuestion("missing", bank.SubQuestion{}); err == nil {
		t.Error("UpdateSubQuestion() should return error for unknown ID")
	}
}

func TestClone_Independent(t *testing.T) {
	q := bank.Question{
		Text:    "Original",
		CLOKeys: []string{"CLO1"},
		Media:   &bank.Media{Kind: "figure", Caption: "Fig 1"},
	}
	q.SetSubQuestions([]bank.SubQuestion{{Label: "a", Marks: 2}})

	clone := q.Clone()
	clone.Text = "Copy"
	clone.SubQuestions[0].Marks = 9
	clone.CLOKeys[0] = "CLO9"
	clone.Media.Caption = "Changed"

	if q.Text != "Original" {
		t.Error("clone text edit leaked into original")
	}
	if q.SubQuestions[0].Marks != 2 {
		t.Error("clone sub-question edit leaked into original")
	}
	if q.CLOKeys[0] != "CLO1" {
		t.Error("clone CLO edit leaked into original")
	}
	if q.Media.Caption != "Fig 1" {
		t.Error("clone media edit leaked into original")
	}
}

func TestQuestion_DecodeLegacyMQFCluster(t *testing.T) {
	data := []byte(`{"text":"Q","marks":2,"taxonomy":"C1","type":"essay","mqfCluster":["DK3"]}`)

	var q bank.Question
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(q.MQFKeys) != 1 || q.MQFKeys[0] != "DK3" {
		t.Errorf("MQFKeys = %v, want [DK3] from legacy field", q.MQFKeys)
	}
}

func TestQuestion_DecodePrefersCurrentField(t *testing.T) {
	data := []byte(`{"text":"Q","marks":2,"taxonomy":"C1","type":"essay","mqfKeys":["DK1"],"mqfCluster":["DK3"]}`)

	var q bank.Question
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(q.MQFKeys) != 1 || q.MQFKeys[0] != "DK1" {
		t.Errorf("MQFKeys = %v, want [DK1] when both fields present", q.MQFKeys)
	}
}

func TestQuestion_DecodeSyncsMarks(t *testing.T) {
	data := []byte(`{"text":"Q","marks":50,"taxonomy":"C1","type":"structure",
		"subQuestions":[{"id":"s1","label":"a","text":"t","marks":3},{"id":"s2","label":"b","text":"t","marks":4}]}`)

	var q bank.Question
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if q.Marks != 7 {
		t.Errorf("Marks = %d, want 7 recomputed from sub-questions", q.Marks)
	}
}
