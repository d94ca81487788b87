package bank_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/poliexam/paperforge/internal/bank"
)

func TestImport_Valid(t *testing.T) {
	data := []byte(`[
		{"text": "Define a LAN.", "marks": 2, "taxonomy": "C1", "type": "short-answer", "topic": "T1"},
		{"text": "Crimp a cable.", "marks": 10, "taxonomy": "P3", "type": "measurement",
		 "subQuestions": [
			{"label": "a", "text": "Prepare the cable", "marks": 4},
			{"label": "b", "text": "Test continuity", "marks": 3}
		 ]}
	]`)

	questions, err := bank.Import(data)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("imported count = %d, want 2", len(questions))
	}
	if ok, _ := regexp.MatchString(`^import-[0-9a-f]+$`, questions[0].ID); !ok {
		t.Errorf("imported ID = %q, want import-<hex>", questions[0].ID)
	}
	if questions[1].Marks != 7 {
		t.Errorf("Marks = %d, want 7 synced from sub-questions", questions[1].Marks)
	}
}

func TestImport_RejectsBadTaxonomy(t *testing.T) {
	data := []byte(`[{"text": "Q", "marks": 2, "taxonomy": "X9", "type": "essay"}]`)

	_, err := bank.Import(data)
	if err == nil {
		t.Fatal("Import() should reject invalid taxonomy code")
	}
	if !strings.Contains(err.Error(), "import rejected") {
		t.Errorf("error = %v, want schema rejection", err)
	}
}

func TestImport_RejectsUnknownType(t *testing.T) {
	data := []byte(`[{"text": "Q", "marks": 2, "taxonomy": "C1", "type": "truefalse"}]`)

	if _, err := bank.Import(data); err == nil {
		t.Fatal("Import() should reject unknown question type")
	}
}

func TestImport_RejectsMissingRequired(t *testing.T) {
	data := []byte(`[{"marks": 2, "taxonomy": "C1", "type": "essay"}]`)

	if _, err := bank.Import(data); err == nil {
		t.Fatal("Import() should reject missing text")
	}
}

func TestImport_RejectsNonArray(t *testing.T) {
	data := []byte(`{"text": "Q", "marks": 2, "taxonomy": "C1", "type": "essay"}`)

	if _, err := bank.Import(data); err == nil {
		t.Fatal("Import() should reject a non-array document")
	}
}

func TestImport_AcceptsLegacyMQFCluster(t *testing.T) {
	data := []byte(`[{"text": "Q", "marks": 2, "taxonomy": "C1", "type": "essay", "mqfCluster": ["DK3"]}]`)

	questions, err := bank.Import(data)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(questions[0].MQFKeys) != 1 || questions[0].MQFKeys[0] != "DK3" {
		t.Errorf("MQFKeys = %v, want [DK3]", questions[0].MQFKeys)
	}
}
