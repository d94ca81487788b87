package bank_test

import (
	"testing"

	"github.com/poliexam/paperforge/internal/bank"
)

func pickerBank() []bank.Question {
	return []bank.Question{
		{ID: "q1", Text: "Subnet a network", Topic: "T2", Taxonomy: "C3"},
		{ID: "q2", Text: "Define subnetting", Topic: "T1", Taxonomy: "C1"},
		{ID: "q3", Text: "Subnet mask calculation", Topic: "T1", Taxonomy: "C3"},
		{ID: "q4", Text: "Draw the topology", Topic: "T3", Taxonomy: "P2"},
	}
}

func TestRank_ScoreOrdering(t *testing.T) {
	ranked := bank.Rank(pickerBank(), bank.Criteria{Topic: "T1", Taxonomy: "C3"}, "")

	if len(ranked) != 4 {
		t.Fatalf("ranked count = %d, want 4 (criteria never exclude)", len(ranked))
	}
	// q3: topic+taxonomy = 3; q2: topic = 2; q1: taxonomy = 1; q4: 0.
	wantOrder := []string{"q3", "q2", "q1", "q4"}
	for i, want := range wantOrder {
		if ranked[i].Question.ID != want {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].Question.ID, want)
		}
	}
}

func TestRank_Recommended(t *testing.T) {
	ranked := bank.Rank(pickerBank(), bank.Criteria{Topic: "T1", Taxonomy: "C3"}, "")

	for _, r := range ranked {
		want := r.Question.ID == "q3"
		if r.Recommended != want {
			t.Errorf("%s recommended = %v, want %v", r.Question.ID, r.Recommended, want)
		}
	}
}

func TestRank_SearchFiltersTextOnly(t *testing.T) {
	ranked := bank.Rank(pickerBank(), bank.Criteria{Topic: "T3"}, "subnet")

	if len(ranked) != 3 {
		t.Fatalf("ranked count = %d, want 3 text matches", len(ranked))
	}
	for _, r := range ranked {
		if r.Question.ID == "q4" {
			t.Error("q4 should be filtered out by search, not kept for topic match")
		}
	}
}

func TestRank_StableWithoutCriteria(t *testing.T) {
	ranked := bank.Rank(pickerBank(), bank.Criteria{}, "")

	wantOrder := []string{"q1", "q2", "q3", "q4"}
	for i, want := range wantOrder {
		if ranked[i].Question.ID != want {
			t.Errorf("ranked[%d] = %s, want %s (stable order)", i, ranked[i].Question.ID, want)
		}
	}
}

func TestRank_SearchCaseInsensitive(t *testing.T) {
	ranked := bank.Rank(pickerBank(), bank.Criteria{}, "SUBNET MASK")

	if len(ranked) != 1 || ranked[0].Question.ID != "q3" {
		t.Errorf("ranked = %v, want only q3", ranked)
	}
}
