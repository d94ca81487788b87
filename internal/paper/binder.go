package paper

import "github.com/poliexam/paperforge/internal/bank"

// Bind copies a bank question into the paper under the slot's target number.
// An existing question with that number is replaced; otherwise the copy is
// appended. The copy is independent of the bank original. Nothing blocks a
// mismatched question: slot criteria are picker hints, not constraints.
// The question list is replaced, never edited in place, so a paper loaded
// from a store can be bound and discarded without the stored document
// changing.
func Bind(p *Paper, slot Slot, q bank.Question) {
	bound := q.Clone()
	bound.Number = slot.TargetNumber

	questions := make([]bank.Question, len(p.Questions))
	copy(questions, p.Questions)
	for i := range questions {
		if questions[i].Number == slot.TargetNumber {
			questions[i] = bound
			p.Questions = questions
			return
		}
	}
	p.Questions = append(questions, bound)
}

// Unbind removes the paper question carrying the slot's number, if any. Like
// Bind it leaves the previous question list untouched.
func Unbind(p *Paper, slot Slot) {
	for i := range p.Questions {
		if p.Questions[i].Number == slot.TargetNumber {
			questions := make([]bank.Question, 0, len(p.Questions)-1)
			questions = append(questions, p.Questions[:i]...)
			questions = append(questions, p.Questions[i+1:]...)
			p.Questions = questions
			return
		}
	}
}

// Readiness reports whether a paper covers its blueprint. Ready is decided
// by count equality alone (the historical rule); the per-slot breakdown is
// returned so callers can still render slots that have no matching number
// after a blueprint edit.
type Readiness struct {
	Ready   bool     `json:"ready"`
	Bound   []string `json:"bound"`
	Unbound []string `json:"unbound"`
}

// CheckReadiness computes the paper's completion state against the slot list.
func CheckReadiness(p *Paper, slots []Slot) Readiness {
	numbers := make(map[string]bool, len(p.Questions))
	for _, q := range p.Questions {
		numbers[q.Number] = true
	}

	r := Readiness{Ready: len(p.Questions) == len(slots)}
	for _, slot := range slots {
		if numbers[slot.TargetNumber] {
			r.Bound = append(r.Bound, slot.TargetNumber)
		} else {
			r.Unbound = append(r.Unbound, slot.TargetNumber)
		}
	}
	return r
}
