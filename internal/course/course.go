// Package course models the course registry: learning outcomes, topics,
// assessment policies, standards mappings, and the owned blueprint.
package course

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/poliexam/paperforge/internal/blueprint"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

// AssessmentPolicy defines one assessment task a course carries: its weight,
// duration, taxonomy ceiling, and the topics/CLOs rows of that task may link.
type AssessmentPolicy struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Weightage    int      `json:"weightage"` // percent
	Duration     string   `json:"duration"`
	MaxTaxonomy  string   `json:"maxTaxonomy"`
	LinkedTopics []string `json:"linkedTopics"`
	LinkedCLOs   []string `json:"linkedClos"`
}

// Course is the registry aggregate. It owns its blueprint and policies
// exclusively; bank questions are referenced, never owned.
type Course struct {
	ID           string              `json:"id"`
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	DepartmentID string              `json:"departmentId,omitempty"`
	ProgrammeID  string              `json:"programmeId,omitempty"`
	CLOs         map[string]string   `json:"clos"`
	MQFs         map[string]string   `json:"mqfs"`
	MQFMappings  map[string][]string `json:"mqfMappings"`
	Topics       []string            `json:"topics"`
	Policies     []AssessmentPolicy  `json:"assessmentPolicies"`
	Blueprint    []blueprint.Row     `json:"jsuTemplate"`
}

// NewPolicy creates a policy with a stable ID.
func NewPolicy(name string) AssessmentPolicy {
	b := make([]byte, 6)
	rand.Read(b)
	return AssessmentPolicy{
		ID:           fmt.Sprintf("pol-%x", b),
		Name:         name,
		LinkedTopics: []string{},
		LinkedCLOs:   []string{},
	}
}

// PolicyByName finds the assessment policy matching a blueprint row's task
// name, compared trimmed and case-insensitively.
func (c *Course) PolicyByName(name string) (AssessmentPolicy, bool) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for _, p := range c.Policies {
		if strings.ToUpper(strings.TrimSpace(p.Name)) == want {
			return p, true
		}
	}
	return AssessmentPolicy{}, false
}

// TopicCode returns the positional code for the n-th topic (1-based T{n}).
func TopicCode(n int) string {
	return fmt.Sprintf("T%d", n)
}

// Issue is one blueprint validation finding.
type Issue struct {
	RowID   string `json:"rowId,omitempty"`
	Message string `json:"message"`
}

// ValidateBlueprint checks the course's blueprint rows against the course's
// policies: task names must name a policy, linked CLOs and topics must stay
// inside the policy's allowed sets, and levels must belong to the row's
// domain. Findings are advisory except level-set violations, which the save
// path rejects.
func (c *Course) ValidateBlueprint() []Issue {
	var issues []Issue
	for _, row := range c.Blueprint {
		if row.Task == "" {
			continue
		}
		policy, ok := c.PolicyByName(row.Task)
		if !ok {
			issues = append(issues, Issue{RowID: row.ID, Message: fmt.Sprintf("task %q has no assessment policy", row.Task)})
			continue
		}
		if row.TopicCode != "" && !contains(policy.LinkedTopics, row.TopicCode) {
			issues = append(issues, Issue{RowID: row.ID, Message: fmt.Sprintf("topic %s is not linked to policy %q", row.TopicCode, policy.Name)})
		}
		for _, clo := range row.CLOs {
			if !contains(policy.LinkedCLOs, clo) {
				issues = append(issues, Issue{RowID: row.ID, Message: fmt.Sprintf("CLO %s is not linked to policy %q", clo, policy.Name)})
			}
		}
	}
	return issues
}

// CapMQFMappings trims every standards-mapping level list to the highest
// taxonomy any policy authorizes for its domain. Mappings never certify past
// the course's assessment ceiling. A domain no policy sets a ceiling for is
// left uncapped, so a course without policies keeps its mappings.
func (c *Course) CapMQFMappings() {
	ceilings := make(map[taxonomy.Domain]int)
	for _, p := range c.Policies {
		for _, d := range taxonomy.Domains() {
			for i, level := range taxonomy.Levels(d) {
				if level == p.MaxTaxonomy && i+1 > ceilings[d] {
					ceilings[d] = i + 1
				}
			}
		}
	}

	for attr, levels := range c.MQFMappings {
		var kept []string
		for _, level := range levels {
			for _, d := range taxonomy.Domains() {
				for i, code := range taxonomy.Levels(d) {
					if code != level {
						continue
					}
					ceiling, capped := ceilings[d]
					if !capped || i < ceiling {
						kept = append(kept, level)
					}
				}
			}
		}
		c.MQFMappings[attr] = kept
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
