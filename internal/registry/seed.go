package registry

import (
	"context"
	"strings"

	"github.com/poliexam/paperforge/internal/bank"
	"github.com/poliexam/paperforge/internal/course"
	"github.com/poliexam/paperforge/internal/paper"
)

// seed loads the fixed initial data a fresh fallback store starts from, the
// same records a new installation would be provisioned with.
func seed(r *Registry) {
	ctx := context.Background()

	r.Branding.Save(ctx, Branding{
		ID:          "local-branding",
		Institution: "Politeknik Sultan Salahuddin Abdul Aziz Shah",
	})

	r.Departments.Save(ctx, Department{
		ID:   "dept-jtmk",
		Name: "Jabatan Teknologi Maklumat dan Komunikasi",
	})

	r.Sessions.Save(ctx, Session{
		ID:   "s-2025-2",
		Name: "Sesi II 2025/2026",
	})

	quiz := course.AssessmentPolicy{
		ID:           "pol-quiz",
		Name:         "QUIZ",
		Weightage:    10,
		Duration:     "30 minit",
		MaxTaxonomy:  "C3",
		LinkedTopics: []string{"T1", "T2"},
		LinkedCLOs:   []string{"CLO1"},
	}
	test := course.AssessmentPolicy{
		ID:           "pol-test",
		Name:         "TEST",
		Weightage:    20,
		Duration:     "1 jam",
		MaxTaxonomy:  "C4",
		LinkedTopics: []string{"T1", "T2", "T3"},
		LinkedCLOs:   []string{"CLO1", "CLO2"},
	}

	r.Courses.Save(ctx, course.Course{
		ID:           "local-sample",
		Code:         "DFC20203",
		Name:         "Computer Networks",
		DepartmentID: "dept-jtmk",
		CLOs: map[string]string{
			"CLO1": "Explain fundamental networking concepts",
			"CLO2": "Configure network devices according to requirements",
		},
		MQFs: map[string]string{
			"DK3": "Knowledge and understanding",
		},
		MQFMappings: map[string][]string{
			"DK3": {"C1", "C2", "C3"},
		},
		Topics:   []string{"Network Fundamentals", "Subnetting", "Routing"},
		Policies: []course.AssessmentPolicy{quiz, test},
	})

	r.Questions.Save(ctx, bank.Question{
		ID:       "custom-sample-1",
		CourseID: "local-sample",
		Text:     "Define a local area network and give one example.",
		Marks:    2,
		Topic:    "T1",
		Taxonomy: "C1",
		Type:     bank.TypeShortAnswer,
		Answer: strings.Join([]string{
			paper.AnnotateMarks("A network within a limited area", 1),
			paper.AnnotateMarks("Example: office LAN", 1),
		}, "\n"),
		CLOKeys: []string{"CLO1"},
	})
	r.Questions.Save(ctx, bank.Question{
		ID:       "custom-sample-2",
		CourseID: "local-sample",
		Text:     "Calculate the subnet mask for a /26 network.",
		Marks:    4,
		Topic:    "T2",
		Taxonomy: "C3",
		Type:     bank.TypeCalculation,
		Answer: strings.Join([]string{
			paper.AnnotateMarks("26 bits set", 1),
			paper.AnnotateMarks("255.255.255.192", 3),
		}, "\n"),
		CLOKeys: []string{"CLO1"},
	})
}
