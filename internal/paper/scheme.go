package paper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/poliexam/paperforge/internal/bank"
)

// markLine matches the trailing mark annotation an answer line may carry:
// "... (2 marks)" or "... (1 mark)". Parsing is a read-time projection; the
// answer text is never rewritten.
var markLine = regexp.MustCompile(`\((\d+)\s+marks?\)\s*$`)

// SchemeLine is one rendered line of the answer scheme with its parsed mark.
type SchemeLine struct {
	Text  string `json:"text"`
	Marks int    `json:"marks"`
}

// SubScheme is the answer scheme of one sub-question.
type SubScheme struct {
	Label string       `json:"label"`
	Lines []SchemeLine `json:"lines"`
	Total int          `json:"total"`
}

// Scheme is the derived answer scheme of one paper question.
type Scheme struct {
	Number string       `json:"number"`
	Lines  []SchemeLine `json:"lines"`
	Subs   []SubScheme  `json:"subs,omitempty"`
	Total  int          `json:"total"`
}

// AnnotateMarks appends a mark annotation to answer text, matching what the
// parser reads back.
func AnnotateMarks(text string, marks int) string {
	word := "marks"
	if marks == 1 {
		word = "mark"
	}
	return text + " (" + strconv.Itoa(marks) + " " + word + ")"
}

// ParseScheme derives a question's answer scheme from its mark-annotated
// answer text. MCQ totals are always 1. When no line parses to a nonzero
// mark, the stored marks value is the display total (graceful degradation,
// not an error).
func ParseScheme(q bank.Question) Scheme {
	scheme := Scheme{Number: q.Number}

	parsed := 0
	scheme.Lines, parsed = parseLines(q.Answer)
	total := parsed

	for _, sub := range q.SubQuestions {
		lines, subTotal := parseLines(sub.Answer)
		scheme.Subs = append(scheme.Subs, SubScheme{
			Label: sub.Label,
			Lines: lines,
			Total: subTotal,
		})
		total += subTotal
	}

	switch {
	case q.Type == bank.TypeMCQ:
		scheme.Total = 1
	case total > 0:
		scheme.Total = total
	default:
		scheme.Total = q.Marks
	}
	return scheme
}

// parseLines splits answer text into lines, reading the trailing mark
// annotation where present. Unannotated lines render with 0 marks.
func parseLines(answer string) ([]SchemeLine, int) {
	if strings.TrimSpace(answer) == "" {
		return nil, 0
	}

	var lines []SchemeLine
	total := 0
	for _, raw := range strings.Split(answer, "\n") {
		line := SchemeLine{Text: raw}
		if m := markLine.FindStringSubmatch(raw); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				line.Marks = n
				total += n
			}
		}
		lines = append(lines, line)
	}
	return lines, total
}
