package bank

import (
	"sort"
	"strings"
)

// Criteria are the blueprint slot's matching hints passed to the picker.
// They rank results; they never exclude a question.
type Criteria struct {
	Topic    string `json:"topic"`
	CLO      string `json:"clo"`
	Taxonomy string `json:"taxonomy"`
	Marks    int    `json:"marks"`
}

// Ranked is a picker result: the question plus its relevance score.
type Ranked struct {
	Question    Question `json:"question"`
	Score       int      `json:"score"`
	Recommended bool     `json:"recommended"`
}

// Rank filters questions by free-text search and orders them by slot
// relevance: topic match counts double, taxonomy match counts single, order
// is otherwise stable. A perfect topic+taxonomy match is marked recommended.
func Rank(questions []Question, c Criteria, search string) []Ranked {
	search = strings.ToLower(strings.TrimSpace(search))

	var out []Ranked
	for _, q := range questions {
		if search != "" && !strings.Contains(strings.ToLower(q.Text), search) {
			continue
		}

		topicMatch := c.Topic != "" && q.Topic == c.Topic
		taxonomyMatch := c.Taxonomy != "" && q.Taxonomy == c.Taxonomy

		score := 0
		if topicMatch {
			score += 2
		}
		if taxonomyMatch {
			score++
		}

		out = append(out, Ranked{
			Question:    q,
			Score:       score,
			Recommended: topicMatch && taxonomyMatch,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
