package blueprint

import (
	"math"

	"github.com/poliexam/paperforge/internal/taxonomy"
)

// LevelTotal is the footer summary for one taxonomy level.
type LevelTotal struct {
	Level   string `json:"level"`
	Marks   int    `json:"marks"`
	Percent int    `json:"percent"`
}

// Summary holds the totals footer of a domain's specification table.
type Summary struct {
	Levels     []LevelTotal `json:"levels"`
	GrandTotal int          `json:"grandTotal"`
}

// Totals sums marks per taxonomy level across the domain's rows. Percentages
// are rounded to the nearest integer; with a zero grand total every
// percentage is 0.
func Totals(rows []Row, d taxonomy.Domain) Summary {
	domainRows := ByDomain(rows, d)

	marks := make(map[string]int)
	grand := 0
	for _, r := range domainRows {
		for level, cell := range r.Levels {
			marks[level] += cell.Marks
			grand += cell.Marks
		}
	}

	summary := Summary{GrandTotal: grand}
	for _, level := range taxonomy.Levels(d) {
		t := LevelTotal{Level: level, Marks: marks[level]}
		if grand > 0 {
			t.Percent = int(math.Round(float64(marks[level]) * 100 / float64(grand)))
		}
		summary.Levels = append(summary.Levels, t)
	}
	return summary
}
