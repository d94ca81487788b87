package blueprint

import (
	"strings"

	"github.com/poliexam/paperforge/internal/taxonomy"
)

// Column identifies a visually mergeable column of the specification table.
type Column string

const (
	ColTask      Column = "task"
	ColTopic     Column = "topicCode"
	ColCLOs      Column = "clos"
	ColConstruct Column = "construct"
	ColItemTypes Column = "itemTypes"
)

// Columns returns the mergeable columns in table order.
func Columns() []Column {
	return []Column{ColTask, ColTopic, ColCLOs, ColConstruct, ColItemTypes}
}

// Spans computes the vertical merge runs for each column over the domain's
// rows. Each column is scanned independently: consecutive rows with the same
// non-empty serialized value form one run; the first row of a run records the
// run length and every suppressed row records 0. Rows with an empty value
// never merge and record 1.
func Spans(rows []Row, d taxonomy.Domain) map[Column][]int {
	domainRows := ByDomain(rows, d)
	out := make(map[Column][]int, len(Columns()))

	for _, col := range Columns() {
		spans := make([]int, len(domainRows))
		for i := 0; i < len(domainRows); {
			value := cellValue(domainRows[i], col)
			if value == "" {
				spans[i] = 1
				i++
				continue
			}
			run := 1
			for i+run < len(domainRows) && cellValue(domainRows[i+run], col) == value {
				spans[i+run] = 0
				run++
			}
			spans[i] = run
			i += run
		}
		out[col] = spans
	}

	return out
}

// cellValue serializes a row's column for span comparison. Slice-valued
// columns compare joined in stored order: rows merge only when their
// serialized values are identical, so reordered lists render as separate
// cells.
func cellValue(r Row, col Column) string {
	switch col {
	case ColTask:
		return r.Task
	case ColTopic:
		return r.TopicCode
	case ColCLOs:
		return strings.Join(r.CLOs, "|")
	case ColConstruct:
		return r.Construct
	case ColItemTypes:
		return strings.Join(r.ItemTypes, "|")
	}
	return ""
}
