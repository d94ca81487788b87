package blueprint

import (
	"strings"

	"github.com/poliexam/paperforge/internal/taxonomy"
)

// CellRef identifies one level cell of one row.
type CellRef struct {
	RowID string `json:"rowId"`
	Level string `json:"level"`
}

// DuplicateFlags finds question-number labels used more than once under the
// same task within a domain. Task names are compared trimmed and
// case-insensitively; labels on different tasks never collide. The result
// maps each offending cell to true. Purely advisory: callers highlight, they
// do not block.
func DuplicateFlags(rows []Row, d taxonomy.Domain) map[CellRef]bool {
	type key struct {
		task  string
		count string
	}

	cells := make(map[key][]CellRef)
	for _, r := range ByDomain(rows, d) {
		task := strings.ToUpper(strings.TrimSpace(r.Task))
		for level, cell := range r.Levels {
			count := strings.TrimSpace(cell.Count)
			if count == "" {
				continue
			}
			k := key{task: task, count: count}
			cells[k] = append(cells[k], CellRef{RowID: r.ID, Level: level})
		}
	}

	flags := make(map[CellRef]bool)
	for _, refs := range cells {
		if len(refs) < 2 {
			continue
		}
		for _, ref := range refs {
			flags[ref] = true
		}
	}
	return flags
}
