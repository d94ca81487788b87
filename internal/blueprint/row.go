// Package blueprint implements the coursework item specification table: the
// matrix of rows mapping assessment tasks to taxonomy-level mark
// distributions, plus the derived views (merge spans, duplicate flags,
// totals) the printed table needs.
package blueprint

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/poliexam/paperforge/internal/taxonomy"
)

// ErrRowNotFound is returned by row mutations keyed on an unknown ID.
var ErrRowNotFound = errors.New("row not found")

// LevelCell is one taxonomy-level cell of a row: the question-number label
// and the marks allocated at that level.
type LevelCell struct {
	Count string `json:"count"`
	Marks int    `json:"marks"`
}

// Row is one row of the specification table. A row belongs to exactly one
// domain; rows are partitioned into three independent tables by domain.
type Row struct {
	ID        string               `json:"id"`
	Task      string               `json:"task"`
	Domain    taxonomy.Domain      `json:"domain"`
	CLOs      []string             `json:"clos"`
	TopicCode string               `json:"topicCode"`
	Levels    map[string]LevelCell `json:"levels"`
	TotalMark int                  `json:"totalMark"`
	Construct string               `json:"construct"`
	ItemTypes []string             `json:"itemTypes"`
}

// rowAlias carries the legacy cognitiveLevels field name alongside the
// current one so older records normalize at decode time.
type rowAlias struct {
	ID              string               `json:"id"`
	Task            string               `json:"task"`
	Domain          taxonomy.Domain      `json:"domain"`
	CLOs            []string             `json:"clos"`
	TopicCode       string               `json:"topicCode"`
	Levels          map[string]LevelCell `json:"levels"`
	CognitiveLevels map[string]LevelCell `json:"cognitiveLevels"`
	TotalMark       int                  `json:"totalMark"`
	Construct       string               `json:"construct"`
	ItemTypes       []string             `json:"itemTypes"`
}

// UnmarshalJSON decodes a row, coalescing the legacy cognitiveLevels field
// into Levels. TotalMark is recomputed rather than trusted.
func (r *Row) UnmarshalJSON(data []byte) error {
	var alias rowAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	levels := alias.Levels
	if levels == nil {
		levels = alias.CognitiveLevels
	}
	if levels == nil {
		levels = map[string]LevelCell{}
	}
	domain := alias.Domain
	if domain == "" {
		domain = taxonomy.Cognitive
	}

	*r = Row{
		ID:        alias.ID,
		Task:      alias.Task,
		Domain:    domain,
		CLOs:      alias.CLOs,
		TopicCode: alias.TopicCode,
		Levels:    levels,
		Construct: alias.Construct,
		ItemTypes: alias.ItemTypes,
	}
	r.TotalMark = totalMark(r.Levels)
	return nil
}

// NewRow creates a row for the domain with every level zero-initialized and
// the topic defaulted by position.
func NewRow(d taxonomy.Domain, position int) Row {
	levels := make(map[string]LevelCell, len(taxonomy.Levels(d)))
	for _, l := range taxonomy.Levels(d) {
		levels[l] = LevelCell{}
	}
	return Row{
		ID:        newRowID(),
		Domain:    d,
		CLOs:      []string{},
		TopicCode: fmt.Sprintf("T%d", position+1),
		Levels:    levels,
		ItemTypes: []string{},
	}
}

// AddRow appends a fresh row for the domain. The default topic index counts
// only rows already in that domain.
func AddRow(rows []Row, d taxonomy.Domain) []Row {
	return append(rows, NewRow(d, len(ByDomain(rows, d))))
}

// Patch is a partial row update. Nil pointer fields are left untouched;
// slice and map fields replace when non-nil.
type Patch struct {
	Task      *string
	CLOs      []string
	TopicCode *string
	Levels    map[string]LevelCell
	Construct *string
	ItemTypes []string
}

// UpdateRow merges a patch into the row with the given ID. Changing the task
// resets TopicCode and CLOs, since the task decides which topics and CLOs
// are allowed. TotalMark is recomputed whenever levels change.
func UpdateRow(rows []Row, id string, p Patch) ([]Row, error) {
	for i := range rows {
		if rows[i].ID != id {
			continue
		}
		row := &rows[i]

		if p.Task != nil && *p.Task != row.Task {
			row.Task = *p.Task
			row.TopicCode = ""
			row.CLOs = []string{}
		}
		if p.CLOs != nil {
			row.CLOs = p.CLOs
		}
		if p.TopicCode != nil {
			row.TopicCode = *p.TopicCode
		}
		if p.Construct != nil {
			row.Construct = *p.Construct
		}
		if p.ItemTypes != nil {
			row.ItemTypes = p.ItemTypes
		}
		if p.Levels != nil {
			for level, cell := range p.Levels {
				row.Levels[level] = cell
			}
			row.TotalMark = totalMark(row.Levels)
		}
		return rows, nil
	}
	return rows, fmt.Errorf("%w: %s", ErrRowNotFound, id)
}

// RemoveRow deletes the row with the given ID. Removing an unknown ID is a
// no-op. The input slice is left untouched.
func RemoveRow(rows []Row, id string) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := r
	out.CLOs = append([]string(nil), r.CLOs...)
	out.ItemTypes = append([]string(nil), r.ItemTypes...)
	out.Levels = make(map[string]LevelCell, len(r.Levels))
	for level, cell := range r.Levels {
		out.Levels[level] = cell
	}
	return out
}

// CloneRows deep-copies a row list, so callers can mutate the copy while
// the original stays live elsewhere.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// Toggle flips membership of value in a set-valued field (CLOs, ItemTypes).
func Toggle(values []string, value string) []string {
	for i, v := range values {
		if v == value {
			return append(values[:i:i], values[i+1:]...)
		}
	}
	return append(values, value)
}

// ByDomain returns the rows belonging to a domain, preserving order.
func ByDomain(rows []Row, d taxonomy.Domain) []Row {
	var out []Row
	for _, r := range rows {
		if r.Domain == d {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks that every level key in every row belongs to its domain's
// fixed level set.
func Validate(rows []Row) error {
	for _, r := range rows {
		for level := range r.Levels {
			if !taxonomy.Valid(r.Domain, level) {
				return fmt.Errorf("row %s: level %s does not belong to domain %s", r.ID, level, r.Domain)
			}
		}
	}
	return nil
}

func totalMark(levels map[string]LevelCell) int {
	total := 0
	for _, cell := range levels {
		total += cell.Marks
	}
	return total
}

func newRowID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("row-%x", b)
}
