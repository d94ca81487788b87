// Package export renders blueprints and assessment papers as XLSX workbooks
// matching the institutional print layout.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/poliexam/paperforge/internal/blueprint"
	"github.com/poliexam/paperforge/internal/course"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

const blueprintSheet = "CIST"

// Blueprint renders one domain's specification table: merged row spans,
// per-level totals and percentage footer, and the item-type and level-name
// legend blocks.
func Blueprint(c course.Course, d taxonomy.Domain, cat *taxonomy.Catalog) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", blueprintSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	levels := taxonomy.Levels(d)
	rows := blueprint.ByDomain(c.Blueprint, d)
	spans := blueprint.Spans(c.Blueprint, d)

	// Column layout: Task | Topic | CLO | <levels> | Total | Construct | Item Types.
	colTask, colTopic, colCLO := 1, 2, 3
	colLevelStart := 4
	colTotal := colLevelStart + len(levels)
	colConstruct := colTotal + 1
	colItemTypes := colConstruct + 1

	title := fmt.Sprintf("JADUAL SPESIFIKASI ITEM — %s %s", c.Code, c.Name)
	if err := setCell(f, blueprintSheet, 1, 1, title); err != nil {
		return nil, err
	}
	if err := mergeCells(f, blueprintSheet, 1, 1, colItemTypes, 1); err != nil {
		return nil, err
	}

	headers := map[int]string{
		colTask:      "Task",
		colTopic:     "Topic",
		colCLO:       "CLO",
		colTotal:     "Total",
		colConstruct: "Construct",
		colItemTypes: "Item Types",
	}
	for col, text := range headers {
		if err := setCell(f, blueprintSheet, col, 2, text); err != nil {
			return nil, err
		}
	}
	for i, level := range levels {
		if err := setCell(f, blueprintSheet, colLevelStart+i, 2, level); err != nil {
			return nil, err
		}
	}

	firstDataRow := 3
	spanCols := map[blueprint.Column]int{
		blueprint.ColTask:      colTask,
		blueprint.ColTopic:     colTopic,
		blueprint.ColCLOs:      colCLO,
		blueprint.ColConstruct: colConstruct,
		blueprint.ColItemTypes: colItemTypes,
	}

	for i, row := range rows {
		xrow := firstDataRow + i

		values := map[blueprint.Column]string{
			blueprint.ColTask:      row.Task,
			blueprint.ColTopic:     row.TopicCode,
			blueprint.ColCLOs:      joinList(row.CLOs),
			blueprint.ColConstruct: row.Construct,
			blueprint.ColItemTypes: joinList(row.ItemTypes),
		}
		for col, xcol := range spanCols {
			span := spans[col][i]
			if span == 0 {
				continue // suppressed by the run above
			}
			if err := setCell(f, blueprintSheet, xcol, xrow, values[col]); err != nil {
				return nil, err
			}
			if span > 1 {
				if err := mergeCells(f, blueprintSheet, xcol, xrow, xcol, xrow+span-1); err != nil {
					return nil, err
				}
			}
		}

		for j, level := range levels {
			cell := row.Levels[level]
			if err := setCell(f, blueprintSheet, colLevelStart+j, xrow, levelCellText(cell)); err != nil {
				return nil, err
			}
		}
		if err := setCell(f, blueprintSheet, colTotal, xrow, row.TotalMark); err != nil {
			return nil, err
		}
	}

	// Totals and percentage footer.
	summary := blueprint.Totals(c.Blueprint, d)
	totalRow := firstDataRow + len(rows)
	percentRow := totalRow + 1
	if err := setCell(f, blueprintSheet, colTask, totalRow, "Jumlah"); err != nil {
		return nil, err
	}
	if err := setCell(f, blueprintSheet, colTask, percentRow, "Peratus"); err != nil {
		return nil, err
	}
	for i, lt := range summary.Levels {
		if err := setCell(f, blueprintSheet, colLevelStart+i, totalRow, lt.Marks); err != nil {
			return nil, err
		}
		if err := setCell(f, blueprintSheet, colLevelStart+i, percentRow, fmt.Sprintf("%d%%", lt.Percent)); err != nil {
			return nil, err
		}
	}
	if err := setCell(f, blueprintSheet, colTotal, totalRow, summary.GrandTotal); err != nil {
		return nil, err
	}

	if err := writeLegend(f, percentRow+2, levels, cat); err != nil {
		return nil, err
	}

	return f, nil
}

// writeLegend emits the item-type and taxonomy-level legend blocks under the
// table.
func writeLegend(f *excelize.File, startRow int, levels []string, cat *taxonomy.Catalog) error {
	row := startRow
	if err := setCell(f, blueprintSheet, 1, row, "Jenis Item:"); err != nil {
		return err
	}
	row++
	for _, it := range cat.ItemTypes() {
		if err := setCell(f, blueprintSheet, 1, row, fmt.Sprintf("%s — %s", it.Symbol, it.Name)); err != nil {
			return err
		}
		row++
	}

	row++
	if err := setCell(f, blueprintSheet, 1, row, "Tahap Taksonomi:"); err != nil {
		return err
	}
	row++
	for _, level := range levels {
		name, ok := cat.LevelName(level)
		if !ok {
			name = level
		}
		if err := setCell(f, blueprintSheet, 1, row, fmt.Sprintf("%s — %s", level, name)); err != nil {
			return err
		}
		row++
	}
	return nil
}

func levelCellText(cell blueprint.LevelCell) string {
	switch {
	case cell.Marks > 0 && cell.Count != "":
		return fmt.Sprintf("%s (%d)", cell.Count, cell.Marks)
	case cell.Marks > 0:
		return fmt.Sprintf("(%d)", cell.Marks)
	default:
		return cell.Count
	}
}

func joinList(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}

func mergeCells(f *excelize.File, sheet string, c1, r1, c2, r2 int) error {
	top, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, top, bottom); err != nil {
		return fmt.Errorf("merge %s:%s: %w", top, bottom, err)
	}
	return nil
}
