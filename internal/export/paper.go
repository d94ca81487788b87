package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/poliexam/paperforge/internal/bank"
	"github.com/poliexam/paperforge/internal/paper"
)

const paperSheet = "Paper"

// Paper renders a printable assessment paper: header block, candidate
// information, instructions, numbered questions with sub-parts, and the
// three-column signature footer.
func Paper(p paper.Paper) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", paperSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	row := 1
	header := []string{
		p.Header.Institution,
		p.Header.Department,
		p.Header.Programme,
		fmt.Sprintf("%s %s", p.Header.CourseCode, p.Header.CourseName),
		fmt.Sprintf("%s — %s", p.Task, p.Header.Session),
	}
	if p.Header.Duration != "" {
		header = append(header, fmt.Sprintf("Duration: %s", p.Header.Duration))
	}
	if p.Header.Date != "" {
		header = append(header, fmt.Sprintf("Date: %s", p.Header.Date))
	}
	for _, line := range header {
		if line == "" {
			continue
		}
		if err := setCell(f, paperSheet, 1, row, line); err != nil {
			return nil, err
		}
		if err := mergeCells(f, paperSheet, 1, row, 4, row); err != nil {
			return nil, err
		}
		row++
	}
	row++

	row, err := writeLabelled(f, row, "MAKLUMAT PELAJAR (STUDENT INFORMATION)", p.StudentInfo, false)
	if err != nil {
		return nil, err
	}
	row, err = writeLabelled(f, row, "ARAHAN (INSTRUCTIONS)", p.Instructions, true)
	if err != nil {
		return nil, err
	}

	for _, q := range p.Questions {
		row, err = writeQuestion(f, row, q)
		if err != nil {
			return nil, err
		}
	}

	row++
	if err := writeFooter(f, row, p.Footer); err != nil {
		return nil, err
	}

	return f, nil
}

// writeLabelled emits a section heading followed by its lines, numbered when
// asked. Empty sections are skipped entirely.
func writeLabelled(f *excelize.File, row int, heading string, lines []string, numbered bool) (int, error) {
	if len(lines) == 0 {
		return row, nil
	}
	if err := setCell(f, paperSheet, 1, row, heading); err != nil {
		return row, err
	}
	row++
	for i, line := range lines {
		text := line
		if numbered {
			text = fmt.Sprintf("%d. %s", i+1, line)
		}
		if err := setCell(f, paperSheet, 1, row, text); err != nil {
			return row, err
		}
		row++
	}
	return row + 1, nil
}

func writeQuestion(f *excelize.File, row int, q bank.Question) (int, error) {
	number := q.Number
	if number == "" {
		number = "-"
	}
	if err := setCell(f, paperSheet, 1, row, number+"."); err != nil {
		return row, err
	}
	if err := setCell(f, paperSheet, 2, row, q.Text); err != nil {
		return row, err
	}
	if len(q.SubQuestions) == 0 {
		if err := setCell(f, paperSheet, 4, row, fmt.Sprintf("[%d]", q.Marks)); err != nil {
			return row, err
		}
	}
	row++

	if q.Media != nil && q.Media.Caption != "" {
		if err := setCell(f, paperSheet, 2, row, q.Media.Caption); err != nil {
			return row, err
		}
		row++
	}

	for _, sub := range q.SubQuestions {
		if err := setCell(f, paperSheet, 2, row, sub.Label); err != nil {
			return row, err
		}
		if err := setCell(f, paperSheet, 3, row, sub.Text); err != nil {
			return row, err
		}
		if err := setCell(f, paperSheet, 4, row, fmt.Sprintf("[%d]", sub.Marks)); err != nil {
			return row, err
		}
		row++
	}
	return row + 1, nil
}

// writeFooter lays the signatories side by side, one per column pair.
func writeFooter(f *excelize.File, row int, footer []paper.Signatory) error {
	for i, sig := range footer {
		col := 1 + i*2
		lines := []string{sig.Role, sig.Name, sig.Position, sig.Date}
		for j, line := range lines {
			if line == "" {
				continue
			}
			if err := setCell(f, paperSheet, col, row+j, line); err != nil {
				return err
			}
		}
	}
	return nil
}
