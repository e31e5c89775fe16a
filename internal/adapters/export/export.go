// Package export writes stored records as a spreadsheet.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/cvparse/internal/domain/model"
)

// ContentType is the media type of an .xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is the name of the worksheet holding the records.
const Sheet = "Resumes"

// Row is one exported record and the job it came from.
type Row struct {
	ID     string
	Record model.Record
}

// WriteXLSX writes rows to w: a header row with "id" and every field key, then
// one row per record.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(Sheet)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	fields := model.Fields()
	header := make([]string, 0, len(fields)+1)
	header = append(header, "id")
	for _, k := range fields {
		header = append(header, string(k))
	}
	for col, h := range header {
		if err := set(f, col+1, 1, h); err != nil {
			return err
		}
	}

	for i, r := range rows {
		row := i + 2
		if err := set(f, 1, row, r.ID); err != nil {
			return err
		}
		for j, k := range fields {
			if err := set(f, j+2, row, r.Record.Get(k)); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(Sheet, "A", "A", 38)
	_ = f.SetColWidth(Sheet, "B", "S", 28)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func set(f *excelize.File, col, row int, v string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(Sheet, cell, v)
}

// XLSX returns rows as workbook bytes.
func XLSX(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
