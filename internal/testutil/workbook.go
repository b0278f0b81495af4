package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SheetData is one sheet of a generated workbook; Rows[0] is the header.
type SheetData struct {
	Name string
	Rows [][]any
}

// ProjectSheet converts records into a sheet with the required headers.
// Dates are written as real Excel dates and Missing cells are left empty.
func ProjectSheet(name string, records ...Record) SheetData {
	header := make([]any, len(domain.RequiredColumns))
	for i, c := range domain.RequiredColumns {
		header[i] = string(c)
	}
	rows := [][]any{header}
	for _, rec := range records {
		row := make([]any, len(domain.RequiredColumns))
		for i, c := range domain.RequiredColumns {
			row[i] = cellValue(rec[c])
		}
		rows = append(rows, row)
	}
	return SheetData{Name: name, Rows: rows}
}

func cellValue(v domain.Value) any {
	switch v.Kind {
	case domain.ValueText:
		return v.Text
	case domain.ValueNumber:
		return v.Number
	case domain.ValueDate:
		return v.Date
	default:
		return nil
	}
}

// NewTestWorkbook builds an xlsx file in memory with the given sheets, in
// order. The default "Sheet1" is removed unless it is requested.
func NewTestWorkbook(t *testing.T, sheets ...SheetData) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	keepDefault := false
	for _, s := range sheets {
		if s.Name == "Sheet1" {
			keepDefault = true
			continue
		}
		if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("creating sheet %q: %v", s.Name, err)
		}
	}
	for _, s := range sheets {
		for i, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			r := row
			if err := f.SetSheetRow(s.Name, cell, &r); err != nil {
				t.Fatalf("writing row %d of %q: %v", i+1, s.Name, err)
			}
		}
	}
	if !keepDefault {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("deleting default sheet: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing workbook: %v", err)
	}
	return buf.Bytes()
}

// WriteTestWorkbook writes a generated workbook into a temp dir and returns
// its path.
func WriteTestWorkbook(t *testing.T, sheets ...SheetData) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projets.xlsx")
	if err := os.WriteFile(path, NewTestWorkbook(t, sheets...), 0o644); err != nil {
		t.Fatalf("writing workbook file: %v", err)
	}
	return path
}
