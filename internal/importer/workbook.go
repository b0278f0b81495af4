package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/xuri/excelize/v2"
)

var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is a fully read xlsx file: every sheet's cells are loaded up
// front so the file handle is released immediately.
type Workbook struct {
	Name   string
	Sheets []string

	cells map[string][][]string
	// date1904 records the workbook's date system for serial conversion.
	date1904 bool
}

// OpenWorkbook reads an xlsx file from disk.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWorkbook(f, filepath.Base(path))
}

// ReadWorkbook reads an xlsx stream. name labels the workbook in messages.
func ReadWorkbook(r io.Reader, name string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing workbook %q: %w", name, err)
	}
	defer f.Close()

	wb := &Workbook{
		Name:   name,
		Sheets: f.GetSheetList(),
		cells:  make(map[string][][]string),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}

	for _, sheet := range wb.Sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		wb.cells[sheet] = rows
	}
	return wb, nil
}

// HasSheet reports whether the workbook contains the named sheet.
func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.cells[name]
	return ok
}

// Sheet returns the raw dataset of a sheet: the first row is the header,
// blank rows are dropped, empty cells are Missing and every other cell is
// Text. Serial numbers in date columns are resolved with the workbook's
// date system; all other coercion is left to Normalize.
func (w *Workbook) Sheet(name string) (*domain.Dataset, error) {
	rows, ok := w.cells[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	if len(rows) == 0 {
		return domain.NewDataset(name, nil, nil), nil
	}

	headers := append([]string(nil), rows[0]...)
	dateCol := make([]bool, len(headers))
	for i, h := range headers {
		dateCol[i] = domain.Column(h).IsDate()
	}

	records := make([]domain.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		if blankRow(raw) {
			continue
		}
		row := make(domain.Row, len(headers))
		for i := 0; i < len(headers) && i < len(raw); i++ {
			row[i] = w.cell(raw[i], dateCol[i])
		}
		records = append(records, row)
	}
	return domain.NewDataset(name, headers, records), nil
}

func (w *Workbook) cell(raw string, isDate bool) domain.Value {
	if raw == "" {
		return domain.Missing()
	}
	if isDate {
		if serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, w.date1904); err == nil {
				return domain.Date(t)
			}
		}
	}
	return domain.Text(raw)
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// LoadSheet runs the ingestion pipeline for one sheet: read, validate the
// schema, then normalize. A schema failure stops before normalization.
func LoadSheet(w *Workbook, name string) (*domain.Dataset, error) {
	ds, err := w.Sheet(name)
	if err != nil {
		return nil, err
	}
	if err := Validate(ds); err != nil {
		return nil, err
	}
	return Normalize(ds), nil
}
