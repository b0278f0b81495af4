package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"01-02-06",
}

// Normalize returns a copy of ds with numeric columns coerced to numbers
// and date columns coerced to dates. Cells that cannot be coerced become
// Missing. Normalizing twice yields the same dataset.
func Normalize(ds *domain.Dataset) *domain.Dataset {
	out := ds.Clone()

	var numeric, dates []int
	for _, c := range domain.NumericColumns() {
		if i := out.Index(c); i >= 0 {
			numeric = append(numeric, i)
		}
	}
	for _, c := range domain.DateColumns() {
		if i := out.Index(c); i >= 0 {
			dates = append(dates, i)
		}
	}

	for _, row := range out.Rows {
		for _, i := range numeric {
			row[i] = CoerceNumber(row[i])
		}
		for _, i := range dates {
			row[i] = CoerceDate(row[i])
		}
	}
	return out
}

// CoerceNumber converts a cell to a number, or Missing when it cannot.
func CoerceNumber(v domain.Value) domain.Value {
	switch v.Kind {
	case domain.ValueNumber:
		return domain.Number(v.Number)
	case domain.ValueText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return domain.Missing()
		}
		return domain.Number(f)
	default:
		return domain.Missing()
	}
}

// CoerceDate converts a cell to a date, or Missing when it cannot. Numbers
// are read as 1900-system Excel serials.
func CoerceDate(v domain.Value) domain.Value {
	switch v.Kind {
	case domain.ValueDate:
		return v
	case domain.ValueNumber:
		return serialDate(v.Number)
	case domain.ValueText:
		s := strings.TrimSpace(v.Text)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return serialDate(f)
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return domain.Date(t)
			}
		}
		return domain.Missing()
	default:
		return domain.Missing()
	}
}

func serialDate(f float64) domain.Value {
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return domain.Missing()
	}
	return domain.Date(t)
}
