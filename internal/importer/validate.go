package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/suivi/internal/domain"
)

// MissingColumnsError reports every required header absent from a sheet.
type MissingColumnsError struct {
	Sheet   string
	Missing []domain.Column
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return fmt.Sprintf("missing columns: %s", strings.Join(names, ", "))
}

// MissingColumns returns the required columns absent from headers, in
// catalog order. Matching is exact.
func MissingColumns(headers []string) []domain.Column {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []domain.Column
	for _, c := range domain.RequiredColumns {
		if !present[string(c)] {
			missing = append(missing, c)
		}
	}
	return missing
}

// ValidateColumns checks a header row against the required schema.
func ValidateColumns(headers []string) error {
	if missing := MissingColumns(headers); len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}

// Validate checks a dataset's headers. Nothing downstream may run on a
// dataset that fails.
func Validate(ds *domain.Dataset) error {
	if missing := MissingColumns(ds.Headers); len(missing) > 0 {
		return &MissingColumnsError{Sheet: ds.Sheet, Missing: missing}
	}
	return nil
}
