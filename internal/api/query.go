package api

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/suivi/internal/domain"
)

const dateLayout = "2006-01-02"

// selectionFromQuery reads status and owner (repeatable) plus from and to
// (YYYY-MM-DD).
func selectionFromQuery(q url.Values) (domain.FilterSelection, error) {
	sel := domain.FilterSelection{Statuses: q["status"], Owners: q["owner"]}
	var err error
	if sel.MinStart, err = dateParam(q, "from"); err != nil {
		return sel, err
	}
	if sel.MaxEnd, err = dateParam(q, "to"); err != nil {
		return sel, err
	}
	return sel, nil
}

func dateParam(q url.Values, name string) (*time.Time, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: expected YYYY-MM-DD, got %q", errBadRequest, name, v)
	}
	return &t, nil
}

// chartFromQuery reads kind, title and the x, y and y2 column lists. Each
// list may be repeated or comma-separated.
func chartFromQuery(q url.Values) (domain.ChartSpec, error) {
	return domain.ParseChartSpec(q.Get("title"), q.Get("kind"),
		columnsParam(q, "x"), columnsParam(q, "y"), columnsParam(q, "y2"))
}

func columnsParam(q url.Values, name string) []string {
	var out []string
	for _, v := range q[name] {
		for _, c := range strings.Split(v, ",") {
			// Inner double spaces are part of some header names.
			if c = strings.Trim(c, " \t"); c != "" {
				out = append(out, c)
			}
		}
	}
	return out
}
