package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/spf13/pflag"
)

// chartFlag collects repeated --chart values. Each value is a list of
// key=value pairs separated by ';', for example
//
//	kind=bar;x=Responsable;y=Budget (Ariary);title=Budget par responsable
//
// x, y and y2 take comma-separated column names.
type chartFlag struct {
	specs []domain.ChartSpec
	raw   []string
}

var _ pflag.Value = (*chartFlag)(nil)

func (f *chartFlag) String() string { return strings.Join(f.raw, " ") }
func (f *chartFlag) Type() string   { return "chart" }

func (f *chartFlag) Set(value string) error {
	spec, err := parseChartFlag(value)
	if err != nil {
		return err
	}
	f.specs = append(f.specs, spec)
	f.raw = append(f.raw, value)
	return nil
}

func parseChartFlag(value string) (domain.ChartSpec, error) {
	var title, kind string
	var xs, ys, y2s []string
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return domain.ChartSpec{}, fmt.Errorf("chart option %q: expected key=value", part)
		}
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "kind", "type":
			kind = v
		case "title":
			title = v
		case "x":
			xs = splitColumns(v)
		case "y":
			ys = splitColumns(v)
		case "y2":
			y2s = splitColumns(v)
		default:
			return domain.ChartSpec{}, fmt.Errorf("unknown chart option %q", k)
		}
	}
	return domain.ParseChartSpec(title, kind, xs, ys, y2s)
}

// splitColumns splits a comma-separated list. Header names keep their
// inner spacing, which is significant.
func splitColumns(v string) []string {
	var out []string
	for _, c := range strings.Split(v, ",") {
		if c = strings.Trim(c, " \t"); c != "" {
			out = append(out, c)
		}
	}
	return out
}
