package domain

import (
	"errors"
	"fmt"
	"strings"
)

type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartLine      ChartKind = "line"
	ChartPie       ChartKind = "pie"
	ChartScatter   ChartKind = "scatter"
	ChartHistogram ChartKind = "histogram"
	ChartBoxPlot   ChartKind = "box"
	ChartCombined  ChartKind = "combined"
)

// ChartKinds is the selector order shown to users.
var ChartKinds = []ChartKind{
	ChartBar, ChartLine, ChartPie, ChartScatter, ChartHistogram, ChartBoxPlot, ChartCombined,
}

var ErrUnknownChartKind = errors.New("unknown chart kind")

// chartKindAliases accepts English names and the French selector labels.
var chartKindAliases = map[string]ChartKind{
	"bar": ChartBar, "barres": ChartBar,
	"line": ChartLine, "lignes": ChartLine,
	"pie": ChartPie, "secteurs": ChartPie,
	"scatter": ChartScatter, "nuage de points": ChartScatter,
	"histogram": ChartHistogram, "histogramme": ChartHistogram,
	"box": ChartBoxPlot, "boxplot": ChartBoxPlot, "boîte à moustaches": ChartBoxPlot,
	"combined": ChartCombined, "combiné": ChartCombined,
}

var chartKindLabels = map[ChartKind]string{
	ChartBar:       "Bar",
	ChartLine:      "Line",
	ChartPie:       "Pie",
	ChartScatter:   "Scatter",
	ChartHistogram: "Histogram",
	ChartBoxPlot:   "Box plot",
	ChartCombined:  "Combined",
}

// ParseChartKind resolves a selector label, case-insensitively.
func ParseChartKind(s string) (ChartKind, error) {
	if k, ok := chartKindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownChartKind, s)
}

// Label returns the display name of the kind.
func (k ChartKind) Label() string {
	if l, ok := chartKindLabels[k]; ok {
		return l
	}
	return string(k)
}
