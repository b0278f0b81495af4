package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/alexanderramin/suivi/internal/domain"
)

// BoxStats summarizes a distribution for a box plot. Quartiles use linear
// interpolation between closest ranks. Whiskers extend to the most
// extreme observations within 1.5 IQR of the box.
type BoxStats struct {
	N            int
	Min          float64
	Q1           float64
	Median       float64
	Q3           float64
	Max          float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// ComputeBoxStats returns the box statistics of values. An empty input
// yields a zero BoxStats with N == 0.
func ComputeBoxStats(values []float64) BoxStats {
	if len(values) == 0 {
		return BoxStats{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	b := BoxStats{
		N:      len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
	}
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr

	b.LowerWhisker, b.UpperWhisker = b.Max, b.Min
	for _, v := range sorted {
		if v < lo || v > hi {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.LowerWhisker = math.Min(b.LowerWhisker, v)
		b.UpperWhisker = math.Max(b.UpperWhisker, v)
	}
	return b
}

// Quantile returns the q-th quantile of sorted values using linear
// interpolation.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Bin is one histogram bucket.
type Bin struct {
	Label string
	// Lower and Upper bound numeric bins; both are zero for categorical bins.
	Lower float64
	Upper float64
	Count int
}

// maxNumericBins caps the number of equal-width bins for numeric X.
const maxNumericBins = 10

// Histogram counts rows with a present y value per x bin. Categorical x
// yields one bin per distinct label in order of first appearance; numeric
// x yields up to ten equal-width bins over the observed range.
func Histogram(ds *domain.Dataset, x, y domain.Column) []Bin {
	var xs []domain.Value
	for _, row := range ds.Rows {
		if row.Get(ds, y).IsMissing() {
			continue
		}
		xs = append(xs, row.Get(ds, x))
	}
	if len(xs) == 0 {
		return nil
	}
	if x.IsNumeric() {
		var nums []float64
		for _, v := range xs {
			if f, ok := v.Float(); ok && !math.IsInf(f, 0) && !math.IsNaN(f) {
				nums = append(nums, f)
			}
		}
		return numericBins(nums)
	}
	return categoricalBins(xs)
}

func categoricalBins(xs []domain.Value) []Bin {
	idx := make(map[string]int)
	var bins []Bin
	for _, v := range xs {
		l := v.Label()
		if i, ok := idx[l]; ok {
			bins[i].Count++
			continue
		}
		idx[l] = len(bins)
		bins = append(bins, Bin{Label: l, Count: 1})
	}
	return bins
}

func numericBins(nums []float64) []Bin {
	if len(nums) == 0 {
		return nil
	}
	lo, hi := nums[0], nums[0]
	for _, f := range nums {
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	if lo == hi {
		return []Bin{{Label: formatBound(lo), Lower: lo, Upper: hi, Count: len(nums)}}
	}

	n := maxNumericBins
	if len(nums) < n {
		n = len(nums)
	}
	// Halved so hi-lo stays finite across the whole float64 range.
	halfWidth := (hi/2 - lo/2) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lower = lo + 2*(float64(i)*halfWidth)
		bins[i].Upper = lo + 2*(float64(i+1)*halfWidth)
		bins[i].Label = fmt.Sprintf("%s–%s", formatBound(bins[i].Lower), formatBound(bins[i].Upper))
	}
	bins[0].Lower = lo
	bins[n-1].Upper = hi
	for _, f := range nums {
		bins[binIndex((f/2-lo/2)/halfWidth, n)].Count++
	}
	return bins
}

// binIndex clamps a fractional bin position into [0, n).
func binIndex(pos float64, n int) int {
	switch {
	case math.IsNaN(pos) || pos < 0:
		return 0
	case pos >= float64(n):
		return n - 1
	}
	return int(pos)
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
