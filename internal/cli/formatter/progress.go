package formatter

import (
	"fmt"
	"math"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45% from a
// percentage. Values outside 0..100 are clamped for the bar but printed
// as given. The bar is green above 66%, yellow from 33% and red below.
func RenderProgress(pct float64, width int) string {
	if math.IsNaN(pct) {
		return StyleDim.Render("[" + strings.Repeat(emptyBlock, max(width, 2)) + "]  --")
	}
	frac := min(max(pct/100, 0), 1)
	width = max(width, 2)

	filled := min(int(frac*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if frac < 0.33 {
		style = StyleRed
	} else if frac < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct)
}
