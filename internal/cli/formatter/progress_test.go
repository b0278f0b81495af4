package formatter

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		filled int
		label  string
	}{
		{"zero", 0, 0, "0%"},
		{"half", 50, 5, "50%"},
		{"full", 100, 10, "100%"},
		{"over 100 clamps bar", 150, 10, "150%"},
		{"negative clamps bar", -20, 0, "-20%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderProgress(tt.pct, 10))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, 10-tt.filled, strings.Count(got, emptyBlock))
			assert.Contains(t, got, tt.label)
		})
	}
}

func TestRenderProgress_Undefined(t *testing.T) {
	got := stripANSI(RenderProgress(math.NaN(), 4))
	assert.Contains(t, got, "--")
	assert.Equal(t, 0, strings.Count(got, filledBlock))
}
