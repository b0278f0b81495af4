package formatter

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_DrawsAndClears(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, "Reading workbook...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.SetMessage("Loading Projets...")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	assert.Contains(t, got, "Reading workbook...")
	assert.Contains(t, got, "Loading Projets...")
	assert.True(t, strings.HasSuffix(got, "\r\033[K"))
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, "x")
	s.Start()
	s.Stop()
	assert.NotPanics(t, s.Stop)
}

func TestSpinner_StopBeforeStart(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, "x")
	s.Stop()
	assert.Empty(t, out.String())
}
