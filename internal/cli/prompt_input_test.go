package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinePrompt_Ask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lf", input: "admin\n", want: "admin"},
		{name: "cr", input: "admin\r", want: "admin"},
		{name: "trims spaces", input: "  user1 \n", want: "user1"},
		{name: "eof without newline", input: "2025", want: "2025"},
		{name: "empty", input: "", want: ""},
		{name: "first line only", input: "a\nb\n", want: "a"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			got := newLinePrompt(strings.NewReader(tc.input), &out).ask("Username: ")
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Username: ", out.String())
		})
	}
}

func TestLinePrompt_ConsecutiveAnswers(t *testing.T) {
	t.Parallel()

	for _, sep := range []string{"\n", "\r", "\r\n"} {
		p := newLinePrompt(strings.NewReader("user2"+sep+"2023"+sep), nil)
		assert.Equal(t, "user2", p.ask(""), "sep %q", sep)
		assert.Equal(t, "2023", p.ask(""), "sep %q", sep)
		assert.Equal(t, "", p.ask(""), "sep %q", sep)
	}
}

func TestLinePrompt_NilReader(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", newLinePrompt(nil, nil).ask("x"))
}
