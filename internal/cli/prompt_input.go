package cli

import (
	"fmt"
	"io"
	"strings"
)

// linePrompt asks for one line at a time on a reader that may be a raw
// terminal. Enter arrives as LF, CR or CRLF; a CRLF pair ends one line,
// not two.
type linePrompt struct {
	in     io.Reader
	out    io.Writer
	seenCR bool
}

func newLinePrompt(in io.Reader, out io.Writer) *linePrompt {
	return &linePrompt{in: in, out: out}
}

// ask prints message and returns the trimmed answer. A read error before
// any input yields "".
func (p *linePrompt) ask(message string) string {
	if p.out != nil {
		fmt.Fprint(p.out, message)
	}
	return strings.TrimSpace(p.readLine())
}

func (p *linePrompt) readLine() string {
	if p.in == nil {
		return ""
	}
	var line []byte
	var b [1]byte
	for {
		n, err := p.in.Read(b[:])
		if n == 1 {
			c := b[0]
			wasCR := p.seenCR
			p.seenCR = c == '\r'
			switch {
			case c == '\n' && wasCR && len(line) == 0:
				continue
			case c == '\n' || c == '\r':
				return string(line)
			}
			line = append(line, c)
		}
		if err != nil {
			return string(line)
		}
	}
}
