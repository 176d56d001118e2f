package script

import (
	"fmt"
	"strings"
)

// lineBuffer accumulates generated script lines. Builders append to a
// buffer and return structured text; nothing in this package writes to
// an output stream.
type lineBuffer struct {
	lines []string
}

func (b *lineBuffer) add(line string) {
	b.lines = append(b.lines, line)
}

func (b *lineBuffer) addf(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *lineBuffer) extend(lines []string) {
	b.lines = append(b.lines, lines...)
}

func (b *lineBuffer) blank() {
	b.lines = append(b.lines, "")
}

func (b *lineBuffer) String() string {
	return strings.Join(b.lines, "\n") + "\n"
}
