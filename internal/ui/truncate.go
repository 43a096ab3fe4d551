package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks a line cut by the width limit.
const Ellipsis = "→"

// Truncation limits how much routine output is printed. Zero fields are
// unlimited. With both Head and Tail set, the first Head and last Tail
// lines are kept and the middle is dropped.
type Truncation struct {
	Head  int
	Tail  int
	Width int
}

// Enabled reports whether any limit is set.
func (t Truncation) Enabled() bool {
	return t.Head > 0 || t.Tail > 0 || t.Width > 0
}

// Truncated is text after a Truncation was applied.
type Truncated struct {
	Content      string
	LinesOmitted int
	WidthCut     bool
}

// Apply cuts text to the configured limits. Line limits apply first,
// then each remaining line is cut to Width display cells, counting wide
// runes as two cells and leaving escape sequences intact.
func (t Truncation) Apply(text string) Truncated {
	if !t.Enabled() || text == "" {
		return Truncated{Content: text}
	}

	lines, omitted := headTail(splitLines(text), t.Head, t.Tail)
	cut := false
	if t.Width > 0 {
		for i, line := range lines {
			if ansi.StringWidth(line) > t.Width {
				lines[i] = ansi.Truncate(line, t.Width, Ellipsis)
				cut = true
			}
		}
	}
	return Truncated{
		Content:      strings.Join(lines, "\n"),
		LinesOmitted: omitted,
		WidthCut:     cut,
	}
}

func splitLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func headTail(lines []string, head, tail int) ([]string, int) {
	total := len(lines)
	switch {
	case head > 0 && tail > 0:
		if head+tail >= total {
			return lines, 0
		}
		kept := make([]string, 0, head+tail)
		kept = append(kept, lines[:head]...)
		kept = append(kept, lines[total-tail:]...)
		return kept, total - head - tail
	case head > 0:
		if head >= total {
			return lines, 0
		}
		return lines[:head], total - head
	case tail > 0:
		if tail >= total {
			return lines, 0
		}
		return lines[total-tail:], total - tail
	}
	return lines, 0
}
