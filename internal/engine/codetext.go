package engine

import (
	"strings"

	"github.com/caseforge/caseforge/internal/state"
)

// Dedent strips the common leading whitespace of all non-blank lines and
// trims surrounding blank space, so fragments can be written as indented
// raw literals inside module source.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")
	margin := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin > 0 {
		for i, line := range lines {
			if len(line) >= margin {
				lines[i] = line[margin:]
			} else {
				lines[i] = strings.TrimLeft(line, " \t")
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Indent prefixes every non-blank line with level tabs.
func Indent(text string, level int) string {
	if level <= 0 {
		return text
	}
	prefix := strings.Repeat("\t", level)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// AutoFormat dedents a fragment, indents it to the generation pass's current
// level, and guarantees the trailing newline the module contract requires.
// Relative indentation inside the fragment is preserved.
func AutoFormat(text string, bag *state.Bag) string {
	level, _ := state.Value[int](bag, KeyIndent)
	return Indent(Dedent(text), level) + "\n"
}
