package utils

import (
	"strings"
)

// WordCount counts whitespace-separated words in a text
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SplitNonEmptyLines splits a text into trimmed, non-empty lines
func SplitNonEmptyLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// CountOutlineSections counts top-level sections in an outline.
// A section is any non-empty line that is not indented, i.e. not a
// bullet point belonging to the section above it.
func CountOutlineSections(outline string) int {
	count := 0
	for _, line := range strings.Split(outline, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			count++
		}
	}
	return count
}

// Truncate shortens a string to at most max runes, appending "..." when cut
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
