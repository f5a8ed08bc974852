package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t"))
	assert.Equal(t, 3, WordCount("one two three"))
	assert.Equal(t, 3, WordCount("  one\ntwo\t three \n"))
}

func TestSplitNonEmptyLines(t *testing.T) {
	assert.Empty(t, SplitNonEmptyLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitNonEmptyLines("a\n\n  \nb\n"))
	assert.Equal(t, []string{"1. First", "2. Second"}, SplitNonEmptyLines("  1. First  \n2. Second"))
}

func TestCountOutlineSections(t *testing.T) {
	outline := "Introduction\n  - point\nMain Body\n\t- point\n\nConclusion"
	assert.Equal(t, 3, CountOutlineSections(outline))

	assert.Equal(t, 0, CountOutlineSections(""))
	assert.Equal(t, 1, CountOutlineSections("Only Section\n  - a\n  - b"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel...", Truncate("hello", 3))
	// Rune safe
	assert.Equal(t, "héllö", Truncate("héllö", 5))
	assert.Equal(t, "hé：...", Truncate("hé：llö", 3))
}
