package utils

import (
	"strings"
)

// CountWords counts whitespace-delimited words in chapter content. This is
// the single word-count rule for the whole platform: every stored count, book
// aggregate and author stat derives from it.
func CountWords(content string) int {
	return len(strings.Fields(content))
}
