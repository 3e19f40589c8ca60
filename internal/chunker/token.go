package chunker

import "strings"

// CountTokens counts whitespace-delimited words. Budgets and overlap
// windows throughout this package are measured in these word tokens.
func CountTokens(text string) int {
	return len(strings.Fields(text))
}
