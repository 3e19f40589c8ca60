package parser

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// TextParser passes plain text through mostly untouched: line endings are
// normalized and carriage returns dropped, but indentation is preserved —
// the structure parser depends on it.
type TextParser struct{}

func (p *TextParser) Parse(_ context.Context, r io.Reader, _ string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
