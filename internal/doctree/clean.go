package doctree

import (
	"regexp"
	"strings"
)

var (
	trailingSpaceRE = regexp.MustCompile(`[ \t]+\n`)
	excessBlanksRE  = regexp.MustCompile(`\n{4,}`)
	bulletRE        = regexp.MustCompile(`^[\x{2022}\x{2014}\x{2013}*]\s*`)
)

const (
	// boilerMinLen keeps short recurring lines (list markers, single words)
	// out of the frequency-based boilerplate filter.
	boilerMinLen = 10
	// boilerFraction is the share of total lines above which a repeated line
	// is treated as boilerplate.
	boilerFraction = 0.05
)

// Clean prepares raw text for structure parsing. This is a text-only
// boilerplate pass, independent of the extractor's geometric one, because
// chunking also runs on text that never had page geometry: lines repeated
// more than max(2, 5% of line count) times and longer than 10 characters are
// dropped, bullet glyphs normalize to "- " with indentation preserved, and
// blank-line runs are capped at three.
func Clean(text string) string {
	lines := strings.Split(text, "\n")

	counts := make(map[string]int)
	for _, ln := range lines {
		if s := strings.TrimSpace(ln); s != "" {
			counts[s]++
		}
	}
	threshold := float64(len(lines)) * boilerFraction
	if threshold < 2 {
		threshold = 2
	}
	boiler := make(map[string]bool)
	for s, c := range counts {
		if float64(c) > threshold && len(s) > boilerMinLen {
			boiler[s] = true
		}
	}

	kept := make([]string, 0, len(lines))
	for _, ln := range lines {
		if !boiler[strings.TrimSpace(ln)] {
			kept = append(kept, ln)
		}
	}

	text = strings.Join(kept, "\n")
	text = trailingSpaceRE.ReplaceAllString(text, "\n")
	text = excessBlanksRE.ReplaceAllString(text, "\n\n\n")

	out := strings.Split(text, "\n")
	for i, ln := range out {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		indent := indentOf(ln)
		content := bulletRE.ReplaceAllString(ln[indent:], "- ")
		out[i] = strings.Repeat(" ", indent) + content
	}
	return strings.Join(out, "\n")
}

// indentOf counts leading whitespace characters.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
