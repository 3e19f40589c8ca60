package extractor

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// asciiFold maps ligatures and typographic punctuation to ASCII and tabs to
// spaces. Built once at init; treated as immutable process-wide state.
var asciiFold = strings.NewReplacer(
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"‐", "-",
	"‑", "-",
	"‒", "-",
	"–", "-",
	"—", "-",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	" ", " ",
	"\t", " ",
)

var (
	digitsRE      = regexp.MustCompile(`\d+`)
	multiSpaceRE  = regexp.MustCompile(`\s+`)
	hyphenBreakRE = regexp.MustCompile(`([a-z])-\n([a-z])`)
	trailingWSRE  = regexp.MustCompile(`[ \t]+\n`)
	blankRunRE    = regexp.MustCompile(`\n{3,}`)
)

// Normalize folds ligatures and typographic punctuation to ASCII, replaces
// tabs with spaces, and trims surrounding whitespace. Idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = asciiFold.Replace(s)
	return strings.TrimSpace(s)
}

// boilerNormalize reduces a line to its recurrence identity for boilerplate
// detection: lowercased, digits stripped (page numbers, dates), spaces
// collapsed.
func boilerNormalize(s string) string {
	s = strings.ToLower(s)
	s = digitsRE.ReplaceAllString(s, "")
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(s, " "))
}

// dehyphenate joins hyphenated line breaks like "bene-\nfit" -> "benefit",
// strips trailing spaces before newlines, and collapses runs of blank lines
// down to a single blank line.
func dehyphenate(text string) string {
	text = hyphenBreakRE.ReplaceAllString(text, "$1$2")
	text = trailingWSRE.ReplaceAllString(text, "\n")
	return blankRunRE.ReplaceAllString(text, "\n\n")
}
