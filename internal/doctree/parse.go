package doctree

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	numberMarkerRE = regexp.MustCompile(`^(\d+(?:\.\d+)*\s*[.)]\s*)`)
	romanMarkerRE  = regexp.MustCompile(`(?i)^([ivxlcdm]+\s*[.)]\s*)`)
	alphaMarkerRE  = regexp.MustCompile(`(?i)^([a-z]\s*[.)]\s*)`)
	dashMarkerRE   = regexp.MustCompile(`^(-\s+)`)
	sentenceEndRE  = regexp.MustCompile(`[.?!]$`)
	anyPunctRE     = regexp.MustCompile(`[.?!]`)
)

const (
	maxHeaderWords     = 12
	maxTermHeaderWords = 10
	headerCaseRatio    = 0.7
)

// Parse builds a structure tree from plain text. Lines nest by indentation
// via a depth stack; section headers, term headers, list markers, and pipe
// tables are detected heuristically. Misclassification is not an error: the
// result is a good-enough tree, never a failure.
func Parse(text string) *Tree {
	tree := New()
	lines := strings.Split(text, "\n")
	stack := []NodeID{Root}

	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		indent := indentOf(line)

		// Pipe tables: greedily consume the whole run into one node.
		if isTableLine(line) {
			j := i
			for j < len(lines) && isTableLine(lines[j]) {
				j++
			}
			popTo(tree, &stack, indent)
			tree.Add(stack[len(stack)-1], Node{
				Content: strings.Join(lines[i:j], "\n"),
				Indent:  indent,
				Table:   true,
			})
			i = j
			continue
		}

		marker, _ := listMarker(line)

		nextIndent := 0
		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			nextIndent = indentOf(lines[i+1])
		}

		popTo(tree, &stack, indent)
		id := tree.Add(stack[len(stack)-1], Node{
			Content:       line,
			Indent:        indent,
			Marker:        marker,
			SectionHeader: isSectionHeader(line),
		})
		stack = append(stack, id)

		// A term header captures the deeper-indented run that follows it as
		// its single child.
		if isTermHeader(line, nextIndent, indent) {
			j := i + 1
			for j < len(lines) && indentOf(lines[j]) > indent {
				j++
			}
			if j > i+1 {
				tree.Add(id, Node{
					Content: strings.Join(lines[i+1:j], "\n"),
					Indent:  nextIndent,
				})
			}
			i = j
			continue
		}

		i++
	}
	return tree
}

// popTo unwinds the stack until the top frame's indentation is below indent.
func popTo(t *Tree, stack *[]NodeID, indent int) {
	s := *stack
	for len(s) > 1 && t.Node(s[len(s)-1]).Indent >= indent {
		s = s[:len(s)-1]
	}
	*stack = s
}

// listMarker splits a leading list/numbering marker (numeric, roman,
// alphabetic, dash) off a line.
func listMarker(line string) (marker, rest string) {
	stripped := strings.TrimLeft(line, " \t")
	for _, re := range []*regexp.Regexp{numberMarkerRE, romanMarkerRE, alphaMarkerRE, dashMarkerRE} {
		if m := re.FindString(stripped); m != "" {
			return m, stripped[len(m):]
		}
	}
	return "", stripped
}

// isSectionHeader reports whether a line looks like a section heading: at
// most 12 words, no terminal sentence punctuation, and at least 70% of words
// all-uppercase or title-case.
func isSectionHeader(line string) bool {
	stripped := strings.TrimSpace(line)
	words := strings.Fields(stripped)
	if len(words) == 0 || len(words) > maxHeaderWords {
		return false
	}
	if sentenceEndRE.MatchString(stripped) {
		return false
	}
	return caseRatio(words, isUpperWord) >= headerCaseRatio ||
		caseRatio(words, isTitleWord) >= headerCaseRatio
}

// isTermHeader is a tighter header shape whose following line is indented
// deeper: at most 10 words and no sentence punctuation anywhere.
func isTermHeader(line string, nextIndent, indent int) bool {
	words := strings.Fields(strings.TrimSpace(line))
	if len(words) == 0 || len(words) > maxTermHeaderWords {
		return false
	}
	if anyPunctRE.MatchString(line) {
		return false
	}
	if caseRatio(words, isUpperWord) < headerCaseRatio &&
		caseRatio(words, isTitleWord) < headerCaseRatio {
		return false
	}
	return nextIndent > indent
}

func isTableLine(line string) bool {
	return strings.Contains(strings.TrimSpace(line), "|")
}

func caseRatio(words []string, match func(string) bool) float64 {
	n := 0
	for _, w := range words {
		if match(w) {
			n++
		}
	}
	return float64(n) / float64(len(words))
}

// isUpperWord reports whether a word has at least one letter and no
// lowercase letters.
func isUpperWord(w string) bool {
	hasUpper := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// isTitleWord reports whether a word is title-cased: each letter run starts
// uppercase and continues lowercase.
func isTitleWord(w string) bool {
	hasLetter := false
	prevLetter := false
	for _, r := range w {
		if !unicode.IsLetter(r) {
			prevLetter = false
			continue
		}
		if !prevLetter && !unicode.IsUpper(r) {
			return false
		}
		if prevLetter && unicode.IsUpper(r) {
			return false
		}
		hasLetter = true
		prevLetter = true
	}
	return hasLetter
}
