package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/pagechunk/internal/doctree"
)

// Config controls chunk packing.
type Config struct {
	MaxTokens     int // hard budget per chunk
	OverlapTokens int // trailing words duplicated at the head of the next chunk
}

// DefaultConfig returns the packing defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 1350, OverlapTokens: 150}
}

// Chunk is one packed output block.
type Chunk struct {
	Number int    // 1-based, gap-free across the whole document
	Body   string
	Forced bool // produced by force-splitting a node that alone exceeds the budget
}

const (
	// minContentWords excludes trivially short nodes from packing.
	minContentWords = 5
	// maxContextWords guards against pathological header chains.
	maxContextWords = 50
)

var sentenceMarkRE = regexp.MustCompile(`[.!?]+`)

// ChunkText cleans, parses, and packs plain text in one call. Empty or
// whitespace-only input produces zero chunks.
func ChunkText(text string, cfg Config) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return ChunkTree(doctree.Parse(doctree.Clean(text)), cfg)
}

// ChunkTree walks a structure tree depth-first and packs node content into
// token-bounded chunks. Each chunk carries a synthesized [Context: ...] line
// when its nodes' ancestor-header path is not already present in the chunk;
// closing a chunk carries a sentence-aligned tail of OverlapTokens words into
// the next one. A node that cannot fit a chunk even alone is force-split
// line by line, with its context line re-attached at the head of every
// sub-chunk. Numbering is continuous across packed and force-split chunks.
func ChunkTree(tree *doctree.Tree, cfg Config) []Chunk {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1350
	}
	if cfg.OverlapTokens < 0 {
		cfg.OverlapTokens = 150
	}

	var ids []doctree.NodeID
	tree.Walk(func(id doctree.NodeID, n *doctree.Node) {
		if CountTokens(n.Content) > minContentWords {
			ids = append(ids, id)
		}
	})
	if len(ids) == 0 {
		return nil
	}

	var chunks []Chunk
	var cur []string
	curTokens := 0

	for _, id := range ids {
		n := tree.Node(id)
		nodeTokens := CountTokens(n.Content)

		ctxHeader := strings.Join(tree.ContextPath(id), " > ")
		ctxLine := ""
		ctxTokens := 0
		if ctxHeader != "" && CountTokens(ctxHeader) < maxContextWords {
			ctxLine = "[Context: " + ctxHeader + "]"
			ctxTokens = CountTokens(ctxLine)
		}

		// Oversized: cannot fit any chunk even with nothing else in it.
		if nodeTokens+ctxTokens > cfg.MaxTokens {
			if len(cur) > 0 {
				chunks = append(chunks, Chunk{Number: len(chunks) + 1, Body: strings.Join(cur, "\n")})
				cur, curTokens = nil, 0
			}
			chunks = append(chunks, splitOversized(n.Content, ctxLine, cfg, len(chunks))...)
			continue
		}

		addCtx := ctxLine != "" && !strings.Contains(strings.Join(cur, "\n"), ctxHeader)
		need := nodeTokens
		if addCtx {
			need += ctxTokens
		}

		if curTokens+need > cfg.MaxTokens && len(cur) > 0 {
			body := strings.Join(cur, "\n")
			chunks = append(chunks, Chunk{Number: len(chunks) + 1, Body: body})
			cur, curTokens = nil, 0
			if cfg.OverlapTokens > 0 {
				if ov := overlapTail(body, cfg.OverlapTokens); ov != "" {
					cur = []string{ov}
					curTokens = CountTokens(ov)
				}
			}
			addCtx = ctxLine != "" && !strings.Contains(strings.Join(cur, "\n"), ctxHeader)
			need = nodeTokens
			if addCtx {
				need += ctxTokens
			}
			if curTokens+need > cfg.MaxTokens {
				// The overlap seed leaves no room for this node; drop it.
				cur, curTokens = nil, 0
				addCtx = ctxLine != ""
			}
		}

		if addCtx {
			cur = append(cur, ctxLine)
			curTokens += ctxTokens
		}
		cur = append(cur, n.Content)
		curTokens += nodeTokens
	}

	if len(cur) > 0 {
		chunks = append(chunks, Chunk{Number: len(chunks) + 1, Body: strings.Join(cur, "\n")})
	}
	return chunks
}

// splitOversized breaks one node's content at line granularity. A single
// line beyond the budget cannot be split further and is emitted as an
// unsplittable overflow chunk.
func splitOversized(content, ctxLine string, cfg Config, done int) []Chunk {
	var chunks []Chunk
	var cur []string
	curTokens := 0
	hasContent := false

	seed := func() {
		cur, curTokens, hasContent = nil, 0, false
		if ctxLine != "" {
			cur = []string{ctxLine}
			curTokens = CountTokens(ctxLine)
		}
	}
	seed()

	for _, line := range strings.Split(content, "\n") {
		lineTokens := CountTokens(line)
		if hasContent && curTokens+lineTokens > cfg.MaxTokens {
			chunks = append(chunks, Chunk{
				Number: done + len(chunks) + 1,
				Body:   strings.Join(cur, "\n"),
				Forced: true,
			})
			seed()
		}
		cur = append(cur, line)
		curTokens += lineTokens
		if strings.TrimSpace(line) != "" {
			hasContent = true
		}
	}
	if hasContent {
		chunks = append(chunks, Chunk{
			Number: done + len(chunks) + 1,
			Body:   strings.Join(cur, "\n"),
			Forced: true,
		})
	}
	return chunks
}

// overlapTail returns the last n words of body, advanced past the first
// sentence boundary inside that window when one exists. The result is always
// whole words.
func overlapTail(body string, n int) string {
	words := strings.Fields(body)
	if len(words) == 0 {
		return ""
	}
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	tail := strings.Join(words[len(words)-n:], " ")
	if loc := sentenceMarkRE.FindStringIndex(tail); loc != nil {
		if rest := strings.TrimSpace(tail[loc[1]:]); rest != "" {
			return rest
		}
	}
	return tail
}

// Render serializes chunks in the wire format consumed downstream: each
// block headed by a literal "=== CHUNK <n> ===" line, blocks separated by
// one blank line. This format is a contract surface; do not change it.
func Render(chunks []Chunk) string {
	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "=== CHUNK %d ===\n%s", c.Number, c.Body)
	}
	return b.String()
}
