package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/pagechunk/internal/doctree"
)

// wordRun produces n distinct words on one line.
func wordRun(prefix string, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return strings.Join(words, " ")
}

// wordLines produces lineCount lines of perLine distinct words each.
func wordLines(prefix string, lineCount, perLine int) string {
	lines := make([]string, lineCount)
	k := 0
	for i := range lines {
		words := make([]string, perLine)
		for j := range words {
			words[j] = fmt.Sprintf("%s%d", prefix, k)
			k++
		}
		lines[i] = strings.Join(words, " ")
	}
	return strings.Join(lines, "\n")
}

func TestChunkText_ContextPrecedesContent(t *testing.T) {
	text := "SECTION ONE\n    The benefit covers medical expenses incurred abroad during your trip."
	chunks := ChunkText(text, DefaultConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	body := chunks[0].Body
	ci := strings.Index(body, "[Context: SECTION ONE]")
	mi := strings.Index(body, "medical expenses")
	if ci < 0 || mi < 0 {
		t.Fatalf("missing context line or content:\n%s", body)
	}
	if ci > mi {
		t.Errorf("context line should precede content:\n%s", body)
	}
}

func TestChunkText_EmptyInput(t *testing.T) {
	if got := ChunkText("", DefaultConfig()); got != nil {
		t.Errorf("empty input: got %v", got)
	}
	if got := ChunkText("   \n\t\n", DefaultConfig()); got != nil {
		t.Errorf("whitespace input: got %v", got)
	}
}

func TestChunkTree_ForceSplitsOversizedNode(t *testing.T) {
	tree := doctree.New()
	tree.Add(doctree.Root, doctree.Node{Content: wordLines("w", 100, 20)})

	chunks := ChunkTree(tree, DefaultConfig())
	if len(chunks) < 2 {
		t.Fatalf("2000-word node should split into at least 2 chunks, got %d", len(chunks))
	}
	var rejoined []string
	for _, c := range chunks {
		if !c.Forced {
			t.Errorf("chunk %d should be marked forced", c.Number)
		}
		if n := CountTokens(c.Body); n > 1350 {
			t.Errorf("chunk %d exceeds budget: %d tokens", c.Number, n)
		}
		rejoined = append(rejoined, c.Body)
	}
	got := strings.Fields(strings.Join(rejoined, "\n"))
	want := strings.Fields(wordLines("w", 100, 20))
	if len(got) != len(want) {
		t.Fatalf("reassembly lost words: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("word %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChunkTree_ForcedChunksCarryContext(t *testing.T) {
	tree := doctree.New()
	h := tree.Add(doctree.Root, doctree.Node{Content: "LONG SECTION", SectionHeader: true})
	tree.Add(h, doctree.Node{Content: wordLines("x", 100, 20), Indent: 4})

	chunks := ChunkTree(tree, DefaultConfig())
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if !strings.HasPrefix(c.Body, "[Context: LONG SECTION]") {
			t.Errorf("chunk %d missing context head:\n%.80s", c.Number, c.Body)
		}
	}
}

func TestChunkTree_NumberingContiguous(t *testing.T) {
	tree := doctree.New()
	tree.Add(doctree.Root, doctree.Node{Content: wordRun("a", 10)})
	tree.Add(doctree.Root, doctree.Node{Content: wordLines("b", 100, 20)})
	tree.Add(doctree.Root, doctree.Node{Content: wordRun("c", 10)})

	chunks := ChunkTree(tree, Config{MaxTokens: 1350, OverlapTokens: 0})
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Number != i+1 {
			t.Errorf("chunk at index %d numbered %d", i, c.Number)
		}
	}
	if chunks[0].Forced || chunks[3].Forced {
		t.Error("packed chunks should not be marked forced")
	}
	if !chunks[1].Forced || !chunks[2].Forced {
		t.Error("split chunks should be marked forced")
	}
}

func TestChunkTree_OverlapSeedsNextChunk(t *testing.T) {
	tree := doctree.New()
	tree.Add(doctree.Root, doctree.Node{Content: wordRun("a", 100)})
	tree.Add(doctree.Root, doctree.Node{Content: wordRun("b", 100)})

	chunks := ChunkTree(tree, Config{MaxTokens: 150, OverlapTokens: 20})
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	tail := strings.Fields(chunks[0].Body)
	wantSeed := strings.Join(tail[len(tail)-20:], " ")
	if !strings.HasPrefix(chunks[1].Body, wantSeed) {
		t.Errorf("second chunk should open with the first chunk's tail:\nwant prefix %q\ngot %q", wantSeed, chunks[1].Body)
	}
}

func TestChunkTree_ContextNotRepeatedWithinChunk(t *testing.T) {
	tree := doctree.New()
	h := tree.Add(doctree.Root, doctree.Node{Content: "POLICY EXCLUSIONS", SectionHeader: true})
	tree.Add(h, doctree.Node{Content: "War and nuclear incidents are excluded entirely.", Indent: 4})
	tree.Add(h, doctree.Node{Content: "Losses from unattended baggage are also excluded.", Indent: 4})

	chunks := ChunkTree(tree, DefaultConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if n := strings.Count(chunks[0].Body, "[Context:"); n != 1 {
		t.Errorf("context line should appear once, got %d:\n%s", n, chunks[0].Body)
	}
}

func TestChunkTree_BudgetHolds(t *testing.T) {
	tree := doctree.New()
	for i := 0; i < 30; i++ {
		tree.Add(doctree.Root, doctree.Node{
			Content: wordRun(fmt.Sprintf("n%d_", i), 16) + " done.",
		})
	}
	chunks := ChunkTree(tree, Config{MaxTokens: 120, OverlapTokens: 30})
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if c.Forced {
			continue
		}
		if n := CountTokens(c.Body); n > 120 {
			t.Errorf("chunk %d over budget: %d tokens", c.Number, n)
		}
	}
}

func TestChunkTree_SkipsShortNodes(t *testing.T) {
	tree := doctree.New()
	tree.Add(doctree.Root, doctree.Node{Content: "too short"})
	tree.Add(doctree.Root, doctree.Node{Content: "exactly five words right here"})

	if got := ChunkTree(tree, DefaultConfig()); got != nil {
		t.Errorf("nodes at or under five words should not chunk: %v", got)
	}
}

func TestOverlapTail(t *testing.T) {
	if got := overlapTail("", 20); got != "" {
		t.Errorf("empty body: got %q", got)
	}
	if got := overlapTail("one two three", 20); got != "one two three" {
		t.Errorf("short body should come back whole: got %q", got)
	}
	got := overlapTail("one two three four. five six seven", 5)
	if got != "five six seven" {
		t.Errorf("tail should advance past the sentence mark: got %q", got)
	}
	got = overlapTail("one two three four five six seven", 3)
	if got != "five six seven" {
		t.Errorf("no sentence mark keeps the raw tail: got %q", got)
	}
}

func TestRender(t *testing.T) {
	out := Render([]Chunk{
		{Number: 1, Body: "first body"},
		{Number: 2, Body: "second body", Forced: true},
	})
	want := "=== CHUNK 1 ===\nfirst body\n\n=== CHUNK 2 ===\nsecond body"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
	if Render(nil) != "" {
		t.Error("no chunks should render empty")
	}
}

func TestCountTokens(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   \n\t", 0},
		{"one", 1},
		{"  one   two\nthree ", 3},
	}
	for _, c := range cases {
		if got := CountTokens(c.in); got != c.want {
			t.Errorf("CountTokens(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
