package doctree

import (
	"strings"
	"testing"
)

func TestParse_TermHeaderCapturesDefinition(t *testing.T) {
	text := strings.Join([]string{
		"SECTION ONE",
		"    You must be over 18 years of age",
		"    Cover applies worldwide during trips",
	}, "\n")
	tree := Parse(text)

	root := tree.Node(Root)
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(root.Children))
	}
	section := tree.Node(root.Children[0])
	if !section.SectionHeader {
		t.Errorf("%q should be a section header", section.Content)
	}
	if len(section.Children) != 1 {
		t.Fatalf("header should capture 1 definition node, got %d", len(section.Children))
	}
	def := tree.Node(section.Children[0])
	if !strings.Contains(def.Content, "over 18") || !strings.Contains(def.Content, "worldwide") {
		t.Errorf("definition run incomplete: %q", def.Content)
	}
	if def.Indent != 4 {
		t.Errorf("definition indent: got %d, want 4", def.Indent)
	}

	path := tree.ContextPath(section.Children[0])
	if len(path) != 1 || path[0] != "SECTION ONE" {
		t.Fatalf("context path: got %v, want [SECTION ONE]", path)
	}
}

func TestParse_IndentedLinesNestUnderSentence(t *testing.T) {
	text := strings.Join([]string{
		"Coverage includes the following benefits.",
		"    Medical expenses are covered in full.",
		"    Baggage loss is covered up to the limit.",
	}, "\n")
	tree := Parse(text)

	root := tree.Node(Root)
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(root.Children))
	}
	parent := tree.Node(root.Children[0])
	if parent.SectionHeader {
		t.Errorf("sentence should not be a section header: %q", parent.Content)
	}
	if len(parent.Children) != 2 {
		t.Fatalf("expected 2 indented children, got %d", len(parent.Children))
	}
	for _, id := range parent.Children {
		if tree.Node(id).Indent != 4 {
			t.Errorf("child indent: got %d, want 4", tree.Node(id).Indent)
		}
	}
}

func TestParse_SameIndentMakesSiblings(t *testing.T) {
	tree := Parse("First paragraph goes here.\nSecond paragraph goes here.\nThird paragraph goes here.")
	if got := len(tree.Node(Root).Children); got != 3 {
		t.Fatalf("expected 3 siblings under root, got %d", got)
	}
	for _, id := range tree.Node(Root).Children {
		if tree.Node(id).Parent != Root {
			t.Errorf("node %d should hang off the root", id)
		}
	}
}

func TestParse_TableRunBecomesOneNode(t *testing.T) {
	text := strings.Join([]string{
		"Benefits summary follows.",
		"| Benefit | Limit |",
		"| Medical | 50000 |",
		"| Baggage | 1000 |",
		"Terms apply as stated.",
	}, "\n")
	tree := Parse(text)

	var tables []*Node
	tree.Walk(func(id NodeID, n *Node) {
		if n.Table {
			tables = append(tables, n)
		}
	})
	if len(tables) != 1 {
		t.Fatalf("expected 1 table node, got %d", len(tables))
	}
	if strings.Count(tables[0].Content, "\n") != 2 {
		t.Errorf("table should hold all 3 rows: %q", tables[0].Content)
	}
}

func TestListMarker(t *testing.T) {
	cases := []struct {
		in, marker, rest string
	}{
		{"1. First item", "1. ", "First item"},
		{"2.1) Sub item", "2.1) ", "Sub item"},
		{"iv. Roman item", "iv. ", "Roman item"},
		{"a) Alpha item", "a) ", "Alpha item"},
		{"- Dash item", "- ", "Dash item"},
		{"Plain sentence here.", "", "Plain sentence here."},
	}
	for _, c := range cases {
		marker, rest := listMarker(c.in)
		if marker != c.marker || rest != c.rest {
			t.Errorf("listMarker(%q) = (%q, %q), want (%q, %q)", c.in, marker, rest, c.marker, c.rest)
		}
	}
}

func TestIsSectionHeader(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"GENERAL EXCLUSIONS", true},
		{"Schedule Of Benefits", true},
		{"This sentence describes the policy in detail.", false},
		{"WHAT IS COVERED?", false}, // terminal punctuation
		{"", false},
	}
	for _, c := range cases {
		if got := isSectionHeader(c.in); got != c.want {
			t.Errorf("isSectionHeader(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsTermHeader_RequiresDeeperNext(t *testing.T) {
	if isTermHeader("Waiting Period", 0, 0) {
		t.Error("term header needs a deeper-indented follower")
	}
	if !isTermHeader("Waiting Period", 4, 0) {
		t.Error("title-cased line with deeper follower should be a term header")
	}
	if isTermHeader("Waiting Period.", 4, 0) {
		t.Error("sentence punctuation disqualifies a term header")
	}
}

func TestTree_AddAndSubtreeText(t *testing.T) {
	tree := New()
	a := tree.Add(Root, Node{Content: "CHAPTER", Indent: 0, SectionHeader: true})
	b := tree.Add(a, Node{Content: "  detail line", Indent: 2})
	tree.Add(b, Node{Content: "    deeper line", Indent: 4})

	got := tree.SubtreeText(a)
	want := "CHAPTER\n  detail line\n    deeper line"
	if got != want {
		t.Errorf("SubtreeText: got %q, want %q", got, want)
	}
	if tree.Len() != 4 {
		t.Errorf("Len: got %d, want 4", tree.Len())
	}
}
