package extractor

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestLineFromRun_JoinsAdjacentRuns(t *testing.T) {
	row := []pdf.Text{
		{S: "Pol", X: 40, Y: 700, W: 15, FontSize: 10},
		{S: "icy", X: 55, Y: 700, W: 15, FontSize: 10},
	}
	ln, ok := lineFromRun(row, 792)
	if !ok {
		t.Fatal("expected a line")
	}
	if ln.Text != "Policy" {
		t.Errorf("adjacent runs should join without a space: got %q", ln.Text)
	}
	if ln.X0 != 40 || ln.X1 != 70 {
		t.Errorf("extent: got [%v, %v], want [40, 70]", ln.X0, ln.X1)
	}
}

func TestLineFromRun_InsertsSpaceAtGap(t *testing.T) {
	// Gap of 5 between the runs, above 0.3x the 10pt font size.
	row := []pdf.Text{
		{S: "Policy", X: 40, Y: 700, W: 30, FontSize: 10},
		{S: "Brochure", X: 75, Y: 700, W: 40, FontSize: 10},
	}
	ln, ok := lineFromRun(row, 792)
	if !ok {
		t.Fatal("expected a line")
	}
	if ln.Text != "Policy Brochure" {
		t.Errorf("gapped runs should join with a space: got %q", ln.Text)
	}
}

func TestLineFromRun_FlipsYToTopOrigin(t *testing.T) {
	row := []pdf.Text{{S: "x", X: 10, Y: 700, W: 5, FontSize: 10}}
	ln, ok := lineFromRun(row, 792)
	if !ok {
		t.Fatal("expected a line")
	}
	if ln.YMid != 92 {
		t.Errorf("YMid: got %v, want 92 (792 - 700)", ln.YMid)
	}
}

func TestLineFromRun_SortsByX(t *testing.T) {
	row := []pdf.Text{
		{S: "world", X: 100, Y: 700, W: 25, FontSize: 10},
		{S: "hello", X: 40, Y: 700, W: 25, FontSize: 10},
	}
	ln, ok := lineFromRun(row, 792)
	if !ok {
		t.Fatal("expected a line")
	}
	if ln.Text != "hello world" {
		t.Errorf("runs should order by X: got %q", ln.Text)
	}
}

func TestLineFromRun_Empty(t *testing.T) {
	if _, ok := lineFromRun(nil, 792); ok {
		t.Error("empty row should not produce a line")
	}
}
