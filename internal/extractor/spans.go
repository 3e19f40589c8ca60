package extractor

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// charRowTolerance is the vertical distance within which positioned
// characters are merged into the same line.
const charRowTolerance = 3.0

// spanStrategy is one way of pulling positioned text out of a page. The
// strategies are tried in order over the whole document; a strategy succeeds
// when it yields non-empty text on at least one page.
type spanStrategy struct {
	name    string
	collect func(p pdf.Page, pageHeight float64) []Line
}

var spanStrategies = []spanStrategy{
	{name: "chars", collect: collectFromChars},
	{name: "rows", collect: collectFromRows},
}

// pageHeight reads the MediaBox height, defaulting to US Letter when the
// entry is missing or malformed.
func pageHeight(p pdf.Page) (h float64) {
	h = 792
	defer func() { _ = recover() }()
	box := p.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return h
	}
	if v := box.Index(3).Float64() - box.Index(1).Float64(); v > 0 {
		h = v
	}
	return h
}

// collectFromChars builds Lines from the page's positioned character runs.
// The pdf library is known to panic on malformed font dictionaries, so the
// content call is fenced; a panic degrades this page only.
func collectFromChars(p pdf.Page, height float64) []Line {
	var texts []pdf.Text
	func() {
		defer func() { _ = recover() }()
		texts = p.Content().Text
	}()
	if len(texts) == 0 {
		return nil
	}

	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		runs = append(runs, t)
	}
	if len(runs) == 0 {
		return nil
	}

	// Top of page first; the library reports Y from the bottom.
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Y != runs[j].Y {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var lines []Line
	var row []pdf.Text
	rowY := runs[0].Y
	flush := func() {
		if ln, ok := lineFromRun(row, height); ok {
			lines = append(lines, ln)
		}
		row = row[:0]
	}
	for _, t := range runs {
		if len(row) > 0 && rowY-t.Y > charRowTolerance {
			flush()
			rowY = t.Y
		}
		row = append(row, t)
	}
	flush()
	return lines
}

// lineFromRun merges one row of character runs into a Line, inserting spaces
// where the horizontal gap between runs exceeds a fraction of the font size.
func lineFromRun(row []pdf.Text, height float64) (Line, bool) {
	if len(row) == 0 {
		return Line{}, false
	}
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var b strings.Builder
	var ySum, fsSum float64
	x0 := row[0].X
	x1 := row[0].X + row[0].W
	prevEnd := row[0].X
	for i, t := range row {
		if i > 0 {
			gap := t.X - prevEnd
			space := t.FontSize * 0.3
			if space < 1 {
				space = 1
			}
			if gap > space {
				b.WriteString(" ")
			}
		}
		b.WriteString(t.S)
		if end := t.X + t.W; end > x1 {
			x1 = end
		}
		prevEnd = t.X + t.W
		ySum += t.Y
		fsSum += t.FontSize
	}

	txt := Normalize(b.String())
	if txt == "" {
		return Line{}, false
	}
	n := float64(len(row))
	return Line{
		X0:       x0,
		YMid:     height - ySum/n,
		X1:       x1,
		Text:     txt,
		FontSize: fsSum / n,
	}, true
}

// collectFromRows is the coarser fallback: the library's own row grouping.
func collectFromRows(p pdf.Page, height float64) []Line {
	var rows pdf.Rows
	func() {
		defer func() { _ = recover() }()
		var err error
		rows, err = p.GetTextByRow()
		if err != nil {
			rows = nil
		}
	}()

	var lines []Line
	for _, row := range rows {
		if row == nil || len(row.Content) == 0 {
			continue
		}
		content := make([]pdf.Text, len(row.Content))
		copy(content, row.Content)
		if ln, ok := lineFromRun(content, height); ok {
			ln.YMid = height - float64(row.Position)
			lines = append(lines, ln)
		}
	}
	return lines
}
