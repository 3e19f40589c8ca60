package extractor

import (
	"math"
	"sort"
	"strings"
)

const (
	// minTableLines is the minimum number of lines a page region needs
	// before table detection is attempted.
	minTableLines = 6
	// minRowSpan is the horizontal spread (between leftmost and rightmost
	// cell starts) a row group must cover to qualify as a table row.
	minRowSpan = 70.0
	// minTableRows is the minimum number of consecutive qualifying rows
	// that form a table.
	minTableRows = 2
	// columnStartTolerance clusters cell left edges into column boundaries.
	columnStartTolerance = 10.0
	// denseMidpointLimit is the number of distinct x midpoints above which a
	// page is considered columnar/tabular enough for the layout tool.
	denseMidpointLimit = 25
)

// tableKeywords are cues that a page carries tabular benefit-style content
// even when geometric detection misses it.
var tableKeywords = []string{
	"Table of Benefits",
	"Sum Insured",
	"Domestic Cover",
	"International Cover",
	"Schedule of Benefits",
}

type tableRow struct {
	y     float64
	cells []Line // sorted by X0
}

// detectTables finds groups of lines whose row alignment and horizontal
// spread indicate tabular data, renders each group as a pipe-delimited grid,
// and returns the remaining lines for the normal paragraph path. A line
// belongs to exactly one of the two outputs.
func detectTables(lines []Line, yTol float64) (tables []string, remaining []Line) {
	if len(lines) < minTableLines {
		return nil, lines
	}

	groups := make(map[float64][]int)
	for i, l := range lines {
		yKey := math.Round(l.YMid/yTol) * yTol
		groups[yKey] = append(groups[yKey], i)
	}

	yKeys := make([]float64, 0, len(groups))
	for y := range groups {
		yKeys = append(yKeys, y)
	}
	sort.Float64s(yKeys)

	var rows []tableRow
	used := make(map[int]bool)
	for _, y := range yKeys {
		idxs := groups[y]
		if len(idxs) < 2 {
			continue
		}
		minX, maxX := lines[idxs[0]].X0, lines[idxs[0]].X0
		for _, i := range idxs[1:] {
			minX = math.Min(minX, lines[i].X0)
			maxX = math.Max(maxX, lines[i].X0)
		}
		if maxX-minX <= minRowSpan {
			continue
		}
		cells := make([]Line, 0, len(idxs))
		for _, i := range idxs {
			cells = append(cells, lines[i])
			used[i] = true
		}
		sort.SliceStable(cells, func(a, b int) bool { return cells[a].X0 < cells[b].X0 })
		rows = append(rows, tableRow{y: y, cells: cells})
	}

	for i, l := range lines {
		if !used[i] {
			remaining = append(remaining, l)
		}
	}

	// Merge consecutive rows into tables; a vertical gap beyond 4x the row
	// tolerance ends the current table.
	var run []tableRow
	flush := func() {
		if len(run) >= minTableRows {
			if grid := formatTableRows(run); grid != "" {
				tables = append(tables, grid)
			}
		}
		run = nil
	}
	for _, row := range rows {
		if len(run) > 0 && math.Abs(row.y-run[len(run)-1].y) > yTol*4 {
			flush()
		}
		run = append(run, row)
	}
	flush()

	return tables, remaining
}

// formatTableRows renders row groups as a fixed-column pipe grid. Column
// boundaries come from the union of all rows' cell left edges, clustered
// within columnStartTolerance; every row is padded to the full column count.
func formatTableRows(rows []tableRow) string {
	var starts []float64
	for _, row := range rows {
		for _, c := range row.cells {
			starts = append(starts, c.X0)
		}
	}
	sort.Float64s(starts)

	var colStarts []float64
	for _, x := range starts {
		if len(colStarts) == 0 || x-colStarts[len(colStarts)-1] > columnStartTolerance {
			colStarts = append(colStarts, x)
		}
	}
	if len(colStarts) < 2 {
		return ""
	}

	var out []string
	for _, row := range rows {
		cells := make([]string, len(colStarts))
		for _, c := range row.cells {
			col := nearestColumn(colStarts, c.X0)
			if cells[col] != "" {
				cells[col] += " " + c.Text
			} else {
				cells[col] = c.Text
			}
		}
		empty := true
		for _, cell := range cells {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		out = append(out, "| "+strings.Join(cells, " | ")+" |")
	}
	if len(out) < minTableRows {
		return ""
	}
	return strings.Join(out, "\n")
}

func nearestColumn(starts []float64, x float64) int {
	best := 0
	for i, s := range starts {
		if math.Abs(x-s) < math.Abs(x-starts[best]) {
			best = i
		}
	}
	return best
}

// looksTabularOrDense reports whether the lines spread over enough distinct
// horizontal positions to suggest columns or tables the paragraph path would
// mangle.
func looksTabularOrDense(lines []Line) bool {
	mids := make(map[float64]bool)
	for _, l := range lines {
		mids[math.Round(l.xMid()*10)/10] = true
	}
	return len(mids) > denseMidpointLimit
}

// hasTableKeywords peeks at the first few lines for known tabular cues.
func hasTableKeywords(lines []Line) bool {
	n := len(lines)
	if n > 4 {
		n = 4
	}
	var head []string
	for _, l := range lines[:n] {
		head = append(head, l.Text)
	}
	joined := strings.Join(head, " ")
	for _, k := range tableKeywords {
		if strings.Contains(joined, k) {
			return true
		}
	}
	return false
}
