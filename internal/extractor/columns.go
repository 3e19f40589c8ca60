package extractor

import (
	"math"
	"sort"
	"strings"
)

const (
	// columnBucketWidth is the x-histogram bin width used for peak picking.
	columnBucketWidth = 40.0
	// minLinesForColumns is the page size below which column clustering is
	// statistically unreliable and a plain positional sort is used instead.
	minLinesForColumns = 10
	// maxColumns caps peak selection; layouts beyond three columns are not
	// handled.
	maxColumns = 3
)

// orderByColumns puts a page's lines into reading order: up to three column
// peaks are picked from an x-midpoint histogram, each line is assigned to its
// nearest peak, and columns are concatenated left to right with a (vertical,
// horizontal) sort inside each.
func orderByColumns(lines []Line) []Line {
	ordered := make([]Line, len(lines))
	copy(ordered, lines)
	if len(ordered) < minLinesForColumns {
		sortByPosition(ordered)
		return ordered
	}

	buckets := make(map[int]int)
	for _, l := range ordered {
		buckets[bucketOf(l.xMid())]++
	}
	peaks := topBuckets(buckets, maxColumns)

	cols := make([][]Line, len(peaks))
	for _, l := range ordered {
		idx := nearestPeak(peaks, bucketOf(l.xMid()))
		cols[idx] = append(cols[idx], l)
	}

	ordered = ordered[:0]
	for _, col := range cols {
		sortByPosition(col)
		ordered = append(ordered, col...)
	}
	return ordered
}

func bucketOf(x float64) int {
	return int(math.Round(x / columnBucketWidth))
}

// topBuckets returns the n most frequent histogram bins, left to right. Ties
// break toward the leftmost bin so ordering is deterministic.
func topBuckets(buckets map[int]int, n int) []int {
	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if buckets[keys[i]] != buckets[keys[j]] {
			return buckets[keys[i]] > buckets[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	sort.Ints(keys)
	return keys
}

func nearestPeak(peaks []int, bucket int) int {
	best := 0
	for i, p := range peaks {
		if abs(bucket-p) < abs(bucket-peaks[best]) {
			best = i
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sortByPosition(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].YMid != lines[j].YMid {
			return lines[i].YMid < lines[j].YMid
		}
		return lines[i].X0 < lines[j].X0
	})
}

// linesToParagraphs joins consecutive lines into paragraphs, starting a new
// paragraph whenever the vertical jump between lines exceeds yGap.
func linesToParagraphs(ordered []Line, yGap float64) []string {
	var paras []string
	var buf []string
	lastY := math.NaN()

	flush := func() {
		if p := strings.TrimSpace(strings.Join(buf, " ")); p != "" {
			paras = append(paras, p)
		}
		buf = buf[:0]
	}

	for _, l := range ordered {
		if !math.IsNaN(lastY) && math.Abs(l.YMid-lastY) > yGap && len(buf) > 0 {
			flush()
		}
		buf = append(buf, l.Text)
		lastY = l.YMid
	}
	flush()
	return paras
}
