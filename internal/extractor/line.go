package extractor

// Line is one horizontal run of text on a page, as produced by span
// collection. Coordinates are in PDF points with Y measured from the top of
// the page, so a larger YMid means lower on the page. Lines are immutable
// once collected.
type Line struct {
	X0       float64 // left edge
	YMid     float64 // vertical midpoint
	X1       float64 // right edge
	Text     string  // normalized text
	FontSize float64 // average font size across the spans that formed the line
}

func (l Line) xMid() float64 {
	return (l.X0 + l.X1) / 2
}
