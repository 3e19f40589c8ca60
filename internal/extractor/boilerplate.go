package extractor

import "math"

// boilerKey identifies a candidate header/footer: the vertical band it sits
// in and its digit-stripped lowercased text.
type boilerKey struct {
	band int
	text string
}

func lineKey(l Line, bandPx int) boilerKey {
	return boilerKey{
		band: int(math.Round(l.YMid / float64(bandPx))),
		text: boilerNormalize(l.Text),
	}
}

// boilerplateMask finds lines that recur at the same vertical band across a
// high fraction of pages. Each key is counted at most once per page. A key is
// masked when its count reaches max(2, ceil(pages*threshold)).
func boilerplateMask(pages [][]Line, threshold float64, bandPx int) map[boilerKey]bool {
	counts := make(map[boilerKey]int)
	for _, lines := range pages {
		seen := make(map[boilerKey]bool)
		for _, l := range lines {
			key := lineKey(l, bandPx)
			if key.text == "" || seen[key] {
				continue
			}
			seen[key] = true
			counts[key]++
		}
	}

	minPages := int(math.Ceil(float64(len(pages)) * threshold))
	if minPages < 2 {
		minPages = 2
	}

	mask := make(map[boilerKey]bool)
	for key, c := range counts {
		if c >= minPages {
			mask[key] = true
		}
	}
	return mask
}
