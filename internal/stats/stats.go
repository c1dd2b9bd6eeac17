// Package stats contains rep metrics, aggregation and reporting.
package stats

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/verte-zerg/netset/internal/model"
)

// peakGlyphs runs from the lowest to the highest peak of a set.
const peakGlyphs = "_.:-=+*#%@"

// noPeak marks a rep whose peak could not be measured.
const noPeak = '?'

// PeakStrip renders one glyph per rep, in rep order, scaled between the
// lowest and highest measured peak. Reps without a peak render as '?'.
// When every measured peak is equal they all take the top glyph.
func PeakStrip(reps []model.RepReport) string {
	if len(reps) == 0 {
		return ""
	}
	peaks := make([]float64, 0, len(reps))
	for _, r := range reps {
		if p := r.Metrics.PeakHeightM; p != nil {
			peaks = append(peaks, *p)
		}
	}
	top := len(peakGlyphs) - 1
	var lo, span float64
	if len(peaks) > 0 {
		lo = floats.Min(peaks)
		span = floats.Max(peaks) - lo
	}

	var b strings.Builder
	for _, r := range reps {
		p := r.Metrics.PeakHeightM
		if p == nil {
			b.WriteByte(noPeak)
			continue
		}
		idx := top
		if span > 1e-9 {
			idx = int(math.Round((*p - lo) / span * float64(top)))
			idx = max(0, min(idx, top))
		}
		b.WriteByte(peakGlyphs[idx])
	}
	return b.String()
}
