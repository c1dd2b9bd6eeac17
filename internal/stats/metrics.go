// Package stats contains rep metrics, aggregation and reporting.
package stats

import (
	"math"

	"github.com/verte-zerg/netset/internal/calib"
	"github.com/verte-zerg/netset/internal/model"
)

// ComputeMetrics derives peak height, above-net offset, width and direction
// for a rep. Reps with fewer than two points yield empty metrics.
func ComputeMetrics(rep model.Rep, g *calib.Geometry) model.Metrics {
	var m model.Metrics
	if len(rep.Points) < 2 {
		return m
	}
	first := rep.Points[0]
	last := rep.Points[len(rep.Points)-1]

	found := false
	peakAbove := 0.0
	for _, p := range rep.Points {
		v, ok := g.MetersAboveNet(p.Pos())
		if !ok {
			continue
		}
		if !found || v > peakAbove {
			peakAbove = v
			found = true
		}
	}
	if found {
		peak := g.NetHeightM + peakAbove
		m.PeakHeightM = &peak
		if cm, ok := roundHalfUp(peakAbove * 100); ok {
			m.AboveNetCM = &cm
		}
	}

	if width, ok := g.MetersHorizontalDistance(first.Pos(), last.Pos()); ok {
		m.WidthM = &width
	}

	switch {
	case last.X > first.X:
		m.Direction = model.DirectionRight
	case last.X < first.X:
		m.Direction = model.DirectionLeft
	default:
		m.Direction = model.DirectionNone
	}
	return m
}

// roundHalfUp rounds half toward +Inf. It reports false when the result
// does not fit in an int.
func roundHalfUp(v float64) (int, bool) {
	r := math.Floor(v + 0.5)
	if math.IsNaN(r) || r < math.MinInt || r >= -float64(math.MinInt) {
		return 0, false
	}
	return int(r), true
}
