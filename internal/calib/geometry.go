// Package calib derives net geometry from calibration clicks.
package calib

import (
	"errors"
	"math"

	"github.com/verte-zerg/netset/internal/model"
)

// DefaultNetHeightM is the men's beach volleyball net height.
const DefaultNetHeightM = 2.43

// ErrDegenerateCalibration is returned when the clicked corners cannot define a scale or tape line.
var ErrDegenerateCalibration = errors.New("degenerate calibration: top corners share an x coordinate or net has no height")

// Geometry is the pixel-to-metre mapping derived from the four corners.
type Geometry struct {
	PixelsPerMeter float64
	TopLine        model.Line
	NetHeightM     float64
}

// DeriveGeometry computes the scale and tape line from corners ordered
// left bottom, left top, right bottom, right top.
func DeriveGeometry(corners [model.CornerCount]model.Point, netHeightM float64) (Geometry, error) {
	if netHeightM <= 0 {
		netHeightM = DefaultNetHeightM
	}
	lb := corners[model.LeftBottom]
	lt := corners[model.LeftTop]
	rb := corners[model.RightBottom]
	rt := corners[model.RightTop]

	hLeft := math.Abs(lt.Y - lb.Y)
	hRight := math.Abs(rt.Y - rb.Y)
	hAvg := (hLeft + hRight) / 2
	dx := rt.X - lt.X
	if hAvg == 0 || dx == 0 {
		return Geometry{}, ErrDegenerateCalibration
	}

	slope := (rt.Y - lt.Y) / dx
	g := Geometry{
		PixelsPerMeter: hAvg / netHeightM,
		TopLine: model.Line{
			Slope:     slope,
			Intercept: lt.Y - slope*lt.X,
		},
		NetHeightM: netHeightM,
	}
	if !finite(g.PixelsPerMeter) || !finite(g.TopLine.Slope) || !finite(g.TopLine.Intercept) {
		return Geometry{}, ErrDegenerateCalibration
	}
	return g, nil
}

// MetersAboveNet returns the signed height of p above the tape line.
// Positive means above the tape. Returns false when g is nil.
func (g *Geometry) MetersAboveNet(p model.Point) (float64, bool) {
	if g == nil {
		return 0, false
	}
	yTape := g.TopLine.YAt(p.X)
	return (yTape - p.Y) / g.PixelsPerMeter, true
}

// MetersHorizontalDistance returns the screen-horizontal distance between two points.
// Depth and perspective are ignored.
func (g *Geometry) MetersHorizontalDistance(p1, p2 model.Point) (float64, bool) {
	if g == nil {
		return 0, false
	}
	return math.Abs(p2.X-p1.X) / g.PixelsPerMeter, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
