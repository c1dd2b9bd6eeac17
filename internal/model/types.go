// Package model defines shared data structures.
package model

// Point is a pixel coordinate on a video frame. Y grows downward.
type Point struct {
	X float64
	Y float64
}

// RepPoint is a recorded click with its video timestamp in seconds.
type RepPoint struct {
	X float64
	Y float64
	T float64
}

// Pos returns the pixel position of the point.
func (p RepPoint) Pos() Point {
	return Point{X: p.X, Y: p.Y}
}

// Corner identifies one of the four net calibration clicks.
type Corner int

// Corners in the order they must be clicked.
const (
	LeftBottom Corner = iota
	LeftTop
	RightBottom
	RightTop
)

// CornerCount is the number of calibration corners.
const CornerCount = 4

func (c Corner) String() string {
	switch c {
	case LeftBottom:
		return "left bottom"
	case LeftTop:
		return "left top"
	case RightBottom:
		return "right bottom"
	case RightTop:
		return "right top"
	default:
		return "unknown"
	}
}

// Line is y = Slope*x + Intercept in pixel space.
type Line struct {
	Slope     float64
	Intercept float64
}

// YAt returns the line's y at x.
func (l Line) YAt(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Direction is the horizontal travel direction of a rep.
type Direction int

// Travel directions.
const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Arrow returns a compact marker for tables.
func (d Direction) Arrow() string {
	switch d {
	case DirectionLeft:
		return "<-"
	case DirectionRight:
		return "->"
	default:
		return "-"
	}
}

// Rep is one recorded attempt. Points are kept in click order.
type Rep struct {
	Points []RepPoint
	Color  string
}

// Clone returns a deep copy of the rep.
func (r Rep) Clone() Rep {
	out := Rep{Color: r.Color}
	if len(r.Points) > 0 {
		out.Points = make([]RepPoint, len(r.Points))
		copy(out.Points, r.Points)
	}
	return out
}

// Metrics holds per-rep measurements. Nil fields mean no data.
type Metrics struct {
	PeakHeightM *float64
	AboveNetCM  *int
	WidthM      *float64
	Direction   Direction
}

// RepReport pairs a rep with its derived metrics.
type RepReport struct {
	Index   int
	Color   string
	Points  int
	Metrics Metrics
}

// Summary aggregates metrics across reps. BestRep is -1 when no rep has a peak.
type Summary struct {
	BestRep       int
	BestPeakM     *float64
	AveragePeakM  *float64
	AverageWidthM *float64
}

// Report is the end-of-session output.
type Report struct {
	SessionID string
	Reps      []RepReport
	Summary   Summary
}
