package stats

import (
	"math"
	"testing"

	"github.com/verte-zerg/netset/internal/calib"
	"github.com/verte-zerg/netset/internal/model"
)

func beachGeometry(t *testing.T) *calib.Geometry {
	t.Helper()
	corners := [model.CornerCount]model.Point{
		{X: 100, Y: 400},
		{X: 100, Y: 100},
		{X: 700, Y: 420},
		{X: 700, Y: 120},
	}
	g, err := calib.DeriveGeometry(corners, calib.DefaultNetHeightM)
	if err != nil {
		t.Fatalf("derive geometry: %v", err)
	}
	return &g
}

func rep(points ...model.RepPoint) model.Rep {
	return model.Rep{Points: points, Color: "#FFFFFF"}
}

func TestComputeMetricsEndToEnd(t *testing.T) {
	g := beachGeometry(t)
	m := ComputeMetrics(rep(
		model.RepPoint{X: 400, Y: 50, T: 1.0},
		model.RepPoint{X: 500, Y: 300, T: 1.5},
	), g)
	if m.PeakHeightM == nil || math.Abs(*m.PeakHeightM-2.916) > 1e-3 {
		t.Fatalf("unexpected peak: %v", m.PeakHeightM)
	}
	if m.AboveNetCM == nil || *m.AboveNetCM != 49 {
		t.Fatalf("unexpected above net: %v", m.AboveNetCM)
	}
	if m.WidthM == nil || math.Abs(*m.WidthM-100/g.PixelsPerMeter) > 1e-9 {
		t.Fatalf("unexpected width: %v", m.WidthM)
	}
	if m.Direction != model.DirectionRight {
		t.Fatalf("expected right, got %v", m.Direction)
	}
}

func TestComputeMetricsInsufficientPoints(t *testing.T) {
	g := beachGeometry(t)
	for _, r := range []model.Rep{rep(), rep(model.RepPoint{X: 400, Y: 50})} {
		m := ComputeMetrics(r, g)
		if m.PeakHeightM != nil || m.AboveNetCM != nil || m.WidthM != nil {
			t.Fatalf("expected empty metrics for %d points: %+v", len(r.Points), m)
		}
		if m.Direction != model.DirectionNone {
			t.Fatalf("expected no direction, got %v", m.Direction)
		}
	}
}

func TestComputeMetricsWithoutGeometry(t *testing.T) {
	m := ComputeMetrics(rep(model.RepPoint{X: 10}, model.RepPoint{X: 5}), nil)
	if m.PeakHeightM != nil || m.AboveNetCM != nil || m.WidthM != nil {
		t.Fatalf("expected no measurements without geometry: %+v", m)
	}
	if m.Direction != model.DirectionLeft {
		t.Fatalf("expected left, got %v", m.Direction)
	}
}

func TestComputeMetricsDirection(t *testing.T) {
	g := beachGeometry(t)
	cases := []struct {
		lastX float64
		want  model.Direction
	}{
		{lastX: 300, want: model.DirectionNone},
		{lastX: 301, want: model.DirectionRight},
		{lastX: 299, want: model.DirectionLeft},
	}
	for _, tc := range cases {
		m := ComputeMetrics(rep(
			model.RepPoint{X: 300, Y: 200},
			model.RepPoint{X: 900, Y: 10},
			model.RepPoint{X: tc.lastX, Y: 250},
		), g)
		if m.Direction != tc.want {
			t.Fatalf("last x %v: expected %v, got %v", tc.lastX, tc.want, m.Direction)
		}
	}
}

func TestComputeMetricsWidthUsesEndpointsOnly(t *testing.T) {
	g := beachGeometry(t)
	m := ComputeMetrics(rep(
		model.RepPoint{X: 200, Y: 200},
		model.RepPoint{X: 900, Y: 10},
		model.RepPoint{X: 200, Y: 250},
	), g)
	if m.WidthM == nil || *m.WidthM != 0 {
		t.Fatalf("expected zero width, got %v", m.WidthM)
	}
}

func TestComputeMetricsBelowNet(t *testing.T) {
	g := beachGeometry(t)
	m := ComputeMetrics(rep(
		model.RepPoint{X: 400, Y: 300},
		model.RepPoint{X: 450, Y: 250},
	), g)
	if m.AboveNetCM == nil || *m.AboveNetCM >= 0 {
		t.Fatalf("expected negative above-net offset, got %v", m.AboveNetCM)
	}
	if m.PeakHeightM == nil || *m.PeakHeightM >= calib.DefaultNetHeightM {
		t.Fatalf("expected peak below net height, got %v", m.PeakHeightM)
	}
}

func TestComputeMetricsIsRepeatable(t *testing.T) {
	g := beachGeometry(t)
	r := rep(
		model.RepPoint{X: 150, Y: 260},
		model.RepPoint{X: 420, Y: 40},
		model.RepPoint{X: 610, Y: 90},
	)
	a := ComputeMetrics(r, g)
	b := ComputeMetrics(r, g)
	if *a.PeakHeightM != *b.PeakHeightM || *a.AboveNetCM != *b.AboveNetCM || *a.WidthM != *b.WidthM || a.Direction != b.Direction {
		t.Fatalf("metrics differ between calls: %+v vs %+v", a, b)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]int{48.6: 49, 0.5: 1, -0.5: 0, -0.6: -1, 12.4: 12}
	for in, want := range cases {
		if got, ok := roundHalfUp(in); !ok || got != want {
			t.Fatalf("round %v: expected %d, got %d (ok=%v)", in, want, got, ok)
		}
	}
	for _, in := range []float64{1e19, -1e19, 9.3e18, math.Inf(1), math.NaN()} {
		if _, ok := roundHalfUp(in); ok {
			t.Fatalf("round %v: expected out of range", in)
		}
	}
}

func TestComputeMetricsHugeOffsetLeavesCentimetersEmpty(t *testing.T) {
	g := beachGeometry(t)
	m := ComputeMetrics(rep(
		model.RepPoint{X: 400, Y: -1e20},
		model.RepPoint{X: 500, Y: 300},
	), g)
	if m.PeakHeightM == nil || *m.PeakHeightM <= 0 {
		t.Fatalf("expected a positive peak, got %v", m.PeakHeightM)
	}
	if m.AboveNetCM != nil {
		t.Fatalf("expected no centimetre value when it overflows, got %d", *m.AboveNetCM)
	}
}
