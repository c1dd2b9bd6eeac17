package calib

import (
	"errors"
	"math"
	"testing"

	"github.com/verte-zerg/netset/internal/model"
)

func beachCorners() []model.Point {
	return []model.Point{
		{X: 100, Y: 400},
		{X: 100, Y: 100},
		{X: 700, Y: 420},
		{X: 700, Y: 120},
	}
}

func calibrated(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine(DefaultNetHeightM)
	for _, p := range beachCorners() {
		if _, err := m.Submit(p); err != nil {
			t.Fatalf("submit %v: %v", p, err)
		}
	}
	return m
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMachineAdvancesInOrder(t *testing.T) {
	m := NewMachine(0)
	want := []State{AwaitingLeftTop, AwaitingRightBottom, AwaitingRightTop, Complete}
	for i, p := range beachCorners() {
		if m.Geometry() != nil {
			t.Fatalf("geometry available before completion at step %d", i)
		}
		st, err := m.Submit(p)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if st != want[i] {
			t.Fatalf("step %d: expected %v, got %v", i, want[i], st)
		}
	}
	if m.Geometry() == nil {
		t.Fatalf("expected geometry after four corners")
	}
	if got := len(m.Corners()); got != 4 {
		t.Fatalf("expected 4 corners, got %d", got)
	}
}

func TestMachineIgnoresClicksAfterComplete(t *testing.T) {
	m := calibrated(t)
	before := *m.Geometry()
	st, err := m.Submit(model.Point{X: 1, Y: 1})
	if err != nil || st != Complete {
		t.Fatalf("expected no-op, got %v %v", st, err)
	}
	if *m.Geometry() != before {
		t.Fatalf("geometry changed after extra click")
	}
	if m.Corners()[0] != (model.Point{X: 100, Y: 400}) {
		t.Fatalf("corner overwritten: %v", m.Corners()[0])
	}
}

func TestMachineReset(t *testing.T) {
	m := calibrated(t)
	m.Reset()
	if m.State() != AwaitingLeftBottom {
		t.Fatalf("expected awaiting left bottom, got %v", m.State())
	}
	if m.Geometry() != nil {
		t.Fatalf("expected geometry cleared")
	}
	if len(m.Corners()) != 0 {
		t.Fatalf("expected corners cleared")
	}
}

func TestDegenerateCalibrationRejectsFourthClick(t *testing.T) {
	m := NewMachine(DefaultNetHeightM)
	for _, p := range beachCorners()[:3] {
		if _, err := m.Submit(p); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	st, err := m.Submit(model.Point{X: 100, Y: 120})
	if !errors.Is(err, ErrDegenerateCalibration) {
		t.Fatalf("expected ErrDegenerateCalibration, got %v", err)
	}
	if st != AwaitingRightTop || m.Geometry() != nil {
		t.Fatalf("expected machine to keep waiting for right top, got %v", st)
	}
	if st, err := m.Submit(model.Point{X: 700, Y: 120}); err != nil || st != Complete {
		t.Fatalf("expected recalibration to succeed, got %v %v", st, err)
	}
}

func TestDegenerateZeroHeight(t *testing.T) {
	corners := [model.CornerCount]model.Point{
		{X: 100, Y: 100}, {X: 100, Y: 100}, {X: 700, Y: 120}, {X: 700, Y: 120},
	}
	if _, err := DeriveGeometry(corners, DefaultNetHeightM); !errors.Is(err, ErrDegenerateCalibration) {
		t.Fatalf("expected ErrDegenerateCalibration, got %v", err)
	}
}

func TestGeometryEndToEnd(t *testing.T) {
	g := calibrated(t).Geometry()
	if !approx(g.PixelsPerMeter, 123.4568, 1e-3) {
		t.Fatalf("unexpected pixels per meter: %f", g.PixelsPerMeter)
	}
	if !approx(g.TopLine.Slope, 0.03333, 1e-4) {
		t.Fatalf("unexpected slope: %f", g.TopLine.Slope)
	}
	if !approx(g.TopLine.Intercept, 96.667, 1e-3) {
		t.Fatalf("unexpected intercept: %f", g.TopLine.Intercept)
	}
	above, ok := g.MetersAboveNet(model.Point{X: 400, Y: 50})
	if !ok || !approx(above, 0.486, 1e-3) {
		t.Fatalf("unexpected meters above net: %f %v", above, ok)
	}
	again, _ := g.MetersAboveNet(model.Point{X: 400, Y: 50})
	if again != above {
		t.Fatalf("meters above net not idempotent: %v vs %v", above, again)
	}
}

func TestTapeLineIsZero(t *testing.T) {
	g := calibrated(t).Geometry()
	for _, x := range []float64{0, 100, 333.3, 700, 1920} {
		p := model.Point{X: x, Y: g.TopLine.YAt(x)}
		v, ok := g.MetersAboveNet(p)
		if !ok || !approx(v, 0, 1e-9) {
			t.Fatalf("expected zero on tape at x=%v, got %v", x, v)
		}
	}
}

func TestMetersAboveNetDecreasesWithY(t *testing.T) {
	g := calibrated(t).Geometry()
	prev := math.Inf(1)
	for y := 0.0; y <= 600; y += 25 {
		v, _ := g.MetersAboveNet(model.Point{X: 250, Y: y})
		if v >= prev {
			t.Fatalf("expected strictly decreasing value at y=%v: %v >= %v", y, v, prev)
		}
		prev = v
	}
}

func TestNilGeometryReturnsNoValue(t *testing.T) {
	var g *Geometry
	if _, ok := g.MetersAboveNet(model.Point{}); ok {
		t.Fatalf("expected no value before calibration")
	}
	if _, ok := g.MetersHorizontalDistance(model.Point{}, model.Point{X: 10}); ok {
		t.Fatalf("expected no value before calibration")
	}
}

func TestHorizontalDistanceUsesAbsoluteX(t *testing.T) {
	g := calibrated(t).Geometry()
	d1, _ := g.MetersHorizontalDistance(model.Point{X: 200, Y: 0}, model.Point{X: 446.9136, Y: 500})
	d2, _ := g.MetersHorizontalDistance(model.Point{X: 446.9136, Y: 10}, model.Point{X: 200, Y: 90})
	if !approx(d1, 2, 1e-4) || d1 != d2 {
		t.Fatalf("unexpected distances: %f %f", d1, d2)
	}
}
