// Package calib derives net geometry from calibration clicks.
package calib

import "github.com/verte-zerg/netset/internal/model"

// State is the calibration progress.
type State int

// Calibration states in order.
const (
	AwaitingLeftBottom State = iota
	AwaitingLeftTop
	AwaitingRightBottom
	AwaitingRightTop
	Complete
)

func (s State) String() string {
	switch s {
	case AwaitingLeftBottom:
		return "awaiting left bottom"
	case AwaitingLeftTop:
		return "awaiting left top"
	case AwaitingRightBottom:
		return "awaiting right bottom"
	case AwaitingRightTop:
		return "awaiting right top"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// NextCorner returns the corner the state is waiting for.
func (s State) NextCorner() (model.Corner, bool) {
	if s < AwaitingLeftBottom || s >= Complete {
		return 0, false
	}
	return model.Corner(s), true
}

// Machine collects the four net corners and derives geometry once.
type Machine struct {
	netHeightM float64
	state      State
	corners    [model.CornerCount]model.Point
	geometry   *Geometry
}

// NewMachine returns a machine awaiting the left bottom corner.
func NewMachine(netHeightM float64) *Machine {
	if netHeightM <= 0 {
		netHeightM = DefaultNetHeightM
	}
	return &Machine{netHeightM: netHeightM}
}

// State returns the current calibration state.
func (m *Machine) State() State {
	return m.state
}

// NetHeightM returns the configured net height.
func (m *Machine) NetHeightM() float64 {
	return m.netHeightM
}

// Corners returns the corners recorded so far.
func (m *Machine) Corners() []model.Point {
	n := int(m.state)
	out := make([]model.Point, n)
	copy(out, m.corners[:n])
	return out
}

// Geometry returns the derived geometry, or nil before Complete.
func (m *Machine) Geometry() *Geometry {
	if m.geometry == nil {
		return nil
	}
	g := *m.geometry
	return &g
}

// Submit records p into the awaited corner and advances. It is a no-op once
// Complete. A fourth click that yields degenerate geometry is not recorded and
// ErrDegenerateCalibration is returned.
func (m *Machine) Submit(p model.Point) (State, error) {
	if m.state == Complete {
		return m.state, nil
	}
	if m.state != AwaitingRightTop {
		m.corners[m.state] = p
		m.state++
		return m.state, nil
	}

	corners := m.corners
	corners[model.RightTop] = p
	g, err := DeriveGeometry(corners, m.netHeightM)
	if err != nil {
		return m.state, err
	}
	m.corners = corners
	m.geometry = &g
	m.state = Complete
	return m.state, nil
}

// Reset clears all corners and geometry.
func (m *Machine) Reset() {
	m.state = AwaitingLeftBottom
	m.corners = [model.CornerCount]model.Point{}
	m.geometry = nil
}
