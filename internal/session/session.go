// Package session ties calibration, recording and reporting into one aggregate.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/verte-zerg/netset/internal/calib"
	"github.com/verte-zerg/netset/internal/model"
	"github.com/verte-zerg/netset/internal/stats"
	"github.com/verte-zerg/netset/internal/trail"
)

// Mode is the recording phase of a session.
type Mode int

// Session modes.
const (
	ModeCalibrating Mode = iota
	ModeRecording
	ModeEnded
)

func (m Mode) String() string {
	switch m {
	case ModeCalibrating:
		return "calibrating"
	case ModeRecording:
		return "recording"
	case ModeEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Options configures a new Session.
type Options struct {
	NetHeightM float64
	Palette    []string
	Logger     *slog.Logger
}

// Snapshot is a copy of the session state for display.
type Snapshot struct {
	SessionID   string
	Mode        Mode
	Calibration calib.State
	Corners     []model.Point
	Geometry    *calib.Geometry
	Completed   []model.Rep
	Active      model.Rep
}

// Result is returned by Apply. Report is set only for SessionEnded.
type Result struct {
	Snapshot Snapshot
	Report   *model.Report
}

// Session is the single mutable state of one measuring session.
// It is not safe for concurrent use; see Actor.
type Session struct {
	id       string
	logger   *slog.Logger
	mode     Mode
	calib    *calib.Machine
	recorder *trail.Recorder
}

// New creates a session awaiting calibration.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		logger:   logger.With("session", id),
		mode:     ModeCalibrating,
		calib:    calib.NewMachine(opts.NetHeightM),
		recorder: trail.NewRecorder(opts.Palette),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Apply runs one command. Commands that do not fit the current mode are
// ignored. A rejected fourth corner returns calib.ErrDegenerateCalibration.
func (s *Session) Apply(cmd Command) (Result, error) {
	var report *model.Report
	switch c := cmd.(type) {
	case CalibrationClick:
		if s.mode != ModeCalibrating {
			break
		}
		prev := s.calib.State()
		next, err := s.calib.Submit(model.Point{X: c.X, Y: c.Y})
		if err != nil {
			if errors.Is(err, calib.ErrDegenerateCalibration) {
				s.logger.Warn("calibration rejected", "x", c.X, "y", c.Y, "error", err)
			}
			return Result{Snapshot: s.Snapshot()}, err
		}
		s.logger.Debug("calibration step", "from", prev.String(), "to", next.String())
		if next == calib.Complete {
			g := s.calib.Geometry()
			s.logger.Debug("net geometry derived",
				"pixels_per_meter", g.PixelsPerMeter,
				"slope", g.TopLine.Slope,
				"intercept", g.TopLine.Intercept)
			s.transition(ModeRecording)
		}
	case RecordingClick:
		if s.mode != ModeRecording {
			break
		}
		s.recorder.AddPoint(model.RepPoint{X: c.X, Y: c.Y, T: c.T})
	case EndRep:
		if s.mode != ModeRecording {
			break
		}
		s.recorder.EndRep()
	case Undo:
		if s.mode != ModeRecording {
			break
		}
		s.recorder.UndoLast()
	case Reset:
		s.recorder.Reset()
		s.calib.Reset()
		s.transition(ModeCalibrating)
	case SessionEnded:
		if s.mode == ModeRecording {
			s.recorder.EndRep()
			s.transition(ModeEnded)
		}
		if s.mode == ModeEnded {
			r := s.Report()
			report = &r
		}
	default:
		return Result{Snapshot: s.Snapshot()}, fmt.Errorf("unknown command %T", cmd)
	}
	return Result{Snapshot: s.Snapshot(), Report: report}, nil
}

func (s *Session) transition(next Mode) {
	prev := s.mode
	if prev == next {
		return
	}
	s.mode = next
	s.logger.Debug("session mode transition", "from", prev.String(), "to", next.String())
}

// Report computes metrics for the completed reps from raw points and geometry.
func (s *Session) Report() model.Report {
	return stats.BuildReport(s.id, s.recorder.Completed(), s.calib.Geometry())
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SessionID:   s.id,
		Mode:        s.mode,
		Calibration: s.calib.State(),
		Corners:     s.calib.Corners(),
		Geometry:    s.calib.Geometry(),
		Completed:   s.recorder.Completed(),
		Active:      s.recorder.Active(),
	}
}
