// Package trail groups recorded clicks into reps.
package trail

import "github.com/verte-zerg/netset/internal/model"

// DefaultPalette is the rep colour cycle.
var DefaultPalette = []string{
	"#FF4D4F",
	"#4DA3FF",
	"#52C41A",
	"#C89A3A",
	"#B37FEB",
	"#13C2C2",
}

// Recorder holds completed reps and the one active rep.
type Recorder struct {
	palette     []string
	colorCursor int
	completed   []model.Rep
	active      model.Rep
}

// NewRecorder returns a recorder whose first rep takes the first palette colour.
func NewRecorder(palette []string) *Recorder {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	r := &Recorder{palette: append([]string(nil), palette...)}
	r.active = model.Rep{Color: r.nextColor()}
	return r
}

func (r *Recorder) nextColor() string {
	c := r.palette[r.colorCursor%len(r.palette)]
	r.colorCursor++
	return c
}

// AddPoint appends a click to the active rep.
func (r *Recorder) AddPoint(p model.RepPoint) {
	r.active.Points = append(r.active.Points, p)
}

// UndoLast drops the most recent point of the active rep, if any.
func (r *Recorder) UndoLast() bool {
	n := len(r.active.Points)
	if n == 0 {
		return false
	}
	r.active.Points = r.active.Points[:n-1]
	return true
}

// EndRep moves a non-empty active rep to the completed list.
func (r *Recorder) EndRep() bool {
	if len(r.active.Points) == 0 {
		return false
	}
	r.completed = append(r.completed, r.active)
	r.active = model.Rep{Color: r.nextColor()}
	return true
}

// Reset discards every rep. The colour cursor keeps advancing.
func (r *Recorder) Reset() {
	r.completed = nil
	r.active = model.Rep{Color: r.nextColor()}
}

// Completed returns a copy of the completed reps in order.
func (r *Recorder) Completed() []model.Rep {
	out := make([]model.Rep, len(r.completed))
	for i, rep := range r.completed {
		out[i] = rep.Clone()
	}
	return out
}

// Active returns a copy of the active rep.
func (r *Recorder) Active() model.Rep {
	return r.active.Clone()
}
