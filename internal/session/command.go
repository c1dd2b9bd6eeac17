// Package session ties calibration, recording and reporting into one aggregate.
package session

// Command is an external event applied to a Session.
type Command interface {
	command()
}

// CalibrationClick is a click on a net corner.
type CalibrationClick struct {
	X float64
	Y float64
}

// RecordingClick is a click on the ball at video time T seconds.
type RecordingClick struct {
	X float64
	Y float64
	T float64
}

// EndRep closes the active rep.
type EndRep struct{}

// Undo removes the last point of the active rep.
type Undo struct{}

// Reset clears reps and calibration.
type Reset struct{}

// SessionEnded signals the end of the video.
type SessionEnded struct{}

func (CalibrationClick) command() {}
func (RecordingClick) command()   {}
func (EndRep) command()           {}
func (Undo) command()             {}
func (Reset) command()            {}
func (SessionEnded) command()     {}
