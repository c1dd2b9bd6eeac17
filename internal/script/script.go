// Package script parses plain-text event scripts into session commands.
package script

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/verte-zerg/netset/internal/session"
)

// DefaultFrameStep is one frame at 30 fps.
const DefaultFrameStep = 1.0 / 30.0

// Interpreter turns script lines into commands. It keeps a video clock so
// clicks without an explicit time use the current frame.
type Interpreter struct {
	frameStep float64
	now       float64
}

// NewInterpreter returns an interpreter with its clock at zero.
func NewInterpreter(frameStep float64) *Interpreter {
	if frameStep <= 0 {
		frameStep = DefaultFrameStep
	}
	return &Interpreter{frameStep: frameStep}
}

// Now returns the clock in seconds.
func (in *Interpreter) Now() float64 {
	return in.now
}

// Line parses one line. Blank lines, comments and clock commands return a nil command.
func (in *Interpreter) Line(line string) (session.Command, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	verb := strings.ToLower(fields[0])
	args, err := parseNumbers(fields[1:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", verb, err)
	}

	switch verb {
	case "calib":
		if len(args) != 2 {
			return nil, fmt.Errorf("calib: expected 2 numbers")
		}
		return session.CalibrationClick{X: args[0], Y: args[1]}, nil
	case "click":
		switch len(args) {
		case 2:
			return session.RecordingClick{X: args[0], Y: args[1], T: in.now}, nil
		case 3:
			if args[2] < 0 {
				return nil, fmt.Errorf("click: time must be >= 0")
			}
			in.now = args[2]
			return session.RecordingClick{X: args[0], Y: args[1], T: args[2]}, nil
		default:
			return nil, fmt.Errorf("click: expected 2 or 3 numbers")
		}
	case "end":
		return session.EndRep{}, expectNone(verb, args)
	case "undo":
		return session.Undo{}, expectNone(verb, args)
	case "reset":
		return session.Reset{}, expectNone(verb, args)
	case "done":
		return session.SessionEnded{}, expectNone(verb, args)
	case "step", "back":
		frames, err := frameCount(verb, args)
		if err != nil {
			return nil, err
		}
		if verb == "back" {
			frames = -frames
		}
		in.now += frames * in.frameStep
		if in.now < 0 {
			in.now = 0
		}
		return nil, nil
	case "seek":
		if len(args) != 1 || args[0] < 0 {
			return nil, fmt.Errorf("seek: expected a time >= 0")
		}
		in.now = args[0]
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown command %q", verb)
	}
}

// Parse reads a whole script.
func Parse(r io.Reader, frameStep float64) ([]session.Command, error) {
	in := NewInterpreter(frameStep)
	var cmds []session.Command
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		cmd, err := in.Line(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

// ParseFile reads a script from path.
func ParseFile(path string, frameStep float64) ([]session.Command, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only script.
			_ = cerr
		}
	}()
	return Parse(file, frameStep)
}

func parseNumbers(fields []string) ([]float64, error) {
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

func expectNone(verb string, args []float64) error {
	if len(args) != 0 {
		return fmt.Errorf("%s: takes no arguments", verb)
	}
	return nil
}

func frameCount(verb string, args []float64) (float64, error) {
	switch len(args) {
	case 0:
		return 1, nil
	case 1:
		if args[0] < 0 {
			return 0, fmt.Errorf("%s: frame count must be >= 0", verb)
		}
		return args[0], nil
	default:
		return 0, fmt.Errorf("%s: expected at most 1 number", verb)
	}
}
