// Package tui provides the Bubble Tea measuring prompt.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/netset/internal/model"
	"github.com/verte-zerg/netset/internal/script"
	"github.com/verte-zerg/netset/internal/session"
	"github.com/verte-zerg/netset/internal/stats"
)

const helpLine = "calib X Y · click X Y [T] · end · undo · reset · step/back [N] · seek T · done · quit"

// Model implements the Bubble Tea prompt that feeds events to a session.
type Model struct {
	actor  *session.Actor
	interp *script.Interpreter
	input  textinput.Model

	snapshot session.Snapshot
	report   string
	message  string
	errMsg   string

	width  int
	height int
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// NewModel constructs the prompt model.
func NewModel(actor *session.Actor, frameStep float64) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "calib 100 400"
	input.Focus()
	m := &Model{
		actor:  actor,
		interp: script.NewInterpreter(frameStep),
		input:  input,
	}
	m.refreshSnapshot()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			return m, m.handleLine(line)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("netset"))
	b.WriteString("\n")
	b.WriteString(noteStyle.Render(helpLine))
	b.WriteString("\n\n")
	if m.report != "" {
		b.WriteString(m.report)
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	switch {
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
	case m.message != "":
		b.WriteString(noteStyle.Render(m.message))
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) handleLine(line string) tea.Cmd {
	m.errMsg = ""
	m.message = ""
	trimmed := strings.TrimSpace(line)
	if trimmed == "quit" || trimmed == "q" {
		return tea.Quit
	}
	cmd, err := m.interp.Line(trimmed)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if cmd == nil {
		if trimmed != "" {
			m.message = fmt.Sprintf("clock %.3fs", m.interp.Now())
		}
		return nil
	}
	res, err := m.actor.Do(context.Background(), cmd)
	m.snapshot = res.Snapshot
	if err != nil {
		m.errMsg = err.Error()
		m.refreshSnapshot()
		return nil
	}
	if _, ok := cmd.(session.Reset); ok {
		m.report = ""
	}
	if res.Report != nil {
		var buf bytes.Buffer
		if err := stats.RenderReport(&buf, *res.Report); err != nil {
			m.errMsg = fmt.Sprintf("failed to render report: %v", err)
			return nil
		}
		m.report = buf.String()
	}
	return nil
}

func (m *Model) refreshSnapshot() {
	snap, err := m.actor.Snapshot(context.Background())
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.snapshot = snap
}

func (m *Model) renderFooter() string {
	snap := m.snapshot
	segments := []string{fmt.Sprintf("Mode %s", snap.Mode)}
	if corner, ok := snap.Calibration.NextCorner(); ok && snap.Mode == session.ModeCalibrating {
		segments = append(segments, fmt.Sprintf("Click %s (%d/%d)", corner, int(corner)+1, model.CornerCount))
	}
	segments = append(segments, fmt.Sprintf("t=%.3fs", m.interp.Now()))
	segments = append(segments, fmt.Sprintf("Reps %d%s", len(snap.Completed), repSwatches(snap.Completed)))
	if snap.Mode == session.ModeRecording {
		active := lipgloss.NewStyle().Foreground(lipgloss.Color(snap.Active.Color)).Render("●")
		segments = append(segments, fmt.Sprintf("Active %s %d pts", active, len(snap.Active.Points)))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func repSwatches(reps []model.Rep) string {
	if len(reps) == 0 {
		return ""
	}
	var b strings.Builder
	for i, rep := range reps {
		b.WriteByte(' ')
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(rep.Color)).Render(fmt.Sprintf("%d", i+1)))
	}
	return b.String()
}
