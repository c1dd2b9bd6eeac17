// Package main provides the CLI entrypoint for netset.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/netset/internal/calib"
	"github.com/verte-zerg/netset/internal/config"
	"github.com/verte-zerg/netset/internal/script"
	"github.com/verte-zerg/netset/internal/session"
	"github.com/verte-zerg/netset/internal/stats"
	"github.com/verte-zerg/netset/internal/trail"
	"github.com/verte-zerg/netset/internal/tui"
)

const (
	defaultNet       = "men"
	defaultFrameStep = script.DefaultFrameStep
)

var (
	flagNetHeight float64
	flagNet       string
	flagFrameStep float64
	flagDebug     bool
)

// settings are the resolved measurement options.
type settings struct {
	NetHeightM float64
	Palette    []string
	FrameStep  float64
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "netset",
		Short:         "Measure volleyball set height and width from video clicks",
		Long:          "Calibrate against the net with four corner clicks, click the ball through each rep, and get peak height and width per rep. Reads an event script from stdin when it is not a terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runRootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.Float64Var(&flagNetHeight, "net-height", calib.DefaultNetHeightM, "net height in metres")
	flags.StringVar(&flagNet, "net", defaultNet, "net preset (men, women)")
	flags.Float64Var(&flagFrameStep, "frame-step", defaultFrameStep, "seconds per frame for step/back")
	flags.BoolVar(&flagDebug, "debug", false, "log session transitions to stderr")

	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runRootCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(flagDebug)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		cmds, err := script.Parse(cmd.InOrStdin(), cfg.FrameStep)
		if err != nil {
			return fmt.Errorf("failed to parse script: %w", err)
		}
		return runReplay(cmd.Context(), cmd.OutOrStdout(), cmds, cfg, logger)
	}

	actor := session.NewActor(newSession(cfg, logger), logger)
	defer actor.Close()
	program := tea.NewProgram(tui.NewModel(actor, cfg.FrameStep), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay FILE",
		Short: "Run an event script and print the set report",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	cmds, err := script.ParseFile(args[0], cfg.FrameStep)
	if err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}
	return runReplay(cmd.Context(), cmd.OutOrStdout(), cmds, cfg, newLogger(flagDebug))
}

func runReplay(ctx context.Context, w io.Writer, cmds []session.Command, cfg settings, logger *slog.Logger) error {
	actor := session.NewActor(newSession(cfg, logger), logger)
	defer actor.Close()

	var last session.Result
	for i, c := range cmds {
		res, err := actor.Do(ctx, c)
		if err != nil {
			if errors.Is(err, calib.ErrDegenerateCalibration) {
				logErrf("command %d: %v; click the right top corner again\n", i+1, err)
				continue
			}
			return fmt.Errorf("failed to apply command %d: %w", i+1, err)
		}
		last = res
	}

	if last.Report != nil {
		return stats.RenderReport(w, *last.Report)
	}
	snap, err := actor.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Session not ended (mode %s, calibration %s, %d reps). Add \"done\" to get a report.\n",
		snap.Mode, snap.Calibration, len(snap.Completed)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSession(cfg settings, logger *slog.Logger) *session.Session {
	return session.New(session.Options{
		NetHeightM: cfg.NetHeightM,
		Palette:    cfg.Palette,
		Logger:     logger,
	})
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	netHeight, err := resolveNetHeight(cmd, fileCfg.Measure)
	if err != nil {
		return settings{}, err
	}
	frameStep := flagFrameStep
	applyFloatConfig(cmd, "frame-step", &frameStep, fileCfg.Measure.FrameStep)

	cfg := settings{
		NetHeightM: netHeight,
		Palette:    trail.DefaultPalette,
		FrameStep:  frameStep,
	}
	if len(fileCfg.Measure.Palette) > 0 {
		cfg.Palette = fileCfg.Measure.Palette
	}
	if err := validateSettings(cfg); err != nil {
		return settings{}, err
	}
	return cfg, nil
}

// resolveNetHeight prefers flags over the file and an explicit height over a preset.
func resolveNetHeight(cmd *cobra.Command, file config.MeasureConfig) (float64, error) {
	flags := cmd.Flags()
	switch {
	case flags.Changed("net-height"):
		return flagNetHeight, nil
	case flags.Changed("net"):
		return config.NetPresetHeight(flagNet)
	case file.NetHeight != nil:
		return *file.NetHeight, nil
	case file.Net != nil:
		return config.NetPresetHeight(*file.Net)
	default:
		return config.NetPresetHeight(defaultNet)
	}
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateSettings(cfg settings) error {
	if cfg.NetHeightM <= 0 {
		return fmt.Errorf("--net-height must be > 0")
	}
	if cfg.FrameStep <= 0 {
		return fmt.Errorf("--frame-step must be > 0")
	}
	if len(cfg.Palette) == 0 {
		return fmt.Errorf("palette must not be empty")
	}
	for _, c := range cfg.Palette {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("palette colours must not be empty")
		}
	}
	return nil
}

func defaultConfigTemplate() string {
	quoted := make([]string, len(trail.DefaultPalette))
	for i, c := range trail.DefaultPalette {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf(`# netset configuration
# Uncomment a value to enable it. CLI flags override config values.

[measure]
# net = %q                # Net preset: men (2.43 m) or women (2.24 m)
# net-height = %.2f        # Net height in metres, overrides the preset
# palette = [%s]
# frame-step = %.6f   # Seconds per frame for step/back
`,
		defaultNet,
		calib.DefaultNetHeightM,
		strings.Join(quoted, ", "),
		defaultFrameStep,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
