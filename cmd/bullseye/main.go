// Package main provides the CLI entrypoint for bullseye.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/bullseye/internal/config"
	"github.com/verte-zerg/bullseye/internal/logging"
	"github.com/verte-zerg/bullseye/internal/model"
	"github.com/verte-zerg/bullseye/internal/session"
	"github.com/verte-zerg/bullseye/internal/shotlog"
	"github.com/verte-zerg/bullseye/internal/stats"
	"github.com/verte-zerg/bullseye/internal/target"
	"github.com/verte-zerg/bullseye/internal/tui"
)

const (
	defaultTarget   = "bullseye"
	defaultLogLevel = "info"
)

var (
	rangeTarget  string
	rangeRings   int
	rangeSize    float64
	rangeShooter string
	logLevel     string
	logFile      string

	replayJSON    bool
	replayNoColor bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bullseye",
		Short:         "Shooting range session tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRangeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rangeTarget, "target", defaultTarget, "target preset or 'custom' (see: bullseye targets)")
	flags.IntVar(&rangeRings, "rings", 0, "number of scoring rings (overrides the preset)")
	flags.Float64Var(&rangeSize, "size", 0, "target diameter in pixels (overrides the preset)")
	flags.StringVar(&rangeShooter, "shooter", "", "shooter name stamped on sessions")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "log file used by the range UI")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTargetsCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newReplayCmd())

	return rootCmd
}

func runRangeCmd(cmd *cobra.Command, _ []string) error {
	cfg, tcfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}
	closer, err := logging.ToFile(logPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logging.Log.WithError(cerr).Warn("failed to close log file")
		}
	}()

	tracker, err := session.NewTracker(tcfg, session.WithShooter(cfg.Shooter))
	if err != nil {
		return err
	}
	logging.Log.WithFields(logrus.Fields{
		"target":  tcfg.Name,
		"rings":   tcfg.Rings,
		"size":    tcfg.Diameter,
		"shooter": cfg.Shooter,
	}).Info("range opened")

	program := tea.NewProgram(tui.NewModel(tracker), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	s, ok := tracker.Session()
	if !ok || s.Target != tracker.Target().Name {
		return nil
	}
	return stats.RenderSummary(cmd.OutOrStdout(), stats.BuildReport(s, tracker.Target()), time.Now())
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
		logging.Log.WithField("path", path).Info("config created")
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

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List target presets",
		Args:  cobra.NoArgs,
		RunE:  runTargetsCmd,
	}
}

func runTargetsCmd(cmd *cobra.Command, _ []string) error {
	return renderTargets(cmd.OutOrStdout(), target.Presets())
}

func renderTargets(w io.Writer, presets []model.TargetConfig) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Rings", "Size", "Max", "Accurate From"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(presets))
	for _, p := range presets {
		data = append(data, []string{
			p.Name,
			strconv.Itoa(p.Rings),
			fmt.Sprintf("%.0f", p.Diameter),
			strconv.Itoa(p.MaxScore),
			strconv.Itoa(target.AccuracyThreshold(p.MaxScore)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score X Y",
		Short: "Score a single point on the resolved target",
		Args:  cobra.ExactArgs(2),
		RunE:  runScoreCmd,
	}
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	_, tcfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := shotlog.ParsePoint(strings.Join(args, " "))
	if err != nil {
		return err
	}
	score := target.Score(p, tcfg)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Score: %d/%d (%.1f px from center, %s)\n",
		score, tcfg.MaxScore, target.Distance(p, tcfg), target.GradeOf(score, tcfg.MaxScore))
	return err
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Score recorded shot coordinates as one session",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
	cmd.Flags().BoolVar(&replayJSON, "json", false, "print the session as JSON")
	cmd.Flags().BoolVar(&replayNoColor, "no-color", false, "disable colored grades")
	return cmd
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	cfg, tcfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	points, err := shotlog.LoadPoints(args[0])
	if err != nil {
		return fmt.Errorf("failed to load shots: %w", err)
	}
	tracker, err := session.NewTracker(tcfg, session.WithShooter(cfg.Shooter))
	if err != nil {
		return err
	}
	s := replay(tracker, points)

	out := cmd.OutOrStdout()
	report := stats.BuildReport(s, tcfg)
	if replayJSON {
		return writeReplayJSON(out, report)
	}
	if err := stats.RenderSummary(out, report, time.Now()); err != nil {
		return err
	}
	useColor := !replayNoColor && stats.IsTerminal(out)
	if err := stats.RenderShotTable(out, report, useColor); err != nil {
		return err
	}
	return stats.RenderDistribution(out, report)
}

// replay records every point in a fresh session and completes it.
func replay(tracker *session.Tracker, points []model.Point) model.Session {
	tracker.Start()
	for _, p := range points {
		tracker.RecordShot(p)
	}
	return tracker.End()
}

type replayShot struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Score     int       `json:"score"`
	Grade     string    `json:"grade"`
	Timestamp time.Time `json:"timestamp"`
}

type replayOutput struct {
	ID              string       `json:"id"`
	Shooter         string       `json:"shooter,omitempty"`
	Target          string       `json:"target"`
	Rings           int          `json:"rings"`
	Diameter        float64      `json:"diameter"`
	Status          string       `json:"status"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         *time.Time   `json:"end_time,omitempty"`
	TotalShots      int          `json:"total_shots"`
	TotalScore      int          `json:"total_score"`
	AverageScore    float64      `json:"average_score"`
	BestScore       *int         `json:"best_score,omitempty"`
	AccuracyPercent float64      `json:"accuracy_percent"`
	OffsetDistance  float64      `json:"offset_distance"`
	ExtremeSpread   float64      `json:"extreme_spread"`
	Shots           []replayShot `json:"shots"`
}

func writeReplayJSON(w io.Writer, r stats.Report) error {
	s := r.Session
	out := replayOutput{
		ID:              s.ID,
		Shooter:         s.Shooter,
		Target:          r.Target.Name,
		Rings:           r.Target.Rings,
		Diameter:        r.Target.Diameter,
		Status:          string(s.Status),
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		TotalShots:      r.Stats.TotalShots,
		TotalScore:      r.Stats.TotalScore,
		AverageScore:    r.Stats.AverageScore,
		AccuracyPercent: r.Stats.AccuracyPercent,
		OffsetDistance:  r.Group.OffsetDistance,
		ExtremeSpread:   r.Group.ExtremeSpread,
		Shots:           make([]replayShot, 0, len(s.Shots)),
	}
	if r.Stats.BestShot != nil {
		best := r.Stats.BestShot.Score
		out.BestScore = &best
	}
	for _, shot := range s.Shots {
		out.Shots = append(out.Shots, replayShot{
			X:         shot.X,
			Y:         shot.Y,
			Score:     shot.Score,
			Grade:     target.GradeOf(shot.Score, r.Target.MaxScore).String(),
			Timestamp: shot.Timestamp,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// resolveConfig merges flags, the config file and the target preset.
func resolveConfig(cmd *cobra.Command) (model.Config, model.TargetConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, model.TargetConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "target", &rangeTarget, fileCfg.Range.Target)
	applyIntConfig(cmd, "rings", &rangeRings, fileCfg.Range.Rings)
	applyFloatConfig(cmd, "size", &rangeSize, fileCfg.Range.Size)
	applyStringConfig(cmd, "shooter", &rangeShooter, fileCfg.Range.Shooter)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	cfg := model.Config{
		Target:   rangeTarget,
		Rings:    rangeRings,
		Diameter: rangeSize,
		Shooter:  strings.TrimSpace(rangeShooter),
		LogLevel: logLevel,
		LogFile:  logFile,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, model.TargetConfig{}, err
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return model.Config{}, model.TargetConfig{}, err
	}
	tcfg, err := resolveTarget(cfg)
	if err != nil {
		return model.Config{}, model.TargetConfig{}, err
	}
	return cfg, tcfg, nil
}

// resolveTarget starts from the named preset and applies ring and size overrides.
func resolveTarget(cfg model.Config) (model.TargetConfig, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Target))
	if name == "" {
		name = defaultTarget
	}
	base := model.TargetConfig{Name: target.CustomPreset}
	if name != target.CustomPreset {
		preset, err := target.Preset(name)
		if err != nil {
			return model.TargetConfig{}, err
		}
		base = preset
	}
	rings, size := base.Rings, base.Diameter
	if cfg.Rings != 0 {
		rings = cfg.Rings
	}
	if cfg.Diameter != 0 {
		size = cfg.Diameter
	}
	if rings == 0 || size == 0 {
		return model.TargetConfig{}, fmt.Errorf("custom target requires --rings and --size")
	}
	return target.New(base.Name, rings, size)
}

func validateConfig(cfg model.Config) error {
	if cfg.Rings < 0 {
		return fmt.Errorf("--rings must be >= 1")
	}
	if cfg.Diameter < 0 {
		return fmt.Errorf("--size must be > 0")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# bullseye configuration
# Uncomment a value to enable it. CLI flags override config values.

[range]
# target = %q        # Preset name or "custom" (presets: %s)
# rings = 10                # Scoring rings, overrides the preset
# size = 400.0              # Target diameter in pixels, overrides the preset
# shooter = ""              # Name stamped on sessions

[log]
# level = %q            # debug, info, warn or error
# file = %q
`,
		defaultTarget,
		strings.Join(target.PresetNames(), ", "),
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}
