package stats

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/verte-zerg/bullseye/internal/model"
	"github.com/verte-zerg/bullseye/internal/session"
	"github.com/verte-zerg/bullseye/internal/target"
)

// TrendWindow is the moving-average window used for score trends.
const TrendWindow = 5

// Report contains precomputed data for rendering one session.
type Report struct {
	Session      model.Session
	Target       model.TargetConfig
	Stats        model.SessionStats
	Distribution []model.RingCount
	Group        model.GroupStats
	Scores       []float64
	Trend        []float64
}

// BuildReport analyzes the shots of a session.
func BuildReport(s model.Session, cfg model.TargetConfig) Report {
	scores := ScoreSeries(s.Shots)
	return Report{
		Session:      s,
		Target:       cfg,
		Stats:        session.ComputeStats(s.Shots, cfg.MaxScore),
		Distribution: RingDistribution(s.Shots, cfg),
		Group:        Group(s.Shots, cfg),
		Scores:       scores,
		Trend:        MovingAverage(scores, TrendWindow),
	}
}

// RenderSummary prints the session header and statistics.
func RenderSummary(w io.Writer, r Report, now time.Time) error {
	s := r.Session
	lines := []string{
		"Session " + s.ID,
		fmt.Sprintf("Status: %s", s.Status),
		fmt.Sprintf("Target: %s (%d rings, %.0f px)", r.Target.Name, r.Target.Rings, r.Target.Diameter),
	}
	if s.Shooter != "" {
		lines = append(lines, "Shooter: "+s.Shooter)
	}
	lines = append(lines,
		fmt.Sprintf("Duration: %s", s.Duration(now).Round(time.Second)),
		fmt.Sprintf("Total Shots: %d", r.Stats.TotalShots),
		fmt.Sprintf("Total Score: %d", r.Stats.TotalScore),
		fmt.Sprintf("Average Score: %.1f", r.Stats.AverageScore),
		fmt.Sprintf("Best Shot: %d", r.Stats.BestScore()),
		fmt.Sprintf("Accuracy: %.1f%%", r.Stats.AccuracyPercent),
	)
	if r.Stats.TotalShots > 0 {
		lines = append(lines,
			fmt.Sprintf("Group: offset %.1f px (x %+.1f, y %+.1f), spread %.1f px",
				r.Group.OffsetDistance, r.Group.OffsetX, r.Group.OffsetY, r.Group.ExtremeSpread),
			fmt.Sprintf("Trend: %s", Sparkline(r.Trend, 0, float64(r.Target.MaxScore))),
		)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderShotTable prints every shot with its grade.
func RenderShotTable(w io.Writer, r Report, useColor bool) error {
	if len(r.Session.Shots) == 0 {
		_, err := fmt.Fprintln(w, "No shots recorded.")
		return err
	}
	grade := gradePainter(useColor)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Shot", "X", "Y", "Score", "Grade", "Time"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(r.Session.Shots))
	for i, s := range r.Session.Shots {
		g := target.GradeOf(s.Score, r.Target.MaxScore)
		data = append(data, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.1f", s.X),
			fmt.Sprintf("%.1f", s.Y),
			strconv.Itoa(s.Score),
			grade(g),
			s.Timestamp.Format("15:04:05"),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// RenderDistribution prints shot counts per score.
func RenderDistribution(w io.Writer, r Report) error {
	if r.Stats.TotalShots == 0 {
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Score", "Shots", "Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(r.Distribution))
	for _, rc := range r.Distribution {
		share := float64(rc.Count) / float64(r.Stats.TotalShots) * 100
		data = append(data, []string{
			strconv.Itoa(rc.Score),
			strconv.Itoa(rc.Count),
			fmt.Sprintf("%.1f%%", share),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func gradePainter(useColor bool) func(target.Grade) string {
	if !useColor {
		return target.Grade.String
	}
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	return func(g target.Grade) string {
		switch g {
		case target.GradeExcellent:
			return green(g.String())
		case target.GradeGood:
			return yellow(g.String())
		default:
			return red(g.String())
		}
	}
}
