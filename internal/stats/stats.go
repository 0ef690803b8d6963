// Package stats contains per-session shot analysis and reporting.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/bullseye/internal/model"
	"github.com/verte-zerg/bullseye/internal/target"
)

const sparkChars = " .:-=+*#%@"

// ScoreSeries returns shot scores in chronological order.
func ScoreSeries(shots []model.Shot) []float64 {
	out := make([]float64, len(shots))
	for i, s := range shots {
		out[i] = float64(s.Score)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(minInt(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline scaled between lo and hi.
func Sparkline(values []float64, lo, hi float64) string {
	if len(values) == 0 {
		return ""
	}
	if hi-lo < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - lo) / (hi - lo)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = clampInt(idx, 0, len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RingDistribution counts shots per score, from the max score down to 0.
func RingDistribution(shots []model.Shot, cfg model.TargetConfig) []model.RingCount {
	if cfg.MaxScore < 0 {
		return nil
	}
	counts := make([]int, cfg.MaxScore+1)
	for _, s := range shots {
		if s.Score >= 0 && s.Score <= cfg.MaxScore {
			counts[s.Score]++
		}
	}
	out := make([]model.RingCount, 0, len(counts))
	for score := cfg.MaxScore; score >= 0; score-- {
		out = append(out, model.RingCount{Score: score, Count: counts[score]})
	}
	return out
}

// Group computes the mean point of impact and extreme spread of the shots.
func Group(shots []model.Shot, cfg model.TargetConfig) model.GroupStats {
	if len(shots) == 0 {
		return model.GroupStats{}
	}
	center := cfg.Center()
	var sumX, sumY float64
	for _, s := range shots {
		sumX += s.X
		sumY += s.Y
	}
	n := float64(len(shots))
	g := model.GroupStats{
		OffsetX: sumX/n - center.X,
		OffsetY: sumY/n - center.Y,
	}
	g.OffsetDistance = math.Hypot(g.OffsetX, g.OffsetY)
	for i := 0; i < len(shots); i++ {
		for j := i + 1; j < len(shots); j++ {
			d := math.Hypot(shots[i].X-shots[j].X, shots[i].Y-shots[j].Y)
			if d > g.ExtremeSpread {
				g.ExtremeSpread = d
			}
		}
	}
	return g
}

// RankedShot is a shot with its 1-based position in the session.
type RankedShot struct {
	Number int
	Shot   model.Shot
}

// BestShots returns the top n shots by score; ties keep session order.
func BestShots(shots []model.Shot, n int) []RankedShot {
	if n <= 0 || len(shots) == 0 {
		return nil
	}
	ranked := make([]RankedShot, len(shots))
	for i, s := range shots {
		ranked[i] = RankedShot{Number: i + 1, Shot: s}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Shot.Score > ranked[j].Shot.Score
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// GradeCounts counts shots per grade for the target.
func GradeCounts(shots []model.Shot, cfg model.TargetConfig) map[target.Grade]int {
	out := map[target.Grade]int{}
	for _, s := range shots {
		out[target.GradeOf(s.Score, cfg.MaxScore)]++
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
