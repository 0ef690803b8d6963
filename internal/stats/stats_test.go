package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/bullseye/internal/model"
	"github.com/verte-zerg/bullseye/internal/target"
)

var testTarget = model.TargetConfig{Name: "bullseye", Rings: 10, Diameter: 400, MaxScore: 10}

func shotAt(x, y float64, score int) model.Shot {
	return model.Shot{X: x, Y: y, Score: score, Timestamp: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, got)

	same := MovingAverage([]float64{1, 5}, 1)
	assert.Equal(t, []float64{1, 5}, same)
	assert.Empty(t, MovingAverage(nil, 3))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil, 0, 10))
	line := Sparkline([]float64{0, 5, 10}, 0, 10)
	require.Len(t, line, 3)
	assert.Equal(t, byte(' '), line[0])
	assert.Equal(t, byte('@'), line[2])
	assert.Equal(t, "++", Sparkline([]float64{3, 3}, 3, 3))
}

func TestRingDistribution(t *testing.T) {
	cfg := model.TargetConfig{Rings: 3, Diameter: 90, MaxScore: 3}
	shots := []model.Shot{{Score: 3}, {Score: 0}, {Score: 3}, {Score: 1}}
	got := RingDistribution(shots, cfg)
	assert.Equal(t, []model.RingCount{
		{Score: 3, Count: 2},
		{Score: 2, Count: 0},
		{Score: 1, Count: 1},
		{Score: 0, Count: 1},
	}, got)
}

func TestGroup(t *testing.T) {
	assert.Equal(t, model.GroupStats{}, Group(nil, testTarget))

	shots := []model.Shot{shotAt(210, 200, 10), shotAt(210, 230, 9), shotAt(240, 230, 8)}
	g := Group(shots, testTarget)
	assert.InDelta(t, 20, g.OffsetX, 1e-9)
	assert.InDelta(t, 20, g.OffsetY, 1e-9)
	assert.InDelta(t, 28.2843, g.OffsetDistance, 1e-3)
	assert.InDelta(t, 42.4264, g.ExtremeSpread, 1e-3)
}

func TestBestShotsKeepsSessionOrderOnTies(t *testing.T) {
	shots := []model.Shot{{Score: 7}, {Score: 9}, {Score: 9}, {Score: 3}}
	best := BestShots(shots, 3)
	require.Len(t, best, 3)
	assert.Equal(t, 2, best[0].Number)
	assert.Equal(t, 3, best[1].Number)
	assert.Equal(t, 1, best[2].Number)
	assert.Nil(t, BestShots(shots, 0))
	assert.Len(t, BestShots(shots, 10), 4)
}

func TestGradeCounts(t *testing.T) {
	shots := []model.Shot{{Score: 10}, {Score: 9}, {Score: 7}, {Score: 2}}
	counts := GradeCounts(shots, testTarget)
	assert.Equal(t, 2, counts[target.GradeExcellent])
	assert.Equal(t, 1, counts[target.GradeGood])
	assert.Equal(t, 1, counts[target.GradePoor])
}

func TestBuildReport(t *testing.T) {
	s := model.Session{
		ID:     "abc",
		Status: model.StatusCompleted,
		Shots:  []model.Shot{shotAt(200, 200, 10), shotAt(230, 200, 8), shotAt(300, 300, 3)},
	}
	r := BuildReport(s, testTarget)
	assert.Equal(t, 21, r.Stats.TotalScore)
	assert.InDelta(t, 66.7, r.Stats.AccuracyPercent, 0.05)
	assert.Equal(t, []float64{10, 8, 3}, r.Scores)
	assert.Len(t, r.Trend, 3)
	assert.Len(t, r.Distribution, 11)
}

func TestRenderSummary(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)
	s := model.Session{
		ID:        "abc",
		Shooter:   "demo",
		StartTime: start,
		EndTime:   &end,
		Status:    model.StatusCompleted,
		Shots:     []model.Shot{shotAt(200, 200, 10), shotAt(230, 200, 8), shotAt(300, 300, 3)},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, BuildReport(s, testTarget), end))
	out := buf.String()
	for _, want := range []string{
		"Session abc",
		"Status: completed",
		"Shooter: demo",
		"Duration: 1m30s",
		"Total Shots: 3",
		"Total Score: 21",
		"Average Score: 7.0",
		"Best Shot: 10",
		"Accuracy: 66.7%",
		"Group: offset",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderShotTable(t *testing.T) {
	s := model.Session{Shots: []model.Shot{shotAt(200, 200, 10), shotAt(300, 300, 3)}}
	var buf bytes.Buffer
	require.NoError(t, RenderShotTable(&buf, BuildReport(s, testTarget), false))
	out := buf.String()
	assert.Contains(t, out, "excellent")
	assert.Contains(t, out, "poor")
	assert.Contains(t, out, "09:30:00")

	buf.Reset()
	require.NoError(t, RenderShotTable(&buf, BuildReport(model.Session{}, testTarget), false))
	assert.Equal(t, "No shots recorded.\n", buf.String())
}

func TestRenderDistribution(t *testing.T) {
	s := model.Session{Shots: []model.Shot{shotAt(200, 200, 10), shotAt(200, 200, 10)}}
	var buf bytes.Buffer
	require.NoError(t, RenderDistribution(&buf, BuildReport(s, testTarget)))
	assert.Contains(t, buf.String(), "100.0%")
}

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Score Trend", []Series{
		{Name: "Score", Values: []float64{10, 8, 3, 9, 7}},
		{Name: "Average", Values: []float64{10, 9, 7, 7.5, 7.4}},
	}, 12, 4, 10, false)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+4+1)
	assert.Equal(t, "Score Trend", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "10 │ "), lines[1])
	assert.True(t, strings.HasPrefix(lines[4], " 0 │ "), lines[4])
	assert.Contains(t, lines[5], "Legend:")
	assert.Contains(t, lines[5], "Average")
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PlotSeries(&buf, "Empty", []Series{{Name: "A"}}, 10, 4, 10, false))
	assert.Empty(t, buf.String())
}

func TestPlotWidthFor(t *testing.T) {
	assert.Equal(t, minPlotWidth, PlotWidthFor(0))
	assert.Equal(t, minPlotWidth, PlotWidthFor(5))
	assert.Equal(t, 80-3-runewidth.StringWidth(axisSeparator), PlotWidthFor(80))
}
