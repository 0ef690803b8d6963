package reportui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/bullseye/internal/model"
	"github.com/verte-zerg/bullseye/internal/stats"
)

func testReport(shots ...model.Shot) stats.Report {
	cfg := model.TargetConfig{Name: "bullseye", Rings: 10, Diameter: 400, MaxScore: 10}
	s := model.Session{ID: "0123456789abcdef", Status: model.StatusCompleted, Shooter: "demo", Shots: shots}
	return stats.BuildReport(s, cfg)
}

func shot(x, y float64, score int) model.Shot {
	return model.Shot{X: x, Y: y, Score: score, Timestamp: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)}
}

func TestTabNavigationWraps(t *testing.T) {
	m := NewModel(testReport(shot(200, 200, 10)), 100, 40)
	if m.ActiveTab() != "Overview" {
		t.Fatalf("expected Overview, got %s", m.ActiveTab())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.ActiveTab() != "Shots" {
		t.Fatalf("expected Shots, got %s", m.ActiveTab())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.ActiveTab() != "Rings" {
		t.Fatalf("expected wrap to Rings, got %s", m.ActiveTab())
	}
}

func TestViewHeaderShowsSession(t *testing.T) {
	m := NewModel(testReport(shot(200, 200, 10)), 100, 40)
	out := m.View()
	for _, want := range []string{"Overview", "Session 01234567", "target=bullseye", "shooter=demo"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if got := len(strings.Split(out, "\n")); got != 40 {
		t.Fatalf("expected view to fill 40 lines, got %d", got)
	}
}

func TestViewEmptyBeforeSize(t *testing.T) {
	m := NewModel(testReport(), 0, 0)
	if m.View() != "" {
		t.Fatalf("expected empty view without a window size")
	}
}

func TestRenderOverview(t *testing.T) {
	out := renderOverview(testReport(shot(200, 200, 10), shot(230, 200, 8), shot(300, 300, 3)), 100)
	for _, want := range []string{"Accuracy", "66.7%", "Score Trend", "Mean point of impact"} {
		if !strings.Contains(out, want) {
			t.Fatalf("overview missing %q:\n%s", want, out)
		}
	}
	if got := renderOverview(testReport(), 100); got != "No shots recorded." {
		t.Fatalf("unexpected empty overview %q", got)
	}
}

func TestRenderRings(t *testing.T) {
	out := renderRings(testReport(shot(200, 200, 10), shot(200, 200, 10), shot(300, 300, 3)), 80)
	if !strings.Contains(out, "   10      2   66.7%") {
		t.Fatalf("missing ten-ring row:\n%s", out)
	}
	if !strings.Contains(out, "2 excellent  0 good  1 poor") {
		t.Fatalf("missing grade summary:\n%s", out)
	}
}

func TestShotTableRows(t *testing.T) {
	m := NewModel(testReport(shot(200, 200, 10), shot(300, 300, 3)), 100, 40)
	rows := m.shotTable.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "2" || rows[1][3] != "3" || rows[1][4] != "poor" {
		t.Fatalf("unexpected row %v", rows[1])
	}
}
