// Package reportui provides the Bubble Tea session report interface.
package reportui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/bullseye/internal/stats"
	"github.com/verte-zerg/bullseye/internal/target"
)

const (
	tabOverview = iota
	tabShots
	tabRings
)

const plotHeight = 8

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	barStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea report UI for one session.
type Model struct {
	report stats.Report

	tabs      []string
	activeTab int
	viewports []viewport.Model
	shotTable table.Model

	width  int
	height int
}

// NewModel constructs a report UI model.
func NewModel(r stats.Report, width, height int) *Model {
	m := &Model{
		report: r,
		tabs:   []string{"Overview", "Shots", "Rings"},
		width:  width,
		height: height,
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.shotTable = buildShotTable(r, 1)
	m.updateLayout()
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "g", "home":
			if m.activeTab == tabShots {
				m.shotTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabShots {
				m.shotTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		}
		if m.activeTab == tabShots {
			var cmd tea.Cmd
			m.shotTable, cmd = m.shotTable.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Back: esc  Quit: q"), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// ActiveTab returns the name of the selected tab.
func (m *Model) ActiveTab() string {
	return m.tabs[m.activeTab]
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := maxInt(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = maxInt(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.shotTable.SetWidth(m.width)
	m.shotTable.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabShots {
		m.shotTable.Focus()
	} else {
		m.shotTable.Blur()
	}
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	s := m.report.Session
	summary := fmt.Sprintf("Session %s  target=%s  status=%s", shortID(s.ID), m.report.Target.Name, s.Status)
	if s.Shooter != "" {
		summary += "  shooter=" + s.Shooter
	}
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody() string {
	if m.activeTab == tabShots {
		if len(m.report.Session.Shots) == 0 {
			return "No shots recorded."
		}
		return tableMutedStyle.Render(m.shotTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabRings].SetContent(renderRings(m.report, width))
}

func renderOverview(r stats.Report, width int) string {
	if r.Stats.TotalShots == 0 {
		return "No shots recorded."
	}
	cards := []string{
		metricCard("Shots", strconv.Itoa(r.Stats.TotalShots)),
		metricCard("Total", strconv.Itoa(r.Stats.TotalScore)),
		metricCard("Average", fmt.Sprintf("%.1f", r.Stats.AverageScore)),
		metricCard("Best", strconv.Itoa(r.Stats.BestScore())),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", r.Stats.AccuracyPercent)),
		metricCard("Spread", fmt.Sprintf("%.1f px", r.Group.ExtremeSpread)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	group := headerStyle.Render(fmt.Sprintf("Mean point of impact: %.1f px from center (x %+.1f, y %+.1f)",
		r.Group.OffsetDistance, r.Group.OffsetX, r.Group.OffsetY))

	var buf bytes.Buffer
	err := stats.PlotSeries(&buf, "Score Trend", []stats.Series{
		{Name: "Score", Values: r.Scores},
		{Name: fmt.Sprintf("Average (%d)", stats.TrendWindow), Values: r.Trend},
	}, stats.PlotWidthFor(width), plotHeight, float64(r.Target.MaxScore), true)
	plot := strings.TrimRight(buf.String(), "\n")
	if err != nil {
		plot = fmt.Sprintf("Failed to render trend: %v", err)
	}
	return strings.TrimRight(summary+"\n"+group+"\n\n"+plot, "\n")
}

func renderRings(r stats.Report, width int) string {
	if r.Stats.TotalShots == 0 {
		return "No shots recorded."
	}
	maxCount := 0
	for _, rc := range r.Distribution {
		maxCount = maxInt(maxCount, rc.Count)
	}
	barWidth := maxInt(10, minInt(width-24, 50))
	lines := []string{headerStyle.Render("Score  Shots  Share")}
	for _, rc := range r.Distribution {
		share := float64(rc.Count) / float64(r.Stats.TotalShots) * 100
		bar := 0
		if maxCount > 0 {
			bar = rc.Count * barWidth / maxCount
		}
		lines = append(lines, fmt.Sprintf("%5d  %5d  %5.1f%% %s", rc.Score, rc.Count, share, barStyle.Render(strings.Repeat("█", bar))))
	}
	counts := stats.GradeCounts(r.Session.Shots, r.Target)
	lines = append(lines, "", headerStyle.Render(fmt.Sprintf("Grades: %d excellent  %d good  %d poor",
		counts[target.GradeExcellent], counts[target.GradeGood], counts[target.GradePoor])))
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildShotTable(r stats.Report, height int) table.Model {
	columns := []table.Column{
		{Title: "Shot", Width: 5},
		{Title: "X", Width: 7},
		{Title: "Y", Width: 7},
		{Title: "Score", Width: 5},
		{Title: "Grade", Width: 9},
		{Title: "Time", Width: 8},
	}
	rows := make([]table.Row, 0, len(r.Session.Shots))
	for i, s := range r.Session.Shots {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.1f", s.X),
			fmt.Sprintf("%.1f", s.Y),
			strconv.Itoa(s.Score),
			target.GradeOf(s.Score, r.Target.MaxScore).String(),
			s.Timestamp.Format("15:04:05"),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
