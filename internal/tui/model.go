// Package tui provides the Bubble Tea range interface.
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/bullseye/internal/logging"
	"github.com/verte-zerg/bullseye/internal/model"
	"github.com/verte-zerg/bullseye/internal/reportui"
	"github.com/verte-zerg/bullseye/internal/session"
	"github.com/verte-zerg/bullseye/internal/stats"
	"github.com/verte-zerg/bullseye/internal/target"
)

// RecentLimit is the number of shots listed in the side panel.
const RecentLimit = 10

// The grid is drawn at a fixed origin so mouse coordinates map straight to cells.
const (
	gridTop    = 2
	gridLeft   = 2
	chromeRows = gridTop + 3
	panelGap   = 4
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	idleBadge      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	activeBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	doneBadge      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	excellentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	goodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FADB14"))
	poorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea range UI.
type Model struct {
	tracker *session.Tracker
	grid    grid

	cursorRow int
	cursorCol int

	width  int
	height int

	notice string
	report *reportui.Model
}

// NewModel constructs the range UI around a tracker.
func NewModel(tracker *session.Tracker) *Model {
	m := &Model{
		tracker: tracker,
		grid:    newGrid(tracker.Target(), defaultGridRows),
		notice:  "Press s to start a session",
	}
	m.centerCursor()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.report != nil {
		return m.updateReport(msg)
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.start()
		case "e":
			m.end()
		case "u", "backspace":
			m.undo()
		case " ", "space", "enter":
			m.fire()
		case "up", "k":
			m.moveCursor(-1, 0)
		case "down", "j":
			m.moveCursor(1, 0)
		case "left", "h":
			m.moveCursor(0, -1)
		case "right", "l":
			m.moveCursor(0, 1)
		case "c":
			m.centerCursor()
		case "t":
			m.cycleTarget()
		case "r":
			m.openReport()
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.report != nil {
		return m.report.View()
	}
	s, _ := m.tracker.Session()
	header := m.renderHeader(s.Status)

	shots := m.visibleShots(s)
	board := lipgloss.NewStyle().
		PaddingLeft(gridLeft).
		PaddingRight(panelGap).
		Render(m.grid.render(shots, m.cursorRow, m.cursorCol, true))
	panel := renderPanel(s.Status, m.tracker.Stats(), m.tracker.RecentShots(RecentLimit), len(s.Shots), m.tracker.Target().MaxScore)
	body := lipgloss.JoinHorizontal(lipgloss.Top, board, panel)

	notice := ""
	if m.notice != "" {
		notice = noticeStyle.Render(m.notice)
	}
	help := footerStyle.Render("s start  e end  space fire  u undo  arrows aim  c center  t target  r report  q quit")
	return strings.Join([]string{header, "", body, "", notice, help}, "\n")
}

func (m *Model) renderHeader(status model.SessionStatus) string {
	cfg := m.tracker.Target()
	return fmt.Sprintf("%s  %s  %s",
		titleStyle.Render("Bullseye"),
		statusBadge(status),
		labelStyle.Render(fmt.Sprintf("%s · %d rings · %.0f px", cfg.Name, cfg.Rings, cfg.Diameter)),
	)
}

// visibleShots hides shots of an earlier session that was scored on another target.
func (m *Model) visibleShots(s model.Session) []model.Shot {
	if s.Target != m.tracker.Target().Name {
		return nil
	}
	return s.Shots
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	rows := defaultGridRows
	if avail := height - chromeRows; avail < rows {
		rows = avail
	}
	if rows%2 == 0 {
		rows--
	}
	if rows != m.grid.rows && rows >= 3 {
		m.grid = newGrid(m.tracker.Target(), rows)
		m.centerCursor()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	row := msg.Y - gridTop
	col := msg.X - gridLeft
	if !m.grid.inside(row, col) {
		return
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.cursorRow, m.cursorCol = row, col
		m.fire()
	case msg.Action == tea.MouseActionMotion:
		m.cursorRow, m.cursorCol = row, col
	}
}

func (m *Model) start() {
	if m.tracker.Status() == model.StatusActive {
		m.notice = "Session already active"
		return
	}
	s := m.tracker.Start()
	m.notice = "Session started " + shortID(s.ID)
}

func (m *Model) end() {
	if m.tracker.Status() != model.StatusActive {
		m.notice = "No active session"
		return
	}
	s := m.tracker.End()
	m.notice = fmt.Sprintf("Session completed: %d shots, %d points", len(s.Shots), s.TotalScore)
}

func (m *Model) undo() {
	if m.tracker.Status() != model.StatusActive {
		m.notice = "No active session"
		return
	}
	if len(m.tracker.RecentShots(1)) == 0 {
		m.notice = "Nothing to undo"
		return
	}
	m.tracker.UndoLastShot()
	m.notice = "Last shot removed"
}

func (m *Model) fire() {
	p := m.grid.cellCenter(m.cursorRow, m.cursorCol)
	shot, st, ok := m.tracker.RecordShot(p)
	if !ok {
		m.notice = "Press s to start a session"
		return
	}
	m.notice = fmt.Sprintf("Shot %d scored %d", st.TotalShots, shot.Score)
}

func (m *Model) moveCursor(dRow, dCol int) {
	m.cursorRow = clampInt(m.cursorRow+dRow, 0, m.grid.rows-1)
	m.cursorCol = clampInt(m.cursorCol+dCol, 0, m.grid.cols-1)
}

func (m *Model) centerCursor() {
	m.cursorRow, m.cursorCol = m.grid.center()
}

func (m *Model) cycleTarget() {
	presets := target.Presets()
	next := presets[0]
	current := m.tracker.Target().Name
	for i, p := range presets {
		if p.Name == current {
			next = presets[(i+1)%len(presets)]
			break
		}
	}
	if err := m.tracker.Configure(next); err != nil {
		if errors.Is(err, session.ErrTargetLocked) {
			m.notice = "Target is locked while a session is active"
			return
		}
		logging.Log.WithError(err).Warn("target change failed")
		m.notice = err.Error()
		return
	}
	m.grid = newGrid(next, m.grid.rows)
	m.centerCursor()
	m.notice = "Target: " + next.Name
}

func (m *Model) openReport() {
	s, ok := m.tracker.Session()
	if !ok {
		m.notice = "No session to report yet"
		return
	}
	if s.Target != m.tracker.Target().Name {
		m.notice = "Last session used another target"
		return
	}
	logging.Log.WithField("session", s.ID).Debug("report opened")
	m.report = reportui.NewModel(stats.BuildReport(s, m.tracker.Target()), m.width, m.height)
}

func (m *Model) updateReport(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			m.report = nil
			return m, nil
		}
	}
	_, cmd := m.report.Update(msg)
	return m, cmd
}

func statusBadge(status model.SessionStatus) string {
	switch status {
	case model.StatusActive:
		return activeBadge.Render("● " + status.String())
	case model.StatusCompleted:
		return doneBadge.Render("■ " + status.String())
	default:
		return idleBadge.Render("○ Not Started")
	}
}

func renderPanel(status model.SessionStatus, st model.SessionStats, recent []model.Shot, total, maxScore int) string {
	best := "-"
	if st.BestShot != nil {
		best = fmt.Sprintf("%d", st.BestShot.Score)
	}
	lines := []string{
		titleStyle.Render("Session") + "  " + statusBadge(status),
		"",
		statLine("Total Shots", fmt.Sprintf("%d", st.TotalShots)),
		statLine("Total Score", fmt.Sprintf("%d", st.TotalScore)),
		statLine("Average", fmt.Sprintf("%.1f", st.AverageScore)),
		statLine("Best Shot", best),
		statLine("Accuracy", fmt.Sprintf("%.1f%%", st.AccuracyPercent)),
		"",
		titleStyle.Render("Recent Shots"),
	}
	if len(recent) == 0 {
		lines = append(lines, labelStyle.Render("No shots recorded yet"))
	}
	for i, s := range recent {
		line := fmt.Sprintf("#%-3d %2d  (%3.0f, %3.0f)", total-i, s.Score, s.X, s.Y)
		lines = append(lines, gradeStyle(target.GradeOf(s.Score, maxScore)).Render(line))
	}
	return strings.Join(lines, "\n")
}

func statLine(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
}

func gradeStyle(g target.Grade) lipgloss.Style {
	switch g {
	case target.GradeExcellent:
		return excellentStyle
	case target.GradeGood:
		return goodStyle
	default:
		return poorStyle
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
