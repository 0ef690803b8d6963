package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/bullseye/internal/model"
	"github.com/verte-zerg/bullseye/internal/target"
)

// Terminal cells are about twice as tall as they are wide, so the grid uses
// roughly two columns per row to keep the target round. Both sizes are odd so
// the center cell sits exactly on the target center.
const defaultGridRows = 19

const (
	emptyGlyph  = ' '
	ringGlyph   = '·'
	centerGlyph = '+'
	shotGlyph   = '●'
	lastGlyph   = '◉'
	cursorGlyph = '┼'
)

var (
	ringStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A")),
	}
	goldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	shotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	lastStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7875")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

type grid struct {
	rows   int
	cols   int
	target model.TargetConfig
}

func newGrid(cfg model.TargetConfig, rows int) grid {
	if rows < 3 {
		rows = 3
	}
	if rows%2 == 0 {
		rows++
	}
	return grid{rows: rows, cols: 2*rows - 1, target: cfg}
}

func (g grid) cellWidth() float64 {
	return g.target.Diameter / float64(g.cols)
}

func (g grid) cellHeight() float64 {
	return g.target.Diameter / float64(g.rows)
}

// cellCenter returns the target point at the center of a cell.
func (g grid) cellCenter(row, col int) model.Point {
	return model.Point{
		X: (float64(col) + 0.5) * g.cellWidth(),
		Y: (float64(row) + 0.5) * g.cellHeight(),
	}
}

// cellAt returns the cell containing p; ok is false outside the grid.
func (g grid) cellAt(p model.Point) (row, col int, ok bool) {
	col = int(math.Floor(p.X / g.cellWidth()))
	row = int(math.Floor(p.Y / g.cellHeight()))
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, 0, false
	}
	return row, col, true
}

func (g grid) center() (row, col int) {
	return g.rows / 2, g.cols / 2
}

func (g grid) inside(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

type cell struct {
	glyph rune
	style lipgloss.Style
}

func (g grid) cells(shots []model.Shot, cursorRow, cursorCol int, showCursor bool) [][]cell {
	out := make([][]cell, g.rows)
	centerRow, centerCol := g.center()
	goldRings := maxInt(1, g.target.Rings/5)
	for row := range out {
		out[row] = make([]cell, g.cols)
		for col := range out[row] {
			ring := target.RingIndex(target.Distance(g.cellCenter(row, col), g.target), g.target)
			switch {
			case ring < 0:
				out[row][col] = cell{glyph: emptyGlyph, style: lipgloss.NewStyle()}
			case ring < goldRings:
				out[row][col] = cell{glyph: ringGlyph, style: goldStyle}
			default:
				out[row][col] = cell{glyph: ringGlyph, style: ringStyles[ring%len(ringStyles)]}
			}
		}
	}
	out[centerRow][centerCol] = cell{glyph: centerGlyph, style: goldStyle}
	for i, s := range shots {
		row, col, ok := g.cellAt(s.Point())
		if !ok {
			continue
		}
		if i == len(shots)-1 {
			out[row][col] = cell{glyph: lastGlyph, style: lastStyle}
		} else {
			out[row][col] = cell{glyph: shotGlyph, style: shotStyle}
		}
	}
	if showCursor && g.inside(cursorRow, cursorCol) {
		c := out[cursorRow][cursorCol]
		if c.glyph == shotGlyph || c.glyph == lastGlyph {
			c.style = c.style.Underline(true)
		} else {
			c = cell{glyph: cursorGlyph, style: cursorStyle}
		}
		out[cursorRow][cursorCol] = c
	}
	return out
}

// render draws the target with shots and an optional crosshair.
func (g grid) render(shots []model.Shot, cursorRow, cursorCol int, showCursor bool) string {
	cells := g.cells(shots, cursorRow, cursorCol, showCursor)
	lines := make([]string, len(cells))
	for i, row := range cells {
		var b strings.Builder
		for _, c := range row {
			glyph := string(c.glyph)
			if runewidth.RuneWidth(c.glyph) != 1 {
				glyph = string(shotGlyphFallback(c.glyph))
			}
			b.WriteString(c.style.Render(glyph))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// shotGlyphFallback keeps the grid aligned on terminals that treat the marker glyphs as wide.
func shotGlyphFallback(r rune) rune {
	switch r {
	case shotGlyph:
		return 'o'
	case lastGlyph:
		return 'O'
	case cursorGlyph:
		return '+'
	default:
		return '.'
	}
}
