package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisSeparator       = " │ "
	terminalWidthBackup = 80
)

var seriesColors = []lipgloss.Color{"#C89A3A", "#4FA3D1", "#7BC47F", "#D16BA5"}

// brailleBits maps a dot at (row, col) within a 2x4 cell to its braille bit.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type canvas struct {
	width  int
	height int
	cells  [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for i := range cells {
		cells[i] = make([]uint8, width)
	}
	return &canvas{width: width, height: height, cells: cells}
}

// dot sets a pixel; x spans [0, 2*width) and y spans [0, 4*height).
func (c *canvas) dot(x, y int) {
	if x < 0 || y < 0 || x >= c.width*2 || y >= c.height*4 {
		return
	}
	c.cells[y/4][x/2] |= brailleBits[y%4][x%2]
}

func (c *canvas) line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.dot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// PlotSeries renders a braille line plot with a fixed 0..yMax vertical scale.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, yMax float64, useColor bool) error {
	series = nonEmptySeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = maxInt(width, minPlotWidth)
	if yMax <= 0 {
		yMax = 1
	}

	canvases := make([]*canvas, len(series))
	for i, s := range series {
		canvases[i] = drawSeries(s.Values, width, height, yMax)
	}

	labels := axisLabels(height, yMax)
	labelWidth := 0
	for _, l := range labels {
		labelWidth = maxInt(labelWidth, runewidth.StringWidth(l))
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(runewidth.FillLeft(labels[y], labelWidth))
		row.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			var mask uint8
			owner := -1
			for i, c := range canvases {
				if bits := c.cells[y][x]; bits != 0 {
					mask |= bits
					if owner < 0 {
						owner = i
					}
				}
			}
			ch := string(rune(0x2800 + int(mask)))
			if useColor && owner >= 0 {
				ch = seriesStyle(owner).Render(ch)
			}
			row.WriteString(ch)
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, legend(series, useColor)); err != nil {
		return err
	}
	return nil
}

func drawSeries(values []float64, width, height int, yMax float64) *canvas {
	c := newCanvas(width, height)
	pxWidth := width * 2
	pxHeight := height * 4
	prevX, prevY := -1, -1
	for i, v := range values {
		x := 0
		if len(values) > 1 {
			x = int(math.Round(float64(i) * float64(pxWidth-1) / float64(len(values)-1)))
		}
		pos := math.Max(0, math.Min(1, v/yMax))
		y := int(math.Round((1 - pos) * float64(pxHeight-1)))
		if prevX >= 0 {
			c.line(prevX, prevY, x, y)
		} else {
			c.dot(x, y)
		}
		prevX, prevY = x, y
	}
	return c
}

func axisLabels(height int, yMax float64) []string {
	labels := make([]string, height)
	labels[0] = formatAxis(yMax)
	if height > 2 {
		labels[height/2] = formatAxis(yMax / 2)
	}
	if height > 1 {
		labels[height-1] = "0"
	}
	return labels
}

func formatAxis(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func legend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := "⣿ " + s.Name
		if useColor {
			label = seriesStyle(i).Render(label)
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func seriesStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(seriesColors[i%len(seriesColors)])
}

func nonEmptySeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := 3 + runewidth.StringWidth(axisSeparator)
	return maxInt(totalWidth-axisWidth, minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// IsTerminal reports whether w is an interactive terminal without NO_COLOR set.
func IsTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
