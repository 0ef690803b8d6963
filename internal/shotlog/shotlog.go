// Package shotlog loads recorded shot coordinates from files.
package shotlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/verte-zerg/bullseye/internal/model"
)

// LoadPoints reads one "x y" or "x,y" point per line from the provided file path.
// Blank lines and lines starting with '#' are skipped.
func LoadPoints(path string) ([]model.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only shot log.
			_ = cerr
		}
	}()
	return ReadPoints(file)
}

// ReadPoints parses points from r.
func ReadPoints(r io.Reader) ([]model.Point, error) {
	var points []model.Point
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := ParsePoint(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("shot log is empty")
	}
	return points, nil
}

// ParsePoint parses "x y", "x,y" or "x, y".
func ParsePoint(s string) (model.Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return model.Point{}, fmt.Errorf("expected two coordinates, got %q", s)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid x %q", fields[0])
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid y %q", fields[1])
	}
	return model.Point{X: x, Y: y}, nil
}
