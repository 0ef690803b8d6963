package shotlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/bullseye/internal/model"
)

func TestParsePoint(t *testing.T) {
	for _, in := range []string{"12.5 40", "12.5,40", "12.5, 40", "12.5\t40"} {
		p, err := ParsePoint(in)
		if err != nil {
			t.Fatalf("ParsePoint(%q): %v", in, err)
		}
		if p != (model.Point{X: 12.5, Y: 40}) {
			t.Fatalf("ParsePoint(%q) = %+v", in, p)
		}
	}
	for _, in := range []string{"12", "1 2 3", "a 2", "1 b"} {
		if _, err := ParsePoint(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestReadPointsSkipsCommentsAndBlanks(t *testing.T) {
	input := "# lane 3\n\n200 200\n  210,190  \n"
	points, err := ReadPoints(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPoints: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[1] != (model.Point{X: 210, Y: 190}) {
		t.Fatalf("unexpected second point %+v", points[1])
	}
}

func TestReadPointsReportsLine(t *testing.T) {
	_, err := ReadPoints(strings.NewReader("200 200\nbad\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestLoadPointsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("# nothing\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPoints(path); err == nil {
		t.Fatalf("expected error for empty shot log")
	}
}

func TestLoadPointsMissing(t *testing.T) {
	if _, err := LoadPoints(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
