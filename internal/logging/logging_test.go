package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() {
		Log.SetLevel(logrus.InfoLevel)
	})
	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug): %v", err)
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", Log.GetLevel())
	}
	if err := SetLevel("WARN"); err != nil {
		t.Fatalf("SetLevel(WARN): %v", err)
	}
	if Log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", Log.GetLevel())
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bullseye.log")
	closer, err := ToFile(path)
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	Log.WithField("session", "abc").Info("session started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "session started") || !strings.Contains(out, "session=abc") {
		t.Fatalf("unexpected log contents: %q", out)
	}
}
