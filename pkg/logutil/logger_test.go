package logutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "formstate.log")

	logger, closer, err := New("debug", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info().Str("component", "test").Msg("hello")
	closer()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"component":"test"`) {
		t.Fatalf("log output missing field: %s", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, _, err := New("loud", ""); err == nil {
		t.Fatalf("expected level parse error")
	}
}

func TestNewDefaultLevel(t *testing.T) {
	logger, closer, err := New("warn", "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer closer()
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("level %v", logger.GetLevel())
	}
}
