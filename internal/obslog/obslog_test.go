package obslog

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/cynthia-ltlf/cynthia/internal/config"
)

func TestNewBuildsALogger(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "debug", JSON: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer logger.Sync()

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := parseLevel("not-a-level"); got != zapcore.InfoLevel {
		t.Errorf("expected InfoLevel fallback, got %v", got)
	}
	if got := parseLevel(""); got != zapcore.InfoLevel {
		t.Errorf("expected InfoLevel for empty string, got %v", got)
	}
}
