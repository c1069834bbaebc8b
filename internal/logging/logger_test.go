package logging_test

import (
	"path/filepath"
	"testing"

	"vodsync/internal/config"
	"vodsync/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigCreatesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(t.TempDir(), "data")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	logger.Info("probe", logging.String("key", "value"))
}

func TestComponentLoggerToleratesNil(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "reconcile")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	// Must not panic even though the underlying handler is a no-op.
	logger.Error("probe", logging.Error(nil))
}

func TestParseLevelViaOptions(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "", "bogus"} {
		if _, err := logging.New(logging.Options{Level: level, Format: "json"}); err != nil {
			t.Fatalf("level %q: %v", level, err)
		}
	}
}
