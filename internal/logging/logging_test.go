package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger_LogfmtWithSource(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf).With("source", SourceDiagnosis)
	l.Warn("unrecognized vital", "token", "pulse")

	out := buf.String()
	for _, want := range []string{"source=diagnosis", "token=pulse", "level=warn"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSetLevel_RejectsUnknown(t *testing.T) {
	if err := SetLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug): %v", err)
	}
	if err := SetLevel("info"); err != nil {
		t.Fatalf("SetLevel(info): %v", err)
	}
}

func TestLogger_NotNil(t *testing.T) {
	if Logger(SourceStore) == nil {
		t.Fatal("expected logger")
	}
}

func TestSetLevel_ReachesExistingLoggers(t *testing.T) {
	t.Cleanup(func() { _ = SetLevel("info") })

	child := Logger(SourceApp)
	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel(error): %v", err)
	}
	if got := child.GetLevel(); got != log.ErrorLevel {
		t.Errorf("child level = %v, want %v", got, log.ErrorLevel)
	}

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug): %v", err)
	}
	if got := child.GetLevel(); got != log.DebugLevel {
		t.Errorf("child level = %v, want %v", got, log.DebugLevel)
	}
	if got := Logger(SourceStore).GetLevel(); got != log.DebugLevel {
		t.Errorf("new logger level = %v, want %v", got, log.DebugLevel)
	}
}

func TestLogger_SameSourceSameLogger(t *testing.T) {
	if Logger(SourceReport) != Logger(SourceReport) {
		t.Error("expected one logger per source")
	}
}
